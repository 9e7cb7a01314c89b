package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	pkgtoc "github.com/goliatone/go-toc/pkg/toc"
)

// InputConfig configures a text input prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// PromptDriver abstracts the terminal prompts so --interactive can be tested
// without a real terminal.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
}

type surveyDriver struct {
	stdio terminal.Stdio
}

func newSurveyDriver() (PromptDriver, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("cli: --interactive requires a terminal on stdin")
	}
	return &surveyDriver{stdio: terminal.Stdio{In: os.Stdin, Out: os.Stderr, Err: os.Stderr}}, nil
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	opts := []survey.AskOpt{survey.WithStdio(d.stdio.In, d.stdio.Out, d.stdio.Err)}
	if cfg.Validator != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return cfg.Validator(s)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", context.Canceled
		}
		return "", err
	}
	return out, nil
}

// promptRange asks for top and depth, seeding the prompts with the values
// already resolved from flags, env and config.
func promptRange(cmd *cobra.Command, v *viper.Viper, driver PromptDriver) error {
	if driver == nil {
		d, err := newSurveyDriver()
		if err != nil {
			return err
		}
		driver = d
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	top, err := promptLevel(ctx, driver, "Top heading level", v.GetInt("top"), pkgtoc.MinLevel)
	if err != nil {
		return err
	}
	depth, err := promptLevel(ctx, driver, "Deepest heading level", v.GetInt("depth"), top)
	if err != nil {
		return err
	}

	v.Set("top", top)
	v.Set("depth", depth)
	return nil
}

func promptLevel(ctx context.Context, driver PromptDriver, message string, current, lowest int) (int, error) {
	validate := func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		if n < lowest || n > pkgtoc.MaxLevel {
			return fmt.Errorf("level must be between %d and %d", lowest, pkgtoc.MaxLevel)
		}
		return nil
	}
	if current < lowest || current > pkgtoc.MaxLevel {
		current = lowest
	}

	answer, err := driver.Input(ctx, InputConfig{
		Message:   message,
		Default:   strconv.Itoa(current),
		Help:      fmt.Sprintf("A heading level between %d and %d", lowest, pkgtoc.MaxLevel),
		Validator: validate,
	})
	if err != nil {
		return 0, err
	}
	if err := validate(answer); err != nil {
		return 0, fmt.Errorf("cli: %w", err)
	}
	n, _ := strconv.Atoi(strings.TrimSpace(answer))
	return n, nil
}
