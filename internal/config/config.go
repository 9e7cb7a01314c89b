// Package config resolves CLI settings from defaults, a config file and TOC_*
// environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	pkgtoc "github.com/goliatone/go-toc/pkg/toc"
)

// Output formats accepted by the menu command.
const (
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// ConfigOption documents one configuration key.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the configuration keys, their defaults and meaning.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "top", Default: pkgtoc.MinLevel, Comment: "Shallowest heading level included (1-6)"},
		{Key: "depth", Default: pkgtoc.MaxLevel, Comment: "Deepest heading level included (top-6)"},
		{Key: "ordered", Default: false, Comment: "Render the menu with <ol> instead of <ul>"},
		{Key: "format", Default: FormatHTML, Comment: "Menu output format: html, json, yaml or markdown"},
		{Key: "classes.list", Default: "", Comment: "CSS class applied to menu lists"},
		{Key: "classes.item", Default: "", Comment: "CSS class applied to menu items"},
		{Key: "classes.link", Default: "", Comment: "CSS class applied to menu links"},
		{Key: "allow_http", Default: false, Comment: "Allow http(s) sources"},
		{Key: "http_timeout", Default: "10s", Comment: "Timeout for remote sources"},
		{Key: "templates", Default: ".", Comment: "Template directory for the render command"},
	}
}

func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// A missing config file is not an error unless it was set explicitly.
func Load(_ context.Context, v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("toc")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "toc"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "toc"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("config: read: %w", err)
		}
	}

	v.SetEnvPrefix("toc")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}

func formatOf(v *viper.Viper) string {
	return strings.ToLower(strings.TrimSpace(v.GetString("format")))
}

// Settings is the typed view of a loaded configuration.
type Settings struct {
	Range       pkgtoc.Range
	Ordered     bool
	Format      string
	Classes     pkgtoc.Classes
	AllowHTTP   bool
	HTTPTimeout time.Duration
	Templates   string
}

// Resolve reads Settings from v and validates them.
func Resolve(v *viper.Viper) (Settings, error) {
	s := Settings{
		Range:   pkgtoc.Range{Top: v.GetInt("top"), Depth: v.GetInt("depth")},
		Ordered: v.GetBool("ordered"),
		Format:  formatOf(v),
		Classes: pkgtoc.Classes{
			List: v.GetString("classes.list"),
			Item: v.GetString("classes.item"),
			Link: v.GetString("classes.link"),
		},
		AllowHTTP:   v.GetBool("allow_http"),
		HTTPTimeout: v.GetDuration("http_timeout"),
		Templates:   v.GetString("templates"),
	}
	if err := CheckConfigValidity(v); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// CheckConfigValidity reports every invalid key at once.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string

	r := pkgtoc.Range{Top: v.GetInt("top"), Depth: v.GetInt("depth")}
	if err := r.Validate(); err != nil {
		problems = append(problems, fmt.Sprintf("top/depth %d/%d out of range (1 <= top <= depth <= 6)", r.Top, r.Depth))
	}

	switch format := formatOf(v); format {
	case FormatHTML, FormatJSON, FormatYAML, FormatMarkdown:
	default:
		problems = append(problems, fmt.Sprintf("format %q is not one of html, json, yaml, markdown", format))
	}

	if v.GetDuration("http_timeout") < 0 {
		problems = append(problems, "http_timeout must not be negative")
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("config: " + strings.Join(problems, "; "))
}
