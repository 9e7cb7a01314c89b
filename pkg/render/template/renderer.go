package template

import (
	"io"
)

// TemplateRenderer is the engine seam renderers and the CLI rely on. It
// follows the github.com/goliatone/go-template engine contract and adds
// extension registration.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	AddExtension(ext Extension) error
	GlobalContext(data any) error
}
