package template

// Safety contexts understood by hosts.
const (
	SafeHTML = "html"
	SafeAll  = "all"
)

// Callable is the signature shared by extension filters and functions. For a
// filter, input is the piped value; for a function it is the first argument.
type Callable func(input any, args ...any) (any, error)

// Filter is a callable applied with pipe syntax ({{ value|name }}).
type Filter struct {
	Name   string
	Call   Callable
	IsSafe []string
}

// SafeFor reports whether the filter output is already escaped for ctx.
func (f Filter) SafeFor(ctx string) bool {
	return SafeFor(f.IsSafe, ctx)
}

// Function is a callable invoked by name ({{ name(value) }}).
type Function struct {
	Name   string
	Call   Callable
	IsSafe []string
}

// SafeFor reports whether the function output is already escaped for ctx.
func (f Function) SafeFor(ctx string) bool {
	return SafeFor(f.IsSafe, ctx)
}

// Extension bundles filters and functions under a name hosts use for
// registration, lookup and override.
type Extension interface {
	Name() string
	Filters() []Filter
	Functions() []Function
}

// SafeFor reports whether isSafe marks output as pre-escaped for ctx.
func SafeFor(isSafe []string, ctx string) bool {
	for _, entry := range isSafe {
		if entry == ctx || entry == SafeAll {
			return true
		}
	}
	return false
}
