// Package htmltemplate exposes template extensions to html/template through a
// FuncMap.
//
// html/template has no separate filter concept: both filters and functions
// become functions, usable with pipes ({{ .Body | add_anchors }}) or calls
// ({{ add_anchors .Body 2 4 }}). Results marked safe for HTML are returned as
// template.HTML so the escaper leaves them alone.
package htmltemplate

import (
	htmltemplate "html/template"

	"github.com/goliatone/go-toc/pkg/render/template"
)

// FuncMap builds a FuncMap from the filters and functions of exts. Later
// extensions override earlier ones, and a function overrides a filter of the
// same name within one extension.
func FuncMap(exts ...template.Extension) htmltemplate.FuncMap {
	funcs := htmltemplate.FuncMap{}
	for _, ext := range exts {
		if ext == nil {
			continue
		}
		for _, filter := range ext.Filters() {
			if filter.Name == "" || filter.Call == nil {
				continue
			}
			funcs[filter.Name] = wrap(filter.Call, filter.SafeFor(template.SafeHTML))
		}
		for _, function := range ext.Functions() {
			if function.Name == "" || function.Call == nil {
				continue
			}
			funcs[function.Name] = wrap(function.Call, function.SafeFor(template.SafeHTML))
		}
	}
	return funcs
}

// FuncMapFromRegistry builds a FuncMap from every extension in reg.
func FuncMapFromRegistry(reg *template.Registry) htmltemplate.FuncMap {
	if reg == nil {
		return htmltemplate.FuncMap{}
	}
	return FuncMap(reg.Extensions()...)
}

func wrap(call template.Callable, safe bool) func(input any, args ...any) (any, error) {
	return func(input any, args ...any) (any, error) {
		result, err := call(input, args...)
		if err != nil {
			return nil, err
		}
		if s, ok := result.(string); ok && safe {
			return htmltemplate.HTML(s), nil
		}
		return result, nil
	}
}
