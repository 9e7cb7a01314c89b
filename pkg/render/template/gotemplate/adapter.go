package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-toc/pkg/render/template"
)

// Option configures the go-template adapter before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	templateFn map[string]any
	globalData map[string]any
	extensions []template.Extension
}

// WithBaseDir configures the underlying engine to load templates from a base
// directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS configures the underlying engine to load templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the default template extension used by the engine.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithTemplateFunc registers helpers when the engine loads. Filter-shaped
// values (pongo2.FilterFunction or func(input, param any) (any, error))
// become filters bound to this engine; other functions become globals.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.templateFn == nil {
			cfg.templateFn = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFn[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGlobalData seeds global context values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithExtensions installs extensions when the engine loads. Later entries
// override earlier ones with the same name.
func WithExtensions(exts ...template.Extension) Option {
	return func(cfg *config) {
		for _, ext := range exts {
			if ext != nil {
				cfg.extensions = append(cfg.extensions, ext)
			}
		}
	}
}

// Engine satisfies the template.TemplateRenderer contract using a
// pongo2-backed template set.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	tplExt      string
	extensions  *template.Registry
}

// Ensure Engine implements the TemplateRenderer interface.
var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		extension: ".tpl",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("toc", loaders...),
		templates:   make(map[string]*pongo2.Template),
		tplExt:      cfg.extension,
		extensions:  template.NewRegistry(),
	}

	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("gotemplate: apply global data: %w", err)
	}
	if len(cfg.templateFn) > 0 {
		for name, fn := range cfg.templateFn {
			if err := engine.registerTemplateFunc(name, fn); err != nil {
				releaseFilters(engine)
				return nil, fmt.Errorf("gotemplate: register template func %q: %w", name, err)
			}
		}
	}
	for _, ext := range cfg.extensions {
		if err := engine.AddExtension(ext); err != nil {
			releaseFilters(engine)
			return nil, err
		}
	}

	return engine, nil
}

// Render treats name as inline template content when it contains template
// delimiters and as a template path otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if isTemplateContent(name) {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders a template loaded from the configured directory or
// fs.FS, appending the template extension when name lacks it.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	templatePath := name
	if !strings.HasSuffix(templatePath, e.tplExt) {
		templatePath += e.tplExt
	}

	tmpl, err := e.getTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, data, fmt.Sprintf("template %q", templatePath), out)
}

// RenderString parses and renders templateContent. Parsed strings are not
// cached.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("gotemplate: engine is nil")
	}

	tmpl, err := e.templateSet.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	return e.execute(tmpl, data, "template string", out)
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, label string, out []io.Writer) (string, error) {
	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer

	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, &buf)
	e.mu.RUnlock()

	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// RegisterFilter registers a filter on the wrapped engine. pongo2 filters
// are process-wide: the name must not belong to a built-in filter or to
// another live engine.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		result, err := fn(valueInterface(in), valueInterface(param))
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return asValue(result, false), nil
	}
	return e.bindFilters(e, map[string]pongo2.FilterFunction{name: filter})
}

// AddExtension installs the filters and functions of ext. Functions become
// globals of this engine only. Filters cannot be scoped that way: pongo2
// keeps a single filter table for the whole process, so a filter name is
// bound to one extension instance at a time. Installing a different
// extension instance under a filter name that another live engine uses
// fails; share the instance or Close the other engine first. Within one
// engine a later extension overrides an earlier one, and cached templates
// are dropped so they are parsed again against the new bindings.
func (e *Engine) AddExtension(ext template.Extension) error {
	if e == nil || e.templateSet == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if ext == nil || strings.TrimSpace(ext.Name()) == "" {
		return errors.New("gotemplate: extension with a name is required")
	}

	filters := make(map[string]pongo2.FilterFunction)
	for _, filter := range ext.Filters() {
		if strings.TrimSpace(filter.Name) == "" || filter.Call == nil {
			return fmt.Errorf("gotemplate: extension %q: filter name and function required", ext.Name())
		}
		filters[filter.Name] = extensionFilter(filter)
	}
	functions := ext.Functions()
	for _, function := range functions {
		if strings.TrimSpace(function.Name) == "" || function.Call == nil {
			return fmt.Errorf("gotemplate: extension %q: function name and callable required", ext.Name())
		}
	}

	if err := e.bindFilters(ext, filters); err != nil {
		return fmt.Errorf("gotemplate: extension %q: %w", ext.Name(), err)
	}
	if _, err := e.extensions.Replace(ext); err != nil {
		return fmt.Errorf("gotemplate: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	for _, function := range functions {
		e.templateSet.Globals[function.Name] = extensionFunction(function)
	}
	e.templates = make(map[string]*pongo2.Template)
	return nil
}

// Close releases the filter names bound by e so other engines can bind them.
// Do not render with e afterwards: its filters may be rebound.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}
	releaseFilters(e)
	return nil
}

// Extensions lists the names of installed extensions.
func (e *Engine) Extensions() []string {
	if e == nil || e.extensions == nil {
		return nil
	}
	return e.extensions.List()
}

// GlobalContext seeds global data on the wrapped engine.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.templateSet == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}

	globalCtx, err := convertToContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals.Update(globalCtx)
	return nil
}

func (e *Engine) registerTemplateFunc(name string, fn any) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || fn == nil {
		return nil
	}

	switch f := fn.(type) {
	case pongo2.FilterFunction:
		return e.bindFilters(e, map[string]pongo2.FilterFunction{trimmed: f})
	case func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error):
		return e.bindFilters(e, map[string]pongo2.FilterFunction{trimmed: f})
	case func(input any, param any) (any, error):
		return e.RegisterFilter(trimmed, f)
	}

	if !isCallable(fn) {
		return fmt.Errorf("gotemplate: template func %q is %T, not a function", trimmed, fn)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals[trimmed] = fn
	return nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}

	e.templates[path] = tmpl
	return tmpl, nil
}

func isTemplateContent(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Func
}

func convertToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return convertMapToContext(map[string]any(v))
	case map[string]any:
		return convertMapToContext(v)
	default:
		m, err := jsonToMap(v)
		if err != nil {
			return nil, err
		}
		return convertMapToContext(m)
	}
}

func convertMapToContext(in map[string]any) (pongo2.Context, error) {
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func convertValue(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if isCallable(value) {
		return value, nil
	}

	switch v := value.(type) {
	case pongo2.Context:
		return convertMap(map[string]any(v))
	case map[string]any:
		return convertMap(v)
	case []any:
		return convertSlice(v)
	default:
		raw, err := jsonToAny(v)
		if err != nil {
			return nil, err
		}
		switch decoded := raw.(type) {
		case map[string]any:
			return convertMap(decoded)
		case []any:
			return convertSlice(decoded)
		default:
			return decoded, nil
		}
	}
}

func convertMap(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func convertSlice(in []any) ([]any, error) {
	out := make([]any, 0, len(in))
	for _, value := range in {
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func jsonToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func jsonToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func extensionFilter(filter template.Filter) pongo2.FilterFunction {
	safe := filter.SafeFor(template.SafeHTML)
	return func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		result, err := filter.Call(valueInterface(in), filterArgs(param)...)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + filter.Name, OrigError: err}
		}
		return asValue(result, safe), nil
	}
}

func extensionFunction(function template.Function) func(*pongo2.Value, ...*pongo2.Value) (*pongo2.Value, error) {
	safe := function.SafeFor(template.SafeHTML)
	return func(in *pongo2.Value, args ...*pongo2.Value) (*pongo2.Value, error) {
		values := make([]any, 0, len(args))
		for _, arg := range args {
			values = append(values, valueInterface(arg))
		}
		result, err := function.Call(valueInterface(in), values...)
		if err != nil {
			return nil, err
		}
		return asValue(result, safe), nil
	}
}

// filterArgs spreads a filter parameter into callable arguments. pongo2
// filters take a single parameter, so "2,4" and list values carry several.
func filterArgs(param *pongo2.Value) []any {
	if param == nil || param.IsNil() {
		return nil
	}
	if param.IsString() {
		var out []any
		for _, part := range strings.Split(param.String(), ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}
	if param.CanSlice() {
		out := make([]any, 0, param.Len())
		for i := 0; i < param.Len(); i++ {
			out = append(out, param.Index(i).Interface())
		}
		return out
	}
	return []any{param.Interface()}
}

func valueInterface(v *pongo2.Value) any {
	if v == nil || v.IsNil() {
		return nil
	}
	return v.Interface()
}

// asValue wraps a callable result, marking it safe when the callable said
// so or when it already is pre-escaped HTML.
func asValue(result any, safe bool) *pongo2.Value {
	switch v := result.(type) {
	case *pongo2.Value:
		return v
	case htmltemplate.HTML:
		return pongo2.AsSafeValue(string(v))
	}
	if safe {
		return pongo2.AsSafeValue(result)
	}
	return pongo2.AsValue(result)
}
