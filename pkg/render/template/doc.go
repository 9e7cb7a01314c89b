// Package template defines the contract between template engines and the
// extensions that plug filters and functions into them.
//
// An Extension is a named bundle of callables. Each callable carries output
// safety metadata in the same shape Twig and Jinja use ("html", "all"), so a
// host knows whether to escape the result. Host bindings live in the
// gotemplate (pongo2) and htmltemplate (html/template) subpackages.
package template
