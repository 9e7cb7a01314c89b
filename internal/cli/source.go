package cli

import (
	"strings"

	pkgdocument "github.com/goliatone/go-toc/pkg/document"
)

// sourceFor maps a command argument onto a document source. An empty
// argument or "-" reads stdin.
func sourceFor(arg string) (pkgdocument.Source, error) {
	arg = strings.TrimSpace(arg)
	switch {
	case arg == "" || arg == "-":
		return pkgdocument.SourceFromStdin(""), nil
	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		return pkgdocument.SourceFromURL(arg)
	default:
		return pkgdocument.SourceFromFile(arg), nil
	}
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
