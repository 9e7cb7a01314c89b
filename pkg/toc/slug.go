package toc

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackSlug is used for headings whose label has no letters or digits.
const fallbackSlug = "heading"

// Slugify lowercases text, folds accented letters to their base form and joins
// the remaining letter/digit runs with dashes.
func Slugify(text string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	gap := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if gap && b.Len() > 0 {
				b.WriteByte('-')
			}
			gap = false
			b.WriteRune(r)
			continue
		}
		gap = true
	}

	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

// UniqueSlugger hands out slugs that never repeat within one document. Ids
// already present in the markup are reserved up front so generated ones do
// not shadow them. The zero value is ready to use; it is not safe for
// concurrent use.
type UniqueSlugger struct {
	used map[string]struct{}
	next map[string]int
}

// Reserve marks ids as taken. Empty values are ignored.
func (s *UniqueSlugger) Reserve(ids ...string) {
	s.init()
	for _, id := range ids {
		if id == "" {
			continue
		}
		s.used[id] = struct{}{}
	}
}

// Slug returns Slugify(text), suffixed with -1, -2, ... when that value is
// already taken.
func (s *UniqueSlugger) Slug(text string) string {
	s.init()

	base := Slugify(text)
	if _, taken := s.used[base]; !taken {
		s.used[base] = struct{}{}
		return base
	}

	for n := s.next[base] + 1; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if _, taken := s.used[candidate]; taken {
			continue
		}
		s.next[base] = n
		s.used[candidate] = struct{}{}
		return candidate
	}
}

func (s *UniqueSlugger) init() {
	if s.used == nil {
		s.used = make(map[string]struct{})
	}
	if s.next == nil {
		s.next = make(map[string]int)
	}
}
