package toc

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	menuPolicyOnce sync.Once
	menuPolicy     *bluemonday.Policy
)

// fragmentHref only lets same-page anchors through. Targets are
// percent-escaped by addChild, so any id survives as a fragment.
var fragmentHref = regexp.MustCompile(`^#\S*$`)

func menuSanitizer() *bluemonday.Policy {
	menuPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("ul", "ol", "li", "a")
		policy.AllowRelativeURLs(true)
		policy.AllowAttrs("href").Matching(fragmentHref).OnElements("a")
		policy.AllowAttrs("class").OnElements("ul", "ol", "li", "a")

		menuPolicy = policy
	})
	return menuPolicy
}
