package html

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	tokenPolicyOnce sync.Once
	tokenPolicy     *bluemonday.Policy
)

// plainToken reports whether a theme token value is free of markup. Token
// values are written unescaped into the page's style block, so any value the
// strict policy would alter is refused.
func plainToken(value string) bool {
	return html.UnescapeString(tokenSanitizer().Sanitize(value)) == value
}

func tokenSanitizer() *bluemonday.Policy {
	tokenPolicyOnce.Do(func() {
		tokenPolicy = bluemonday.StrictPolicy()
	})
	return tokenPolicy
}
