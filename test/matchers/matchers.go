package matchers

import (
	"fmt"

	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/format"
	"github.com/technopolitica/open-users/internal/domain"
)

func normalizeURL(actual any) (string, error) {
	var raw string
	switch a := actual.(type) {
	case string:
		raw = a
	case fmt.Stringer:
		raw = a.String()
	default:
		return "", fmt.Errorf("MatchURL matcher expects a string or fmt.Stringer. Got:\n%s", format.Object(actual, 1))
	}
	return domain.NormalizeURL(raw)
}

// MatchURL succeeds when actual and expected are the same URL up to query
// parameter order and a trailing slash.
func MatchURL(expected string) OmegaMatcher {
	normalized, err := domain.NormalizeURL(expected)
	if err != nil {
		// KLUDGE: probably should deal with this error instead of panic...
		panic(err)
	}
	return WithTransform(normalizeURL, Equal(normalized))
}
