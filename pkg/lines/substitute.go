// Package lines resolves localized dialogue text: an ordered string table
// with first-match-wins lookup, a CSV reader for the delimited table format,
// and a pure placeholder substitution engine.
package lines

import (
	"fmt"
	"strings"

	"github.com/Semihazah/skein/pkg/domain"
)

// Substitute replaces brace-delimited placeholder markers in template with
// the supplied values, in order of appearance: the k-th marker encountered is
// replaced with subs[k]. Markers do not nest; text outside markers is
// preserved verbatim. A template with no markers is returned unchanged.
//
// The function is pure: identical inputs always produce identical output.
// More markers than values is an authoring contract violation and returns a
// *domain.ContentError.
func Substitute(template string, subs []string) (string, error) {
	if !strings.ContainsRune(template, '{') {
		return template, nil
	}

	var b strings.Builder
	b.Grow(len(template))
	next := 0
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:open])
		close := strings.IndexByte(rest[open:], '}')
		if close < 0 {
			return "", &domain.ContentError{
				Kind:   domain.ContentMalformed,
				Detail: fmt.Sprintf("unterminated placeholder marker at offset %d", len(template)-len(rest)+open),
			}
		}
		if next >= len(subs) {
			return "", &domain.ContentError{
				Kind: domain.ContentSubstitution,
				Detail: fmt.Sprintf("placeholder marker %d has no substitution value (%d supplied)",
					next, len(subs)),
			}
		}
		b.WriteString(subs[next])
		next++
		rest = rest[open+close+1:]
	}
}
