package lines_test

import (
	"testing"

	"github.com/Semihazah/skein/pkg/domain"
	"github.com/Semihazah/skein/pkg/lines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		template string
		subs     []string
		want     string
	}{
		{
			name:     "ordered markers",
			template: "Hello {0}, you have {1} items",
			subs:     []string{"Ann", "3"},
			want:     "Hello Ann, you have 3 items",
		},
		{
			name:     "no markers",
			template: "no markers",
			subs:     []string{},
			want:     "no markers",
		},
		{
			name:     "marker content is ignored, order rules",
			template: "{x} then {y}",
			subs:     []string{"first", "second"},
			want:     "first then second",
		},
		{
			name:     "adjacent markers",
			template: "{0}{1}",
			subs:     []string{"a", "b"},
			want:     "ab",
		},
		{
			name:     "surplus substitutions are allowed",
			template: "only {0}",
			subs:     []string{"one", "two"},
			want:     "only one",
		},
		{
			name:     "unmatched close brace is literal",
			template: "weird } text",
			subs:     nil,
			want:     "weird } text",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := lines.Substitute(tc.template, tc.subs)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSubstitute_Pure(t *testing.T) {
	template := "Hi {0} and {1}"
	subs := []string{"a", "b"}
	first, err := lines.Substitute(template, subs)
	require.NoError(t, err)
	second, err := lines.Substitute(template, subs)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSubstitute_ArityViolation(t *testing.T) {
	_, err := lines.Substitute("Hello {0} and {1}", []string{"Ann"})
	require.Error(t, err)

	ce, ok := domain.IsContentError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ContentSubstitution, ce.Kind)
}

func TestSubstitute_UnterminatedMarker(t *testing.T) {
	_, err := lines.Substitute("Hello {0", []string{"Ann"})
	require.Error(t, err)

	ce, ok := domain.IsContentError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ContentMalformed, ce.Kind)
}
