package loclink_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/loclink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter passes everything", func(t *testing.T) {
		t.Parallel()

		var f *loclink.URLFilter
		assert.True(t, f.Match("https://site.example/anything"))
	})

	t.Run("include patterns restrict matches", func(t *testing.T) {
		t.Parallel()

		f := &loclink.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile(`/de/`)}}

		assert.True(t, f.Match("https://site.example/de/page"))
		assert.False(t, f.Match("https://site.example/fr/page"))
	})

	t.Run("exclude wins over include", func(t *testing.T) {
		t.Parallel()

		f := &loclink.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/de/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`\.pdf$`)},
		}

		assert.True(t, f.Match("https://site.example/de/page"))
		assert.False(t, f.Match("https://site.example/de/guide.pdf"))
	})
}

func TestLocaleFilter(t *testing.T) {
	t.Parallel()

	t.Run("keeps same-host URLs under the locale prefix", func(t *testing.T) {
		t.Parallel()

		f, err := loclink.LocaleFilter("https://site.example/", "de")
		require.NoError(t, err)

		assert.True(t, f.Match("https://site.example/de/page"))
		assert.True(t, f.Match("https://site.example/de"))
		assert.False(t, f.Match("https://site.example/fr/page"))
		assert.False(t, f.Match("https://site.example/detail"))
		assert.False(t, f.Match("https://other.example/de/page"))
	})

	t.Run("rejects an invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := loclink.LocaleFilter("://broken", "de")
		assert.Equal(t, loclink.EINVALID, loclink.ErrorCode(err))
	})
}
