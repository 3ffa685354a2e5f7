package loclink_test

import (
	"testing"
	"time"

	"github.com/fwojciec/loclink"
	"github.com/stretchr/testify/assert"
)

func TestComputePageStats(t *testing.T) {
	t.Parallel()

	t.Run("counts results by status", func(t *testing.T) {
		t.Parallel()

		results := []loclink.CheckResult{
			{Status: loclink.StatusSuccess},
			{Status: loclink.StatusSuccess},
			{Status: loclink.StatusError},
			{Status: loclink.StatusDefect},
			{Status: loclink.StatusWarning},
			{Status: loclink.StatusLocalizationDefect},
		}

		stats := loclink.ComputePageStats(results)

		assert.Equal(t, 6, stats.TotalLinks)
		assert.Equal(t, 2, stats.WorkingLinks)
		assert.Equal(t, 2, stats.BrokenLinks)
		assert.Equal(t, 1, stats.WarningLinks)
		assert.Equal(t, 1, stats.LocalizationDefects)
		assert.InDelta(t, 100.0*2/6, stats.SuccessRate, 0.001)
	})

	t.Run("zero links yields zero success rate", func(t *testing.T) {
		t.Parallel()

		stats := loclink.ComputePageStats(nil)

		assert.Equal(t, 0, stats.TotalLinks)
		assert.Zero(t, stats.SuccessRate)
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("aggregates pages and link stats", func(t *testing.T) {
		t.Parallel()

		pages := []*loclink.PageReport{
			{
				Status: loclink.StatusSuccess,
				Stats:  loclink.PageStats{TotalLinks: 4, WorkingLinks: 4},
			},
			{
				Status: loclink.StatusSuccess,
				Stats:  loclink.PageStats{TotalLinks: 6, WorkingLinks: 2, BrokenLinks: 3, LocalizationDefects: 1},
			},
			{Status: loclink.StatusError},
			{Status: loclink.StatusWarning},
		}

		sum := loclink.Summarize(pages, 2*time.Second)

		assert.Equal(t, 4, sum.TotalPages)
		assert.Equal(t, 2, sum.SuccessfulPages)
		assert.Equal(t, 1, sum.ErrorPages)
		assert.Equal(t, 1, sum.WarningPages)
		assert.Equal(t, 10, sum.Stats.TotalLinks)
		assert.Equal(t, 6, sum.Stats.WorkingLinks)
		assert.Equal(t, 3, sum.Stats.BrokenLinks)
		assert.Equal(t, 1, sum.Stats.LocalizationDefects)
		assert.InDelta(t, 60.0, sum.Stats.SuccessRate, 0.001)
		assert.Equal(t, 2*time.Second, sum.Elapsed)
	})

	t.Run("no pages yields zero rates", func(t *testing.T) {
		t.Parallel()

		sum := loclink.Summarize(nil, 0)

		assert.Zero(t, sum.TotalPages)
		assert.Zero(t, sum.Stats.SuccessRate)
	})
}

func TestRun_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid run passes", func(t *testing.T) {
		t.Parallel()

		run := &loclink.Run{
			Mode:  loclink.ModeSingle,
			Pages: []*loclink.PageReport{{URL: "https://site.example/de/"}},
		}

		assert.NoError(t, run.Validate())
	})

	t.Run("missing mode is invalid", func(t *testing.T) {
		t.Parallel()

		run := &loclink.Run{Pages: []*loclink.PageReport{{URL: "https://site.example/de/"}}}

		err := run.Validate()
		assert.Equal(t, loclink.EINVALID, loclink.ErrorCode(err))
	})

	t.Run("no pages is invalid", func(t *testing.T) {
		t.Parallel()

		run := &loclink.Run{Mode: loclink.ModeBulk}

		err := run.Validate()
		assert.Equal(t, loclink.EINVALID, loclink.ErrorCode(err))
	})
}

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	valid := []loclink.Status{
		loclink.StatusSuccess,
		loclink.StatusError,
		loclink.StatusWarning,
		loclink.StatusDefect,
		loclink.StatusLocalizationDefect,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, loclink.Status("bogus").Valid())
}
