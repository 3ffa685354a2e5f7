package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/loclink"
	"github.com/fwojciec/loclink/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateRun measures persisting a bulk run, the write-heavy
// path: one run row plus a page row and dozens of link rows per page.
func BenchmarkCreateRun(b *testing.B) {
	const pagesPerRun = 10
	const linksPerPage = 40

	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())
	defer func() {
		db.Close()
		// Clean up WAL files if they exist
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	svc := sqlite.NewRunService(db)
	ctx := context.Background()

	pages := make([]*loclink.PageReport, 0, pagesPerRun)
	for i := 0; i < pagesPerRun; i++ {
		results := make([]loclink.CheckResult, 0, linksPerPage)
		for j := 0; j < linksPerPage; j++ {
			results = append(results, loclink.CheckResult{
				URL:        fmt.Sprintf("https://www.example.com/de/page%d/link%d/", i, j),
				LinkText:   fmt.Sprintf("Link %d", j),
				Status:     loclink.StatusSuccess,
				StatusCode: 200,
				BaseURL:    fmt.Sprintf("https://www.example.com/de/page%d/", i),
			})
		}
		pages = append(pages, &loclink.PageReport{
			URL:     fmt.Sprintf("https://www.example.com/de/page%d/", i),
			Locale:  "de",
			Title:   fmt.Sprintf("Page %d", i),
			Status:  loclink.StatusSuccess,
			Results: results,
			Stats:   loclink.ComputePageStats(results),
			Elapsed: time.Second,
		})
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		run := loclink.NewRun(loclink.ModeBulk, "https://www.example.com/de/page0/", pages, 10*time.Second)
		if err := svc.CreateRun(ctx, run); err != nil {
			b.Fatal(err)
		}
	}
}
