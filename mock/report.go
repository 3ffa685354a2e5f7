package mock

import "github.com/fwojciec/loclink"

var _ loclink.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of loclink.ReportWriter.
type ReportWriter struct {
	WriteCSVFn func(run *loclink.Run) (string, error)
}

func (w *ReportWriter) WriteCSV(run *loclink.Run) (string, error) {
	return w.WriteCSVFn(run)
}

var _ loclink.ReportRenderer = (*ReportRenderer)(nil)

// ReportRenderer is a mock implementation of loclink.ReportRenderer.
type ReportRenderer struct {
	RenderFn func(run *loclink.Run) ([]byte, error)
}

func (r *ReportRenderer) Render(run *loclink.Run) ([]byte, error) {
	return r.RenderFn(run)
}
