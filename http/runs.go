package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fwojciec/loclink"
)

const defaultRunPageSize = 20

// handleRunList shows the stored run history, newest first.
func (s *Server) handleRunList(w http.ResponseWriter, r *http.Request) {
	filter := loclink.RunFilter{Limit: defaultRunPageSize}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		filter.Offset = v
	}
	if mode := loclink.Mode(r.URL.Query().Get("mode")); mode != "" {
		filter.Mode = &mode
	}

	runs, total, err := s.RunService.FindRuns(r.Context(), filter)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	s.render(w, "runs", &runsView{
		Runs:   runs,
		Total:  total,
		Offset: filter.Offset,
		Limit:  filter.Limit,
	})
}

// handleRunShow re-renders the stored report for a single run.
func (s *Server) handleRunShow(w http.ResponseWriter, r *http.Request) {
	run, err := s.RunService.FindRunByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.render(w, "run", &reportView{Run: run})
}

// handleRunPDF streams the PDF rendering of a stored run.
func (s *Server) handleRunPDF(w http.ResponseWriter, r *http.Request) {
	if s.Renderer == nil {
		http.NotFound(w, r)
		return
	}

	run, err := s.RunService.FindRunByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.Error(w, r, err)
		return
	}

	data, err := s.Renderer.Render(run)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "l10n_report_"+run.ID+".pdf"))
	_, _ = w.Write(data)
}
