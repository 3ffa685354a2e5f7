package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/loclink"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index", &indexView{Locales: s.Locales})
}

// handleCheck runs a single-page check submitted from the main form.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	pageURL := strings.TrimSpace(r.FormValue("localization_url"))

	begin := time.Now()
	report, err := s.CheckService.CheckPage(r.Context(), pageURL)
	if err != nil {
		s.renderFormError(w, err)
		return
	}

	run := loclink.NewRun(loclink.ModeSingle, pageURL, []*loclink.PageReport{report}, time.Since(begin))
	s.finishRun(w, r, run)
}

// handleBulk runs checks for a newline-separated list of page URLs.
func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request) {
	urls := splitLines(r.FormValue("localization_urls"))
	if len(urls) == 0 {
		s.renderFormError(w, loclink.Errorf(loclink.EINVALID, "No URLs provided."))
		return
	}

	begin := time.Now()
	reports, err := s.CheckService.CheckPages(r.Context(), urls)
	if err != nil {
		s.renderFormError(w, err)
		return
	}

	run := loclink.NewRun(loclink.ModeBulk, urls[0], reports, time.Since(begin))
	s.finishRun(w, r, run)
}

// handleMulti checks the localized variants of a base page URL for the
// locales ticked in the form.
func (s *Server) handleMulti(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderFormError(w, loclink.Errorf(loclink.EINVALID, "Invalid form submission."))
		return
	}
	baseURL := strings.TrimSpace(r.PostForm.Get("base_url"))
	locales := r.PostForm["localizations"]
	if len(locales) == 0 {
		s.renderFormError(w, loclink.Errorf(loclink.EINVALID, "Select at least one localization."))
		return
	}

	begin := time.Now()
	reports, err := s.CheckService.CheckLocales(r.Context(), baseURL, locales)
	if err != nil {
		s.renderFormError(w, err)
		return
	}

	run := loclink.NewRun(loclink.ModeMulti, baseURL, reports, time.Since(begin))
	s.finishRun(w, r, run)
}

// finishRun persists the run and renders its report. Persistence
// failures are logged but never hide the report from the user.
func (s *Server) finishRun(w http.ResponseWriter, r *http.Request, run *loclink.Run) {
	if s.RunService != nil {
		if err := s.RunService.CreateRun(r.Context(), run); err != nil {
			s.Logger.Error("create run", "mode", run.Mode, "err", err)
		}
	}

	var csvPath string
	if s.Reports != nil {
		path, err := s.Reports.WriteCSV(run)
		if err != nil {
			s.Logger.Error("write csv report", "mode", run.Mode, "err", err)
		} else {
			csvPath = path
		}
	}

	s.render(w, "index", &indexView{
		Locales: s.Locales,
		Report:  &reportView{Run: run, CSVPath: csvPath},
	})
}

// renderFormError re-renders the landing page with an error panel. The
// checker reports page-level problems through report statuses, so an
// error here means the submission itself was unusable.
func (s *Server) renderFormError(w http.ResponseWriter, err error) {
	view := &indexView{Locales: s.Locales}
	switch loclink.ErrorCode(err) {
	case loclink.EINVALID:
		view.Error = loclink.ErrorMessage(err)
	default:
		s.Logger.Error("check failed", "err", err)
		view.Error = "Unexpected error: " + loclink.ErrorMessage(err)
	}
	s.render(w, "index", view)
}

func splitLines(v string) []string {
	var out []string
	for _, line := range strings.Split(v, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
