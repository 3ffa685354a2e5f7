package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/loclink"
)

//go:embed html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "html/*.html"))

var templateFuncs = template.FuncMap{
	"statusClass": statusClass,
	"statusLabel": statusLabel,
	"statusCode":  statusCode,
	"percent":     percent,
	"seconds":     seconds,
	"truncate":    truncateText,
	"upper":       strings.ToUpper,
}

// indexView is the data for the landing page. Error and Warning render
// as panels above the forms; Report, when set, renders below them.
type indexView struct {
	Locales []string
	Error   string
	Warning string
	Report  *reportView
}

// reportView wraps a run for rendering. CSVPath is the report file
// written for this run, empty when none was produced.
type reportView struct {
	Run     *loclink.Run
	CSVPath string
}

// runsView is the data for the run history page.
type runsView struct {
	Runs   []*loclink.Run
	Total  int
	Offset int
	Limit  int
}

func (v *runsView) HasPrev() bool { return v.Offset > 0 }

func (v *runsView) PrevOffset() int {
	if v.Offset < v.Limit {
		return 0
	}
	return v.Offset - v.Limit
}

func (v *runsView) HasNext() bool { return v.Offset+v.Limit < v.Total }

func (v *runsView) NextOffset() int { return v.Offset + v.Limit }

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.Logger.Error("render template", "template", name, "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func statusClass(status loclink.Status) string {
	switch status {
	case loclink.StatusSuccess:
		return "success"
	case loclink.StatusWarning:
		return "warning"
	case loclink.StatusDefect, loclink.StatusLocalizationDefect:
		return "defect"
	default:
		return "error"
	}
}

func statusLabel(status loclink.Status) string {
	switch status {
	case loclink.StatusSuccess:
		return "Success"
	case loclink.StatusError:
		return "Error"
	case loclink.StatusWarning:
		return "Warning"
	case loclink.StatusDefect:
		return "Defect"
	case loclink.StatusLocalizationDefect:
		return "Localization Defect"
	default:
		return string(status)
	}
}

func statusCode(code int) string {
	if code == 0 {
		return "N/A"
	}
	return strconv.Itoa(code)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

func truncateText(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
