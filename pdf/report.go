// Package pdf renders run reports as downloadable PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fwojciec/loclink"
	"github.com/jung-kurt/gofpdf"
)

// Ensure Renderer implements loclink.ReportRenderer at compile time.
var _ loclink.ReportRenderer = (*Renderer)(nil)

// Renderer renders runs as printable A4 reports: a summary block
// followed by one section per checked page with its per-link outcomes.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render builds the PDF for a run.
func (r *Renderer) Render(run *loclink.Run) ([]byte, error) {
	if err := run.Validate(); err != nil {
		return nil, err
	}

	p := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so accented link text survives.
	tr := p.UnicodeTranslatorFromDescriptor("")
	p.SetFooterFunc(func() {
		p.SetY(-15)
		p.SetFont("Arial", "I", 8)
		p.CellFormat(0, 10, fmt.Sprintf("Page %d", p.PageNo()), "", 0, "C", false, 0, "")
	})
	p.SetAutoPageBreak(true, 20)
	p.AddPage()

	p.SetFont("Arial", "B", 16)
	p.Cell(40, 10, "Localization Link Report")
	p.Ln(12)

	p.SetFont("Arial", "", 10)
	meta := fmt.Sprintf("Mode: %s", run.Mode)
	if !run.CreatedAt.IsZero() {
		meta += "   Created: " + run.CreatedAt.Format("2006-01-02 15:04")
	}
	meta += fmt.Sprintf("   Total time: %.2fs", run.Summary.Elapsed.Seconds())
	p.Cell(0, 6, tr(meta))
	p.Ln(6)
	p.Cell(0, 6, tr("Input: "+run.BaseURL))
	p.Ln(8)

	s := run.Summary
	p.SetFont("Arial", "B", 10)
	p.Cell(0, 6, fmt.Sprintf(
		"Pages: %d   Links: %d   Working: %d   Broken: %d   Localization defects: %d   Success rate: %.1f%%",
		s.TotalPages, s.Stats.TotalLinks, s.Stats.WorkingLinks,
		s.Stats.BrokenLinks, s.Stats.LocalizationDefects, s.Stats.SuccessRate,
	))
	p.Ln(10)

	for _, page := range run.Pages {
		r.renderPage(p, tr, page)
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderPage(p *gofpdf.Fpdf, tr func(string) string, page *loclink.PageReport) {
	p.SetFont("Arial", "B", 11)
	p.MultiCell(0, 6, tr(page.URL), "", "L", false)

	p.SetFont("Arial", "", 9)
	line := "Locale: " + page.Locale
	if page.Title != "" {
		line += "   " + page.Title
	}
	p.MultiCell(0, 5, tr(line), "", "L", false)

	if page.Message != "" && page.Status != loclink.StatusSuccess {
		p.SetFont("Arial", "I", 9)
		p.MultiCell(0, 5, tr(page.Message), "", "L", false)
		p.SetFont("Arial", "", 9)
	}

	if page.Stats.TotalLinks > 0 {
		p.Cell(0, 5, fmt.Sprintf(
			"Links: %d   Working: %d   Broken: %d   Localization defects: %d   Success rate: %.1f%%",
			page.Stats.TotalLinks, page.Stats.WorkingLinks, page.Stats.BrokenLinks,
			page.Stats.LocalizationDefects, page.Stats.SuccessRate,
		))
		p.Ln(6)
	}

	for _, result := range page.Results {
		code := "N/A"
		if result.StatusCode != 0 {
			code = strconv.Itoa(result.StatusCode)
		}
		p.MultiCell(0, 5, tr(fmt.Sprintf("[%s] %s   %s", code, label(result.Status), result.URL)), "", "L", false)
		if result.Issue != "" {
			p.SetTextColor(100, 100, 100)
			p.MultiCell(0, 5, tr("        "+result.Issue), "", "L", false)
			p.SetTextColor(0, 0, 0)
		}
	}
	p.Ln(4)
}

func label(status loclink.Status) string {
	switch status {
	case loclink.StatusSuccess:
		return "Working"
	case loclink.StatusWarning:
		return "Warning"
	case loclink.StatusError:
		return "Broken"
	case loclink.StatusDefect:
		return "Defect"
	case loclink.StatusLocalizationDefect:
		return "Localization Defect"
	default:
		return string(status)
	}
}
