package render

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	lineHeight   = 6.0
	headerHeight = 9.0
	emptyMessage = "No videos found for this topic. Use the study notes below to get started."
)

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

type Artifact struct {
	FileName    string
	PDFPath     string
	SidecarPath string
}

type PDF struct {
	dir string
	now func() time.Time
}

func NewPDF(dir string) *PDF {
	return &PDF{
		dir: dir,
		now: time.Now,
	}
}

// FileName returns learning_path_<topic>_<timestamp> without extension.
func FileName(topic string, at time.Time) string {
	slug := strings.Trim(nonSlugRe.ReplaceAllString(strings.ToLower(topic), "_"), "_")
	if slug == "" {
		slug = "topic"
	}
	return fmt.Sprintf("learning_path_%s_%s", slug, at.Format("20060102_150405"))
}

func (p *PDF) Render(doc Document) (Artifact, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return Artifact{}, fmt.Errorf("failed to create output dir: %w", err)
	}
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = p.now()
	}
	base := FileName(doc.Topic, doc.GeneratedAt)
	art := Artifact{
		FileName:    base + ".pdf",
		PDFPath:     filepath.Join(p.dir, base+".pdf"),
		SidecarPath: filepath.Join(p.dir, base+".yaml"),
	}

	if err := WritePDF(art.PDFPath, doc); err != nil {
		return Artifact{}, err
	}
	if err := WriteSidecar(art.SidecarPath, doc); err != nil {
		return Artifact{}, err
	}

	return art, nil
}

func WritePDF(path string, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("learnpath", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, tr(doc.Title), "", "L", false)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, lineHeight, "Generated on "+doc.GeneratedAt.Format("January 2, 2006 at 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	heading(pdf, "Your Learning Profile")
	pdf.SetFont("Helvetica", "", 11)
	for _, f := range doc.Profile {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		pdf.MultiCell(0, lineHeight, tr(fmt.Sprintf("%s: %s", f.Label, f.Value)), "", "L", false)
	}
	pdf.Ln(3)

	heading(pdf, "Learning Phases")
	phaseTable(pdf, tr, doc)
	pdf.Ln(3)

	heading(pdf, "Daily Schedule")
	pdf.SetFont("Helvetica", "", 11)
	if len(doc.Schedule) == 0 {
		pdf.MultiCell(0, lineHeight, emptyMessage, "", "L", false)
	} else {
		pdf.MultiCell(0, lineHeight, fmt.Sprintf("%d videos over %d days, %s in total.", doc.TotalVideos, len(doc.Schedule), FormatDuration(doc.TotalTime)), "", "L", false)
		pdf.Ln(2)
	}
	for _, day := range doc.Schedule {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, lineHeight+1, fmt.Sprintf("Day %d (%s)", day.DayIndex, FormatDuration(day.Total())), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, lineHeight, tr(day.Focus()), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		for _, v := range day.Videos {
			pdf.MultiCell(0, lineHeight, tr(fmt.Sprintf("- %s (%s, %s)", v.Title, v.Channel, FormatDuration(v.Duration))), "", "L", false)
			pdf.SetTextColor(0, 0, 160)
			pdf.MultiCell(0, lineHeight, tr("  "+v.URL), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Ln(2)
	}

	if len(doc.Warnings) > 0 {
		heading(pdf, "Notes On This Plan")
		pdf.SetFont("Helvetica", "", 10)
		for _, w := range doc.Warnings {
			pdf.MultiCell(0, lineHeight, tr("- "+w), "", "L", false)
		}
		pdf.Ln(3)
	}

	if strings.TrimSpace(doc.Notes) != "" {
		heading(pdf, "Study Notes")
		pdf.SetFont("Helvetica", "", 11)
		for _, line := range strings.Split(doc.Notes, "\n") {
			line = strings.ReplaceAll(strings.TrimRight(line, " \r"), "\t", "    ")
			if line == "" {
				pdf.Ln(3)
				continue
			}
			pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}

	return nil
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, headerHeight, text, "", 1, "L", false, 0, "")
}

func phaseTable(pdf *fpdf.Fpdf, tr func(string) string, doc Document) {
	widths := []float64{45, 115, 20}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 230, 240)
	for i, h := range []string{"Phase", "Description", "Videos"} {
		pdf.CellFormat(widths[i], lineHeight+1, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range doc.Phases {
		pdf.CellFormat(widths[0], lineHeight+1, tr(row.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], lineHeight+1, tr(row.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], lineHeight+1, fmt.Sprintf("%d", row.Videos), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
}
