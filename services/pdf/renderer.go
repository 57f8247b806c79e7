package pdf

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
	"time"

	"hyperinvoice/models"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	templateSuffix = ".html"
	lineHeight     = 5.5
)

// RenderError wraps a failure in either the template or the PDF phase.
type RenderError struct {
	Template string
	Phase    string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("Failed to generate PDF: %s %q: %v", e.Phase, e.Template, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Renderer expands an invoice template into basic markup and rasterizes it to PDF.
type Renderer struct {
	templates *template.Template
	logger    *zap.Logger
}

// NewRenderer loads the embedded invoice templates.
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	return newRenderer(templateFS, "templates/*"+templateSuffix, logger)
}

func newRenderer(fsys fs.FS, pattern string, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("pdf.NewRenderer: failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl, logger: logger}, nil
}

// Render produces the PDF for templateName. Any failure is a *RenderError.
func (r *Renderer) Render(ctx context.Context, templateName string, rc *models.RenderContext) (*models.GeneratedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RenderError{Template: templateName, Phase: "template", Err: err}
	}

	start := time.Now()
	markup, err := r.expand(templateName, rc)
	if err != nil {
		return nil, &RenderError{Template: templateName, Phase: "template", Err: err}
	}
	r.logger.Debug("template rendered",
		zap.String("template", templateName),
		zap.Int("markupSize", len(markup)),
		zap.Duration("elapsed", time.Since(start)))

	title := "Invoice"
	if rc != nil && rc.InvoiceNumber != "" {
		title = "Invoice " + rc.InvoiceNumber
	}
	data, err := rasterize(markup, title)
	if err != nil {
		return nil, &RenderError{Template: templateName, Phase: "pdf", Err: err}
	}
	return &models.GeneratedDocument{Bytes: data}, nil
}

func (r *Renderer) expand(templateName string, rc *models.RenderContext) (string, error) {
	if rc == nil {
		return "", fmt.Errorf("render context is nil")
	}
	tmpl := r.templates.Lookup(templateName + templateSuffix)
	if tmpl == nil {
		return "", fmt.Errorf("template not found")
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, rc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rasterize lays the markup out on A4 pages. Only <b>, <i>, <u>, <a> and <br> are understood.
func rasterize(markup, title string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)
	doc.SetCreator("hyperinvoice", true)
	doc.SetMargins(15, 15, 15)
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 10)

	// core fonts are cp1252
	tr := doc.UnicodeTranslatorFromDescriptor("")
	html := doc.HTMLBasicNew()
	html.Write(lineHeight, tr(strings.ReplaceAll(markup, "\n", "")))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var markupStripper = strings.NewReplacer("<", "", ">", "")

var templateFuncs = template.FuncMap{
	"money":   money,
	"percent": percent,
	"text":    markupStripper.Replace,
	"inc":     func(i int) int { return i + 1 },
}

func money(v interface{}) string {
	switch d := v.(type) {
	case decimal.Decimal:
		return d.StringFixed(2)
	case *decimal.Decimal:
		if d == nil {
			return "-"
		}
		return d.StringFixed(2)
	default:
		return fmt.Sprint(v)
	}
}

// percent renders a fractional rate such as 0.18 as "18".
func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String()
}
