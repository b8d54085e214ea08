// Package pdftext pulls plain text out of PDF documents for the CLI and
// server ingestion layer. The extraction engine itself only consumes
// text; this package exists so callers can hand over PDFs directly.
//
// Extraction scrapes Tj/TJ show-text operators from the decoded page
// content streams. That is good enough for the text-based invoices this
// tool targets; scanned images yield no text and fail extraction
// downstream with a per-document failure, as designed.
package pdftext

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Extractor converts PDF bytes to per-page text.
type Extractor struct {
	conf *pdfmodel.Configuration
}

// NewExtractor creates a new PDF text extractor.
func NewExtractor() *Extractor {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	return &Extractor{conf: conf}
}

var (
	// (string) Tj and [ ...(string)... ] TJ show-text operators.
	showTextRe = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)\s*Tj|\]\s*TJ|T\*|TD|Td|ET`)
	tjArrayRe  = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)`)

	escapes = strings.NewReplacer(`\(`, "(", `\)`, ")", `\\`, `\`, `\n`, "\n", `\r`, "", `\t`, " ")
)

// ExtractText returns the concatenated text of all pages, one page per
// paragraph, matching the "raw extracted text per page, already
// concatenated" input contract of the extraction engine.
func (e *Extractor) ExtractText(rs io.ReadSeeker) (string, error) {
	ctx, err := api.ReadContext(rs, e.conf)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return "", fmt.Errorf("validate pdf: %w", err)
	}

	var sb strings.Builder
	for page := 1; page <= ctx.PageCount; page++ {
		r, err := pdfcpu.ExtractPageContent(ctx, page)
		if err != nil {
			return "", fmt.Errorf("extract page %d content: %w", page, err)
		}
		if r == nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read page %d content: %w", page, err)
		}
		sb.WriteString(scrapeText(string(content)))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// scrapeText walks the content stream operators in order, emitting shown
// strings and translating cursor-positioning operators into newlines so
// that line-oriented extraction downstream sees physical lines.
func scrapeText(content string) string {
	var sb strings.Builder
	last := 0

	for _, loc := range showTextRe.FindAllStringSubmatchIndex(content, -1) {
		op := content[loc[0]:loc[1]]
		switch {
		case strings.HasSuffix(op, "Tj"):
			sb.WriteString(escapes.Replace(content[loc[2]:loc[3]]))
		case strings.HasSuffix(op, "TJ"):
			// The array body sits between the previous operator and
			// this closing bracket.
			for _, part := range tjArrayRe.FindAllStringSubmatch(content[last:loc[0]], -1) {
				sb.WriteString(escapes.Replace(part[1]))
			}
		default: // T*, Td, TD, ET move the text cursor
			sb.WriteString("\n")
		}
		last = loc[1]
	}

	return sb.String()
}
