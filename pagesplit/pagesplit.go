// Package pagesplit reads a multi-page PDF and extracts single-page
// documents from it, entirely in memory. Parsing and page extraction
// are delegated to pdfcpu; page content is preserved exactly apart from
// the re-serialization pdfcpu performs when writing a page out.
package pagesplit

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrUnreadable is returned when the byte stream is not a valid PDF.
var ErrUnreadable = errors.New("pagesplit: unreadable PDF")

// Document is a parsed multi-page PDF ready for page extraction.
// It is bound to one request and is not safe for concurrent use.
type Document struct {
	ctx *model.Context
}

// Open parses and validates a PDF from rs. Validation is relaxed, the
// way scanned or generator-produced documents usually require.
func Open(rs io.ReadSeeker) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return &Document{ctx: ctx}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// ExtractPage serializes the single page nr (1-based) as a standalone
// PDF and returns its bytes.
func (d *Document) ExtractPage(nr int) ([]byte, error) {
	if nr < 1 || nr > d.ctx.PageCount {
		return nil, fmt.Errorf("pagesplit: page %d out of range 1..%d", nr, d.ctx.PageCount)
	}
	single, err := pdfcpu.ExtractPages(d.ctx, []int{nr}, false)
	if err != nil {
		return nil, fmt.Errorf("pagesplit: extract page %d: %w", nr, err)
	}
	var buf bytes.Buffer
	if err := api.WriteContext(single, &buf); err != nil {
		return nil, fmt.Errorf("pagesplit: write page %d: %w", nr, err)
	}
	return buf.Bytes(), nil
}
