// Package convert runs the document conversion pipeline: pair the label
// column of a spreadsheet with the pages of a PDF one-to-one, write
// each page as its own named PDF into a zip archive, and debit the
// user's token balance by the page count.
//
// The pipeline is strictly sequential and terminal on first failure.
// Nothing is persisted until every validation has passed; the ledger
// debit at the end is the only state mutation in a run.
package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/zistal/zistal/ledger"
	"github.com/zistal/zistal/names"
	"github.com/zistal/zistal/observability"
	"github.com/zistal/zistal/pagesplit"
	"github.com/zistal/zistal/sheet"
)

// Request carries one conversion's inputs. Both uploads are fully
// buffered; there is no streaming.
type Request struct {
	User      string
	PDFName   string
	PDF       io.ReadSeeker
	SheetName string
	Sheet     io.ReadSeeker
}

/// Result is a successful conversion: the finished archive plus the
// accounting the front-end displays.
type Result struct {
	Zip       []byte
	Pages     int
	Remaining int
}

// Service orchestrates the pipeline.
type Service struct {
	ledger *ledger.Ledger
	events *observability.EventLogger
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithEvents attaches a business event logger. Event writes are
// best-effort and never fail a conversion.
func WithEvents(ev *observability.EventLogger) Option {
	return func(s *Service) { s.events = ev }
}

// New creates the conversion service.
func New(l *ledger.Ledger, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{ledger: l, logger: logger}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run executes the pipeline for one request. On any error the ledger is
// untouched and no archive is produced.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	balance, err := s.ledger.Balance(ctx, req.User)
	if err != nil {
		return nil, err
	}

	if balance <= 0 {
		s.logEvent(ctx, req.User, 0, 0, "no_tokens", false)
		return nil, fmt.Errorf("%w: please recharge your tokens to continue; email us at %s to recharge your balance",
			ErrNoCredit, RechargeContact)
	}

	labels, err := sheet.ReadLabels(req.Sheet, req.SheetName)
	if err != nil {
		s.logEvent(ctx, req.User, 0, 0, "unreadable_excel", false)
		if errors.Is(err, sheet.ErrNoColumns) {
			return nil, fmt.Errorf("%w: Excel file must have at least one column with names", ErrBadInput)
		}
		return nil, fmt.Errorf("%w: could not read Excel file: %v", ErrBadInput, err)
	}

	doc, err := pagesplit.Open(req.PDF)
	if err != nil {
		s.logEvent(ctx, req.User, 0, 0, "unreadable_pdf", false)
		return nil, fmt.Errorf("%w: could not read PDF file: %v", ErrBadInput, err)
	}

	pages := doc.PageCount()
	if len(labels) != pages {
		s.logEvent(ctx, req.User, pages, 0, "count_mismatch", false)
		return nil, fmt.Errorf("%w: number of names (%d) does not match number of pages in PDF (%d)",
			ErrBadInput, len(labels), pages)
	}

	if balance < pages {
		s.logEvent(ctx, req.User, pages, 0, "not_enough_tokens", false)
		return nil, fmt.Errorf("%w: you need %d tokens but have %d left; please recharge at %s",
			ErrInsufficientCredit, pages, balance, RechargeContact)
	}

	archive, err := s.emit(doc, labels)
	if err != nil {
		s.logEvent(ctx, req.User, pages, 0, "emit_failed", false)
		return nil, err
	}

	// The only state mutation of the whole pipeline. Everything before
	// this point is read-only.
	remaining, err := s.ledger.Debit(ctx, req.User, pages)
	if err != nil {
		return nil, err
	}

	s.logEvent(ctx, req.User, pages, pages, "", true)
	s.logger.Info("conversion complete",
		"user", req.User, "pages", pages, "remaining", remaining)

	return &Result{Zip: archive, Pages: pages, Remaining: remaining}, nil
}

// emit extracts every page, resolves its output name and packs the
// results into one flat deflate-compressed archive.
func (s *Service) emit(doc *pagesplit.Document, labels []string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	namer := names.NewNamer()

	for i, label := range labels {
		pageNr := i + 1
		page, err := doc.ExtractPage(pageNr)
		if err != nil {
			return nil, fmt.Errorf("convert: page %d: %w", pageNr, err)
		}
		entry, err := zw.Create(namer.Next(label, pageNr) + ".pdf")
		if err != nil {
			return nil, fmt.Errorf("convert: archive entry for page %d: %w", pageNr, err)
		}
		if _, err := entry.Write(page); err != nil {
			return nil, fmt.Errorf("convert: write page %d: %w", pageNr, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("convert: close archive: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) logEvent(ctx context.Context, user string, pages, tokens int, detail string, success bool) {
	if s.events == nil {
		return
	}
	eventType := "conversion"
	if !success {
		eventType = "conversion_failed"
	}
	s.events.Log(ctx, observability.Event{
		EventType: eventType,
		UserID:    user,
		Pages:     pages,
		Tokens:    tokens,
		Detail:    detail,
		Success:   success,
	})
}
