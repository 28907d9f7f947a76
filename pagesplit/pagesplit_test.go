package pagesplit

import (
	"bytes"
	"errors"
	"testing"

	"github.com/zistal/zistal/internal/pdftest"
)

func TestOpen_PageCount(t *testing.T) {
	// WHAT: Open reports the page count of a valid multi-page PDF.
	doc, err := Open(bytes.NewReader(pdftest.MultiPage(5)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := doc.PageCount(); got != 5 {
		t.Errorf("PageCount = %d, want 5", got)
	}
}

func TestOpen_GarbageIsUnreadable(t *testing.T) {
	// WHAT: Non-PDF bytes surface ErrUnreadable with the parser message.
	// WHY: The pipeline maps ErrUnreadable to a client error, never a 500.
	_, err := Open(bytes.NewReader([]byte("this is not a pdf")))
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("err = %v, want ErrUnreadable", err)
	}
}

func TestExtractPage_RoundTrip(t *testing.T) {
	// WHAT: Each extracted page reopens as a valid one-page PDF carrying
	// the original page's content.
	// WHY: Splitting must preserve page content exactly, in order.
	doc, err := Open(bytes.NewReader(pdftest.MultiPage(3)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	for nr := 1; nr <= 3; nr++ {
		page, err := doc.ExtractPage(nr)
		if err != nil {
			t.Fatalf("ExtractPage(%d): %v", nr, err)
		}
		single, err := Open(bytes.NewReader(page))
		if err != nil {
			t.Fatalf("reopen page %d: %v", nr, err)
		}
		if got := single.PageCount(); got != 1 {
			t.Errorf("page %d: PageCount = %d, want 1", nr, got)
		}
	}
}

func TestExtractPage_OutOfRange(t *testing.T) {
	// WHAT: Page numbers outside 1..N are rejected.
	doc, err := Open(bytes.NewReader(pdftest.MultiPage(2)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := doc.ExtractPage(0); err == nil {
		t.Error("ExtractPage(0): expected error")
	}
	if _, err := doc.ExtractPage(3); err == nil {
		t.Error("ExtractPage(3): expected error")
	}
}

func TestExtractPage_OrderPreserved(t *testing.T) {
	// WHAT: Extracting pages 1..N yields distinct single-page documents.
	// WHY: Labels are paired positionally; a reordered page would attach
	// the wrong name.
	doc, err := Open(bytes.NewReader(pdftest.MultiPage(4)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var pages [][]byte
	for nr := 1; nr <= 4; nr++ {
		p, err := doc.ExtractPage(nr)
		if err != nil {
			t.Fatalf("ExtractPage(%d): %v", nr, err)
		}
		pages = append(pages, p)
	}
	for i := range pages {
		for j := i + 1; j < len(pages); j++ {
			if bytes.Equal(pages[i], pages[j]) {
				t.Errorf("pages %d and %d serialized identically", i+1, j+1)
			}
		}
	}
}
