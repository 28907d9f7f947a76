// Package pdftest builds small, well-formed PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
)

// MultiPage returns an n-page PDF. Each page carries one line of text,
// "Test page <nr>", so extraction tests can check which page they got.
func MultiPage(n int) []byte {
	var b bytes.Buffer
	offsets := []int{0} // object 0 is the free head

	obj := func(body string) {
		offsets = append(offsets, b.Len())
		b.WriteString(body)
	}

	b.WriteString("%PDF-1.4\n")

	// Object numbering: 1 catalog, 2 page tree, 3 font,
	// then per page i (1-based): 2+2i page dict, 3+2i content stream.
	kids := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			kids += " "
		}
		kids += fmt.Sprintf("%d 0 R", 2+2*i)
	}

	obj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	obj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", kids, n))
	obj("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	for i := 1; i <= n; i++ {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (Test page %d) Tj ET", i)
		obj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n",
			2+2*i, 3+2*i))
		obj(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			3+2*i, len(stream), stream))
	}

	xrefPos := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(offsets))
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets), xrefPos)

	return b.Bytes()
}
