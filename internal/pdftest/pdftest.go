// Package pdftest writes small PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"seehuhn.de/go/pdf"
)

// Page describes one page of a generated document.
type Page struct {
	Width, Height float64
	Text          string
}

// Letter is a US Letter page in points.
var Letter = Page{Width: 612, Height: 792}

// A4 is an ISO A4 page in points.
var A4 = Page{Width: 595, Height: 842}

func mediaBox(p Page) pdf.Array {
	return pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Real(p.Width), pdf.Real(p.Height)}
}

// Build returns a PDF with one page per entry. When inherit is true, the
// media box of the first page is stored on the page tree root and pages of
// the same size omit their own.
func Build(t testing.TB, pages []Page, inherit bool) []byte {
	t.Helper()

	data := pdf.NewData(pdf.V1_7)
	rootRef := data.Alloc()
	fontRef := data.Alloc()
	require.NoError(t, data.Put(fontRef, pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": pdf.Name("Helvetica"),
	}))

	kids := make(pdf.Array, 0, len(pages))
	for i, p := range pages {
		text := p.Text
		if text == "" {
			text = fmt.Sprintf("Page %d", i+1)
		}
		contentRef := data.Alloc()
		w, err := data.OpenStream(contentRef, pdf.Dict{})
		require.NoError(t, err)
		_, err = fmt.Fprintf(w, "BT /F1 24 Tf 72 %g Td (%s) Tj ET", p.Height-72, text)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		page := pdf.Dict{
			"Type":      pdf.Name("Page"),
			"Parent":    rootRef,
			"Contents":  contentRef,
			"Resources": pdf.Dict{"Font": pdf.Dict{"F1": fontRef}},
		}
		if !inherit || p.Width != pages[0].Width || p.Height != pages[0].Height {
			page["MediaBox"] = mediaBox(p)
		}
		pageRef := data.Alloc()
		require.NoError(t, data.Put(pageRef, page))
		kids = append(kids, pageRef)
	}

	root := pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Kids":  kids,
		"Count": pdf.Integer(len(pages)),
	}
	if inherit && len(pages) > 0 {
		root["MediaBox"] = mediaBox(pages[0])
	}
	require.NoError(t, data.Put(rootRef, root))
	data.GetMeta().Catalog.Pages = rootRef

	buf := &bytes.Buffer{}
	require.NoError(t, data.Write(buf))
	return buf.Bytes()
}

// Write stores a generated PDF as dir/name and returns its path.
func Write(t testing.TB, dir, name string, pages []Page) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, Build(t, pages, false), 0o644))
	return path
}
