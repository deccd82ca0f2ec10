package document

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

var errNoMediaBox = errors.New("page has no media box")

// Box is the media box of a page in PDF points.
type Box struct {
	LLX, LLY      float64
	Width, Height float64
}

// Scaled returns the pixel size of the box rendered at factor pixels per point.
func (b Box) Scaled(factor int) models.Rect {
	return models.Rect{
		Width:  int(b.Width * float64(factor)),
		Height: int(b.Height * float64(factor)),
	}
}

func (b Box) String() string {
	return fmt.Sprintf("%gx%g", b.Width, b.Height)
}

// Document is a PDF loaded completely into memory. It is not safe for
// concurrent use.
type Document struct {
	path  string
	data  *pdf.Data
	pages []pdf.Reference

	reserved map[pdf.Reference]bool
	prefix   pdf.Reference
	images   int
}

// Open reads the PDF at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.DocumentError{Path: path, Err: err}
	}
	defer f.Close()

	return Read(path, f)
}

// Read loads a PDF from r. The path is used in error messages only.
func Read(path string, r io.ReadSeeker) (*Document, error) {
	data, err := pdf.Read(r, nil)
	if err != nil {
		return nil, &models.DocumentError{Path: path, Err: fmt.Errorf("failed to parse pdf: %w", err)}
	}

	pages, err := pagetree.FindPages(data)
	if err != nil {
		return nil, &models.DocumentError{Path: path, Err: fmt.Errorf("failed to read page tree: %w", err)}
	}

	// objects kept outside the object table by pdf.Read must not be
	// handed out again by Alloc
	reserved := make(map[pdf.Reference]bool)
	for _, key := range []pdf.Name{"Root", "Info"} {
		if ref, ok := data.GetMeta().Trailer[key].(pdf.Reference); ok {
			reserved[ref] = true
		}
	}

	return &Document{
		path:     path,
		data:     data,
		pages:    pages,
		reserved: reserved,
	}, nil
}

func (d *Document) NumPages() int { return len(d.pages) }

// MediaBox returns the media box of page i (zero based), following the
// page tree for inherited values.
func (d *Document) MediaBox(i int) (Box, error) {
	page, err := d.page(i)
	if err != nil {
		return Box{}, err
	}

	obj, err := d.inherited(page, "MediaBox")
	if err != nil {
		return Box{}, d.fail(fmt.Errorf("page %d: %w", i+1, err))
	}
	rect, err := pdf.GetRectangle(d.data, obj)
	if err != nil {
		return Box{}, d.fail(fmt.Errorf("page %d: invalid media box: %w", i+1, err))
	}
	if rect == nil {
		return Box{}, d.fail(fmt.Errorf("page %d: %w", i+1, errNoMediaBox))
	}

	box := Box{
		LLX:    rect.LLx,
		LLY:    rect.LLy,
		Width:  rect.URx - rect.LLx,
		Height: rect.URy - rect.LLy,
	}
	if box.Width <= 0 || box.Height <= 0 {
		return Box{}, d.fail(fmt.Errorf("page %d: empty media box %s", i+1, box))
	}
	return box, nil
}

// Write serialises the document, including every change made so far.
func (d *Document) Write(w io.Writer) error {
	if err := d.data.Write(w); err != nil {
		return d.fail(fmt.Errorf("failed to write pdf: %w", err))
	}
	return nil
}

func (d *Document) Close() error {
	return d.data.Close()
}

func (d *Document) page(i int) (pdf.Dict, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, d.fail(fmt.Errorf("page %d out of range (document has %d pages)", i+1, len(d.pages)))
	}
	page, err := pdf.GetDict(d.data, d.pages[i])
	if err != nil {
		return nil, d.fail(fmt.Errorf("page %d: %w", i+1, err))
	}
	if page == nil {
		return nil, d.fail(fmt.Errorf("page %d is missing", i+1))
	}
	return page, nil
}

// inherited looks key up in the page dictionary and then in its ancestors.
func (d *Document) inherited(page pdf.Dict, key pdf.Name) (pdf.Object, error) {
	node := page
	for depth := 0; node != nil; depth++ {
		if depth > 64 {
			return nil, errors.New("page tree too deep")
		}
		if obj, ok := node[key]; ok {
			return obj, nil
		}
		parent, err := pdf.GetDict(d.data, node["Parent"])
		if err != nil {
			return nil, err
		}
		node = parent
	}
	return nil, nil
}

func (d *Document) alloc() pdf.Reference {
	for {
		ref := d.data.Alloc()
		if !d.reserved[ref] {
			return ref
		}
	}
}

func (d *Document) fail(err error) error {
	return &models.DocumentError{Path: d.path, Err: err}
}
