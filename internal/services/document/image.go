package document

import (
	"bytes"
	"fmt"
	"io"
	"maps"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"seehuhn.de/go/pdf"
)

// ImageHandle refers to an image already stored in a document. Placing it on
// further pages does not copy the image data again.
type ImageHandle struct {
	ref  pdf.Reference
	size models.Rect
}

func (h ImageHandle) Size() models.Rect { return h.size }

// EmbedImage stores pair as a JPEG image with a JPEG soft mask and draws it
// over the whole media box of page i.
func (d *Document) EmbedImage(i int, pair *models.PageImagePair) (ImageHandle, error) {
	if pair == nil || len(pair.Base) == 0 || len(pair.Mask) == 0 {
		return ImageHandle{}, d.fail(fmt.Errorf("page %d: empty watermark image", i+1))
	}
	if _, err := d.page(i); err != nil {
		return ImageHandle{}, err
	}

	maskRef := d.alloc()
	err := d.putStream(maskRef, pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(pair.Size.Width),
		"Height":           pdf.Integer(pair.Size.Height),
		"ColorSpace":       pdf.Name("DeviceGray"),
		"BitsPerComponent": pdf.Integer(8),
		"Filter":           pdf.Name("DCTDecode"),
	}, pair.Mask)
	if err != nil {
		return ImageHandle{}, d.fail(fmt.Errorf("failed to store mask: %w", err))
	}

	baseRef := d.alloc()
	err = d.putStream(baseRef, pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(pair.Size.Width),
		"Height":           pdf.Integer(pair.Size.Height),
		"ColorSpace":       pdf.Name("DeviceRGB"),
		"BitsPerComponent": pdf.Integer(8),
		"Filter":           pdf.Name("DCTDecode"),
		"SMask":            maskRef,
	}, pair.Base)
	if err != nil {
		return ImageHandle{}, d.fail(fmt.Errorf("failed to store image: %w", err))
	}

	h := ImageHandle{ref: baseRef, size: pair.Size}
	if err := d.PlaceImage(i, h); err != nil {
		return ImageHandle{}, err
	}
	return h, nil
}

// PlaceImage draws an embedded image over the whole media box of page i on
// top of the existing content. The original content is wrapped in q/Q so
// that its graphics state cannot leak into the watermark.
func (d *Document) PlaceImage(i int, h ImageHandle) error {
	if h.ref == 0 {
		return d.fail(fmt.Errorf("page %d: invalid image handle", i+1))
	}
	page, err := d.page(i)
	if err != nil {
		return err
	}
	box, err := d.MediaBox(i)
	if err != nil {
		return err
	}

	resObj, err := d.inherited(page, "Resources")
	if err != nil {
		return d.fail(fmt.Errorf("page %d: %w", i+1, err))
	}
	res, err := pdf.GetDict(d.data, resObj)
	if err != nil {
		return d.fail(fmt.Errorf("page %d: invalid resources: %w", i+1, err))
	}
	res = maps.Clone(res)
	if res == nil {
		res = pdf.Dict{}
	}
	xobjects, err := pdf.GetDict(d.data, res["XObject"])
	if err != nil {
		return d.fail(fmt.Errorf("page %d: invalid xobject resources: %w", i+1, err))
	}
	xobjects = maps.Clone(xobjects)
	if xobjects == nil {
		xobjects = pdf.Dict{}
	}

	name := d.imageName(xobjects)
	xobjects[name] = h.ref
	res["XObject"] = xobjects

	prefix, err := d.prefixStream()
	if err != nil {
		return d.fail(err)
	}
	suffix := d.alloc()
	ops := fmt.Sprintf("Q\nq %s 0 0 %s %s %s cm /%s Do Q\n",
		formatNumber(box.Width), formatNumber(box.Height),
		formatNumber(box.LLX), formatNumber(box.LLY), name)
	if err := d.putStream(suffix, pdf.Dict{}, []byte(ops)); err != nil {
		return d.fail(fmt.Errorf("failed to store page content: %w", err))
	}

	contents := pdf.Array{prefix}
	switch c := page["Contents"].(type) {
	case nil:
	case pdf.Array:
		contents = append(contents, c...)
	case pdf.Reference:
		resolved, err := pdf.Resolve(d.data, c)
		if err != nil {
			return d.fail(fmt.Errorf("page %d: %w", i+1, err))
		}
		if arr, ok := resolved.(pdf.Array); ok {
			contents = append(contents, arr...)
		} else {
			contents = append(contents, c)
		}
	default:
		return d.fail(fmt.Errorf("page %d: unexpected content type %T", i+1, c))
	}
	contents = append(contents, suffix)

	updated := maps.Clone(page)
	updated["Resources"] = res
	updated["Contents"] = contents
	if err := d.data.Put(d.pages[i], updated); err != nil {
		return d.fail(fmt.Errorf("failed to update page %d: %w", i+1, err))
	}
	return nil
}

// Watermark is an image with a soft mask found on a page.
type Watermark struct {
	Name   string
	Width  int
	Height int
	Base   []byte
	Mask   []byte
}

// Watermarks returns the raw data of the masked images page i references.
func (d *Document) Watermarks(i int) ([]Watermark, error) {
	page, err := d.page(i)
	if err != nil {
		return nil, err
	}
	resObj, err := d.inherited(page, "Resources")
	if err != nil {
		return nil, d.fail(err)
	}
	res, err := pdf.GetDict(d.data, resObj)
	if err != nil {
		return nil, d.fail(err)
	}
	xobjects, err := pdf.GetDict(d.data, res["XObject"])
	if err != nil {
		return nil, d.fail(err)
	}

	var out []Watermark
	for name, obj := range xobjects {
		img, err := pdf.GetStream(d.data, obj)
		if err != nil || img == nil {
			continue
		}
		if sub, _ := pdf.GetName(d.data, img.Dict["Subtype"]); sub != "Image" {
			continue
		}
		mask, err := pdf.GetStream(d.data, img.Dict["SMask"])
		if err != nil || mask == nil {
			continue
		}

		w, _ := pdf.GetInt(d.data, img.Dict["Width"])
		h, _ := pdf.GetInt(d.data, img.Dict["Height"])
		wm := Watermark{Name: string(name), Width: int(w), Height: int(h)}
		if wm.Base, err = io.ReadAll(img.R); err != nil {
			return nil, d.fail(err)
		}
		if wm.Mask, err = io.ReadAll(mask.R); err != nil {
			return nil, d.fail(err)
		}
		out = append(out, wm)
	}
	return out, nil
}

func (d *Document) putStream(ref pdf.Reference, dict pdf.Dict, data []byte) error {
	w, err := d.data.OpenStream(ref, dict)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// prefixStream returns the shared "q" stream that opens every modified page.
func (d *Document) prefixStream() (pdf.Reference, error) {
	if d.prefix != 0 {
		return d.prefix, nil
	}
	ref := d.alloc()
	if err := d.putStream(ref, pdf.Dict{}, []byte("q\n")); err != nil {
		return 0, fmt.Errorf("failed to store page content: %w", err)
	}
	d.prefix = ref
	return ref, nil
}

func (d *Document) imageName(used pdf.Dict) pdf.Name {
	for {
		d.images++
		name := pdf.Name(fmt.Sprintf("WM%d", d.images))
		if _, taken := used[name]; !taken {
			return name
		}
	}
}

func formatNumber(x float64) string {
	s := fmt.Sprintf("%.4f", x)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
