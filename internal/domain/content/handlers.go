// internal/domain/content/handlers.go
package content

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
)

// Built-in handlers for the core block types.
//
// Rendering policy: block payload text (paragraphs, list items, table cells,
// quotes, warnings, raw blocks) is markup authored by a privileged editor
// and renders verbatim; it is not re-sanitized here. Values that land inside
// attributes (URLs, captions used as alt text) and code that must display
// literally are escaped.

// decode unmarshals a structured payload, mapping failures to
// ErrInvalidBlock.
func decode(data []byte, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: missing payload", ErrInvalidBlock)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBlock, err)
	}
	return nil
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

type headerHandler struct{}

func (headerHandler) Render(data []byte) (template.HTML, error) {
	var d HeaderData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	level := d.Level
	if level < 1 || level > 6 {
		level = 2
	}
	return template.HTML(fmt.Sprintf(`<h%d class="block block-header">%s</h%d>`, level, d.Text, level)), nil
}

func (headerHandler) Validate(data []byte) error {
	var d HeaderData
	if err := decode(data, &d); err != nil {
		return err
	}
	if d.Level != 0 && (d.Level < 1 || d.Level > 6) {
		return fmt.Errorf("%w: header level %d out of range", ErrInvalidBlock, d.Level)
	}
	return nil
}

type paragraphHandler struct{}

func (paragraphHandler) Render(data []byte) (template.HTML, error) {
	var d ParagraphData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	return template.HTML(`<p class="block block-paragraph">` + d.Text + `</p>`), nil
}

func (paragraphHandler) Validate(data []byte) error {
	var d ParagraphData
	return decode(data, &d)
}

type listHandler struct{}

func (listHandler) Render(data []byte) (template.HTML, error) {
	var d ListData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	tag := "ul"
	if d.Style == ListOrdered {
		tag = "ol"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `<%s class="block block-list">`, tag)
	for _, item := range d.Items {
		sb.WriteString("<li>" + item + "</li>")
	}
	fmt.Fprintf(&sb, `</%s>`, tag)
	return template.HTML(sb.String()), nil
}

func (listHandler) Validate(data []byte) error {
	var d ListData
	if err := decode(data, &d); err != nil {
		return err
	}
	if d.Style != ListOrdered && d.Style != ListUnordered {
		return fmt.Errorf("%w: list style %q", ErrInvalidBlock, d.Style)
	}
	if d.Items == nil {
		return fmt.Errorf("%w: list has no items field", ErrInvalidBlock)
	}
	return nil
}

type imageHandler struct{}

func (imageHandler) Render(data []byte) (template.HTML, error) {
	var d ImageData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	class := "block block-image"
	if d.Stretched {
		class += " stretched"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `<figure class="%s"><img src="%s" alt="%s">`, class, esc(d.URL), esc(d.Caption))
	if d.Caption != "" {
		sb.WriteString(`<figcaption>` + d.Caption + `</figcaption>`)
	}
	sb.WriteString(`</figure>`)
	return template.HTML(sb.String()), nil
}

func (imageHandler) Validate(data []byte) error {
	var d ImageData
	if err := decode(data, &d); err != nil {
		return err
	}
	if d.URL == "" {
		return fmt.Errorf("%w: image has no url", ErrInvalidBlock)
	}
	return nil
}

type codeHandler struct{}

func (codeHandler) Render(data []byte) (template.HTML, error) {
	var d CodeData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	return template.HTML(fmt.Sprintf(
		`<pre class="block block-code"><code class="language-%s">%s</code></pre>`,
		esc(d.Language), esc(d.Code))), nil
}

func (codeHandler) Validate(data []byte) error {
	var d CodeData
	return decode(data, &d)
}

type tableHandler struct{}

func (tableHandler) Render(data []byte) (template.HTML, error) {
	// Lenient decode for rendering: rows decode cell by cell so one
	// malformed cell does not take down the table. Save-time validation
	// is strict (see Validate).
	var d struct {
		WithHeadings bool                `json:"withHeadings"`
		Content      [][]json.RawMessage `json:"content"`
	}
	if err := decode(data, &d); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(`<table class="block block-table">`)
	for i, row := range d.Content {
		cellTag := "td"
		if d.WithHeadings && i == 0 {
			cellTag = "th"
		}
		sb.WriteString("<tr>")
		for _, raw := range row {
			var cell string
			if err := json.Unmarshal(raw, &cell); err != nil {
				continue // skip non-string cells
			}
			fmt.Fprintf(&sb, "<%s>%s</%s>", cellTag, cell, cellTag)
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString(`</table>`)
	return template.HTML(sb.String()), nil
}

func (tableHandler) Validate(data []byte) error {
	var d TableData
	if err := decode(data, &d); err != nil {
		return err
	}
	if d.Content == nil {
		return fmt.Errorf("%w: table has no content field", ErrInvalidBlock)
	}
	return nil
}

type quoteHandler struct{}

func (quoteHandler) Render(data []byte) (template.HTML, error) {
	var d QuoteData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(`<blockquote class="block block-quote"><p>` + d.Text + `</p>`)
	if d.Caption != "" {
		sb.WriteString(`<cite>` + d.Caption + `</cite>`)
	}
	sb.WriteString(`</blockquote>`)
	return template.HTML(sb.String()), nil
}

func (quoteHandler) Validate(data []byte) error {
	var d QuoteData
	return decode(data, &d)
}

type warningHandler struct{}

func (warningHandler) Render(data []byte) (template.HTML, error) {
	var d WarningData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(`<div class="block block-warning">`)
	if d.Title != "" {
		sb.WriteString(`<strong>` + d.Title + `</strong>`)
	}
	sb.WriteString(`<p>` + d.Message + `</p></div>`)
	return template.HTML(sb.String()), nil
}

func (warningHandler) Validate(data []byte) error {
	var d WarningData
	return decode(data, &d)
}

type delimiterHandler struct{}

func (delimiterHandler) Render([]byte) (template.HTML, error) {
	return `<hr class="block block-delimiter">`, nil
}

func (delimiterHandler) Validate([]byte) error {
	return nil // delimiter carries no payload
}

type rawHandler struct{}

func (rawHandler) Render(data []byte) (template.HTML, error) {
	var d RawData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	return template.HTML(`<div class="block block-raw">` + d.HTML + `</div>`), nil
}

func (rawHandler) Validate(data []byte) error {
	var d RawData
	return decode(data, &d)
}

type checklistHandler struct{}

func (checklistHandler) Render(data []byte) (template.HTML, error) {
	var d ChecklistData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(`<ul class="block block-checklist">`)
	for _, item := range d.Items {
		check := `<input type="checkbox" disabled>`
		if item.Checked {
			check = `<input type="checkbox" checked disabled>`
		}
		sb.WriteString(`<li>` + check + `<span>` + item.Text + `</span></li>`)
	}
	sb.WriteString(`</ul>`)
	return template.HTML(sb.String()), nil
}

func (checklistHandler) Validate(data []byte) error {
	var d ChecklistData
	if err := decode(data, &d); err != nil {
		return err
	}
	if d.Items == nil {
		return fmt.Errorf("%w: checklist has no items field", ErrInvalidBlock)
	}
	return nil
}

type galleryHandler struct{}

func (galleryHandler) Render(data []byte) (template.HTML, error) {
	var d GalleryData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(`<div class="block block-gallery">`)
	for _, img := range d.Images {
		fmt.Fprintf(&sb, `<figure><img src="%s" alt="%s">`, esc(img.URL), esc(img.Caption))
		if img.Caption != "" {
			sb.WriteString(`<figcaption>` + img.Caption + `</figcaption>`)
		}
		sb.WriteString(`</figure>`)
	}
	sb.WriteString(`</div>`)
	return template.HTML(sb.String()), nil
}

func (galleryHandler) Validate(data []byte) error {
	var d GalleryData
	if err := decode(data, &d); err != nil {
		return err
	}
	for i, img := range d.Images {
		if img.URL == "" {
			return fmt.Errorf("%w: gallery image %d has no url", ErrInvalidBlock, i)
		}
	}
	return nil
}
