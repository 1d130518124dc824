// internal/domain/content/custom.go
package content

import (
	"context"
	"fmt"
	"html/template"
	"strings"
)

// Custom interactive block handlers: icon, pageLink, tabs, codeExample,
// componentProps. The icon and pageLink handlers integrate with external
// selector collaborators passed in explicitly at registry construction;
// there is no ambient event bus between the editor and the host.

// PageSelector resolves page references for pageLink blocks.
type PageSelector interface {
	// PageExists reports whether a page with the given id exists.
	PageExists(ctx context.Context, pageID string) bool
}

// IconSelector resolves icon names for icon blocks that carry no inline SVG.
type IconSelector interface {
	// IconSVG returns the sanitized SVG markup for the named icon, or
	// false if no such icon exists.
	IconSVG(ctx context.Context, name string) (string, bool)
}

type iconHandler struct {
	selector IconSelector
}

func (h *iconHandler) Render(data []byte) (template.HTML, error) {
	var d IconData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	svg := d.SVG
	if svg == "" && h.selector != nil {
		if resolved, ok := h.selector.IconSVG(context.Background(), d.Name); ok {
			svg = resolved
		}
	}
	size := d.Size
	if size <= 0 {
		size = 24
	}
	var style strings.Builder
	fmt.Fprintf(&style, "width:%dpx;height:%dpx;", size, size)
	if d.Color != "" {
		fmt.Fprintf(&style, "color:%s;", esc(d.Color))
	}
	if svg == "" {
		// Icon not resolvable on this instance; show the name so editors
		// can tell what is missing.
		return template.HTML(fmt.Sprintf(
			`<span class="block block-icon icon-missing" title="%s">%s</span>`,
			esc(d.Name), esc(d.Name))), nil
	}
	return template.HTML(fmt.Sprintf(
		`<span class="block block-icon" style="%s" data-icon="%s">%s</span>`,
		style.String(), esc(d.Name), svg)), nil
}

func (h *iconHandler) Validate(data []byte) error {
	var d IconData
	if err := decode(data, &d); err != nil {
		return err
	}
	if d.Name == "" {
		return fmt.Errorf("%w: icon has no name", ErrInvalidBlock)
	}
	if d.Size < 0 {
		return fmt.Errorf("%w: icon size %d is negative", ErrInvalidBlock, d.Size)
	}
	return nil
}

type pageLinkHandler struct {
	selector PageSelector
}

func (h *pageLinkHandler) Render(data []byte) (template.HTML, error) {
	var d PageLinkData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	style := d.Style
	switch style {
	case PageLinkVertical, PageLinkHorizontal, PageLinkMinimal:
	default:
		style = PageLinkVertical
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `<a class="block block-pagelink pagelink-%s" href="/%s" data-page-id="%s">`,
		style, esc(d.Slug), esc(d.PageID))
	sb.WriteString(`<span class="pagelink-title">` + esc(d.Title) + `</span>`)
	if d.Summary != "" && style != PageLinkMinimal {
		sb.WriteString(`<span class="pagelink-summary">` + esc(d.Summary) + `</span>`)
	}
	sb.WriteString(`</a>`)
	return template.HTML(sb.String()), nil
}

func (h *pageLinkHandler) Validate(data []byte) error {
	var d PageLinkData
	if err := decode(data, &d); err != nil {
		return err
	}
	if d.PageID == "" {
		return fmt.Errorf("%w: pageLink has no pageId", ErrInvalidBlock)
	}
	switch d.Style {
	case "", PageLinkVertical, PageLinkHorizontal, PageLinkMinimal:
	default:
		return fmt.Errorf("%w: pageLink style %q", ErrInvalidBlock, d.Style)
	}
	if h.selector != nil && !h.selector.PageExists(context.Background(), d.PageID) {
		return fmt.Errorf("%w: pageLink target %s does not exist", ErrInvalidBlock, d.PageID)
	}
	return nil
}

// tabsHandler renders nested documents through the owning registry. The
// depth-aware entry points are called by the registry so recursion stays
// bounded.
type tabsHandler struct {
	registry *Registry
}

func (h *tabsHandler) Render(data []byte) (template.HTML, error) {
	return h.renderDepth(data, 0)
}

func (h *tabsHandler) renderDepth(data []byte, depth int) (template.HTML, error) {
	var d TabsData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(`<div class="block block-tabs">`)
	sb.WriteString(`<div class="tab-labels">`)
	for i, tab := range d.Tabs {
		active := ""
		if i == 0 {
			active = ` active`
		}
		fmt.Fprintf(&sb, `<button class="tab-label%s" data-tab="%d">%s</button>`, active, i, esc(tab.Title))
	}
	sb.WriteString(`</div>`)
	for i, tab := range d.Tabs {
		active := ""
		if i == 0 {
			active = ` active`
		}
		fmt.Fprintf(&sb, `<div class="tab-panel%s" data-tab="%d">`, active, i)
		sb.WriteString(string(h.registry.renderDocumentDepth(tab.Content, depth+1)))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	return template.HTML(sb.String()), nil
}

func (h *tabsHandler) Validate(data []byte) error {
	return h.validateDepth(data, 0)
}

func (h *tabsHandler) validateDepth(data []byte, depth int) error {
	var d TabsData
	if err := decode(data, &d); err != nil {
		return err
	}
	if len(d.Tabs) == 0 {
		return fmt.Errorf("%w: tabs block has no tabs", ErrInvalidBlock)
	}
	for i, tab := range d.Tabs {
		if tab.Title == "" {
			return fmt.Errorf("%w: tab %d has no title", ErrInvalidBlock, i)
		}
		if err := h.registry.validateDocumentDepth(tab.Content, depth+1); err != nil {
			return fmt.Errorf("tab %d: %w", i, err)
		}
	}
	return nil
}

type codeExampleHandler struct{}

func (codeExampleHandler) Render(data []byte) (template.HTML, error) {
	var d CodeExampleData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(`<div class="block block-codeexample">`)
	if d.Title != "" {
		sb.WriteString(`<div class="codeexample-title">` + esc(d.Title) + `</div>`)
	}
	if d.Preview {
		// The preview pane renders the snippet markup live, verbatim.
		sb.WriteString(`<div class="codeexample-preview">` + d.Code + `</div>`)
	}
	fmt.Fprintf(&sb, `<pre><code class="language-%s">%s</code></pre>`, esc(d.Language), esc(d.Code))
	sb.WriteString(`</div>`)
	return template.HTML(sb.String()), nil
}

func (codeExampleHandler) Validate(data []byte) error {
	var d CodeExampleData
	if err := decode(data, &d); err != nil {
		return err
	}
	if d.Code == "" {
		return fmt.Errorf("%w: codeExample has no code", ErrInvalidBlock)
	}
	return nil
}

type componentPropsHandler struct{}

func (componentPropsHandler) Render(data []byte) (template.HTML, error) {
	var d ComponentPropsData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(`<table class="block block-componentprops">`)
	fmt.Fprintf(&sb, `<caption>%s</caption>`, esc(d.Component))
	sb.WriteString(`<tr><th>Prop</th><th>Type</th><th>Default</th><th>Description</th></tr>`)
	for _, p := range d.Props {
		fmt.Fprintf(&sb, `<tr><td><code>%s</code></td><td><code>%s</code></td><td>%s</td><td>%s</td></tr>`,
			esc(p.Name), esc(p.Type), esc(p.Default), esc(p.Description))
	}
	sb.WriteString(`</table>`)
	return template.HTML(sb.String()), nil
}

func (componentPropsHandler) Validate(data []byte) error {
	var d ComponentPropsData
	if err := decode(data, &d); err != nil {
		return err
	}
	if d.Component == "" {
		return fmt.Errorf("%w: componentProps has no component name", ErrInvalidBlock)
	}
	for i, p := range d.Props {
		if p.Name == "" {
			return fmt.Errorf("%w: componentProps row %d has no name", ErrInvalidBlock, i)
		}
	}
	return nil
}
