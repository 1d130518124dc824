// internal/domain/content/registry.go
package content

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"
)

// BlockHandler renders and validates one block type.
//
// Render produces the read-only presentational output for a block payload.
// Validate is the save-time check for structured payloads: a validation
// error rejects the whole save rather than letting malformed data through.
type BlockHandler interface {
	Render(data []byte) (template.HTML, error)
	Validate(data []byte) error
}

// ErrInvalidBlock wraps all save-time validation failures.
var ErrInvalidBlock = errors.New("invalid block data")

// maxNestedDepth bounds tabs-in-tabs recursion when rendering and
// validating. Documents nested deeper than this render as fallback blocks;
// it guards against runaway recursion from corrupted data.
const maxNestedDepth = 4

// Registry maps block type tags to handlers. Rendering a type with no
// registered handler never fails: the block renders as a visible fallback
// that names the unknown type, and the condition is logged. This keeps the
// set of block types open without making unknown data a crash.
type Registry struct {
	handlers map[string]BlockHandler
	logger   *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithPageSelector supplies the collaborator the pageLink handler uses to
// check link targets at save time. Without it, pageLink validation skips the
// existence check.
func WithPageSelector(sel PageSelector) Option {
	return func(r *Registry) {
		r.handlers[TypePageLink] = &pageLinkHandler{selector: sel}
	}
}

// WithIconSelector supplies the collaborator the icon handler uses to
// resolve icon names whose blocks carry no inline SVG.
func WithIconSelector(sel IconSelector) Option {
	return func(r *Registry) {
		r.handlers[TypeIcon] = &iconHandler{selector: sel}
	}
}

// NewRegistry creates a registry with all built-in block handlers
// registered.
func NewRegistry(logger *zap.Logger, opts ...Option) *Registry {
	r := &Registry{
		handlers: make(map[string]BlockHandler),
		logger:   logger,
	}

	r.handlers[TypeHeader] = headerHandler{}
	r.handlers[TypeParagraph] = paragraphHandler{}
	r.handlers[TypeList] = listHandler{}
	r.handlers[TypeImage] = imageHandler{}
	r.handlers[TypeCode] = codeHandler{}
	r.handlers[TypeTable] = tableHandler{}
	r.handlers[TypeQuote] = quoteHandler{}
	r.handlers[TypeWarning] = warningHandler{}
	r.handlers[TypeDelimiter] = delimiterHandler{}
	r.handlers[TypeRaw] = rawHandler{}
	r.handlers[TypeChecklist] = checklistHandler{}
	r.handlers[TypeGallery] = galleryHandler{}
	r.handlers[TypeTabs] = &tabsHandler{registry: r}
	r.handlers[TypeIcon] = &iconHandler{}
	r.handlers[TypePageLink] = &pageLinkHandler{}
	r.handlers[TypeCodeExample] = codeExampleHandler{}
	r.handlers[TypeComponentProps] = componentPropsHandler{}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds or replaces the handler for a block type. New block types
// are addable without touching the dispatcher.
func (r *Registry) Register(blockType string, h BlockHandler) {
	r.handlers[blockType] = h
}

// Known reports whether a handler is registered for the block type.
func (r *Registry) Known(blockType string) bool {
	_, ok := r.handlers[blockType]
	return ok
}

// RenderBlock renders a single block. Unknown types and handler failures
// produce the fallback markup instead of an error; the page always renders.
func (r *Registry) RenderBlock(b Block) template.HTML {
	return r.renderBlockDepth(b, 0)
}

// RenderDocument renders every block of a document in order.
func (r *Registry) RenderDocument(d Document) template.HTML {
	return r.renderDocumentDepth(d, 0)
}

func (r *Registry) renderDocumentDepth(d Document, depth int) template.HTML {
	var sb strings.Builder
	for _, b := range d.Blocks {
		sb.WriteString(string(r.renderBlockDepth(b, depth)))
	}
	return template.HTML(sb.String())
}

func (r *Registry) renderBlockDepth(b Block, depth int) template.HTML {
	if depth > maxNestedDepth {
		r.logger.Warn("block nesting too deep, rendering fallback",
			zap.String("type", b.Type),
			zap.Int("depth", depth))
		return fallbackHTML(b.Type)
	}

	h, ok := r.handlers[b.Type]
	if !ok {
		r.logger.Warn("no handler for block type, rendering fallback",
			zap.String("type", b.Type))
		return fallbackHTML(b.Type)
	}

	var out template.HTML
	var err error
	if th, isTabs := h.(*tabsHandler); isTabs {
		out, err = th.renderDepth(b.Data, depth)
	} else {
		out, err = h.Render(b.Data)
	}
	if err != nil {
		r.logger.Warn("block render failed, rendering fallback",
			zap.String("type", b.Type),
			zap.Error(err))
		return fallbackHTML(b.Type)
	}
	return out
}

// ValidateDocument runs save-time validation over every block. Blocks of
// unknown types pass: they must survive a save untouched even though this
// instance cannot display them.
func (r *Registry) ValidateDocument(d Document) error {
	return r.validateDocumentDepth(d, 0)
}

func (r *Registry) validateDocumentDepth(d Document, depth int) error {
	if depth > maxNestedDepth {
		return fmt.Errorf("%w: documents nested deeper than %d levels", ErrInvalidBlock, maxNestedDepth)
	}
	for i, b := range d.Blocks {
		h, ok := r.handlers[b.Type]
		if !ok {
			continue
		}
		var err error
		if th, isTabs := h.(*tabsHandler); isTabs {
			err = th.validateDepth(b.Data, depth)
		} else {
			err = h.Validate(b.Data)
		}
		if err != nil {
			return fmt.Errorf("block %d (%s): %w", i, b.Type, err)
		}
	}
	return nil
}

// UnknownTypes returns the distinct block types in the document that have no
// registered handler, in first-seen order.
func (r *Registry) UnknownTypes(d Document) []string {
	var unknown []string
	seen := make(map[string]struct{})
	for _, b := range d.Blocks {
		if _, ok := r.handlers[b.Type]; ok {
			continue
		}
		if _, dup := seen[b.Type]; dup {
			continue
		}
		seen[b.Type] = struct{}{}
		unknown = append(unknown, b.Type)
	}
	return unknown
}

// fallbackHTML is the visible stand-in for blocks this instance cannot
// display. The literal type name is included (escaped) so editors can see
// what is there.
func fallbackHTML(blockType string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<div class="block block-unsupported">Unsupported block type: <code>%s</code></div>`,
		template.HTMLEscapeString(blockType)))
}
