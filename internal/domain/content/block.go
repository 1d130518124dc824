// internal/domain/content/block.go

// Package content defines the block-based content model: a page document is
// an ordered sequence of typed blocks, each carrying a type tag and a
// type-specific payload. The payload stays raw at the schema boundary so
// that blocks of unrecognized types survive a load/save round trip
// byte-for-byte; handlers decode it into typed structs for rendering and
// save-time validation (see registry.go).
package content

import "encoding/json"

// Block is a single unit of page content.
type Block struct {
	ID   string          `bson:"id,omitempty" json:"id,omitempty"`
	Type string          `bson:"type" json:"type"`
	Data json.RawMessage `bson:"data,omitempty" json:"data"`
}

// Built-in block type tags. The set is open: an instance can load and save
// types it does not recognize, it just renders them as a fallback.
const (
	TypeHeader         = "header"
	TypeParagraph      = "paragraph"
	TypeList           = "list"
	TypeImage          = "image"
	TypeCode           = "code"
	TypeTable          = "table"
	TypeQuote          = "quote"
	TypeWarning        = "warning"
	TypeDelimiter      = "delimiter"
	TypeRaw            = "raw"
	TypeChecklist      = "checklist"
	TypeGallery        = "gallery"
	TypeTabs           = "tabs"
	TypeIcon           = "icon"
	TypePageLink       = "pageLink"
	TypeCodeExample    = "codeExample"
	TypeComponentProps = "componentProps"
)

// HeaderData is the payload of a header block.
type HeaderData struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// ParagraphData is the payload of a paragraph block. Text is authored markup
// and renders verbatim.
type ParagraphData struct {
	Text string `json:"text"`
}

// List styles.
const (
	ListOrdered   = "ordered"
	ListUnordered = "unordered"
)

// ListData is the payload of a list block.
type ListData struct {
	Style string   `json:"style"` // ordered or unordered
	Items []string `json:"items"`
}

// ImageData is the payload of an image block. URL may be a data URL for
// embedded uploads.
type ImageData struct {
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	Stretched bool   `json:"stretched,omitempty"`
}

// CodeData is the payload of a code block.
type CodeData struct {
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
}

// TableData is the payload of a table block. Content is a sequence of rows,
// each an ordered sequence of cell strings.
type TableData struct {
	WithHeadings bool       `json:"withHeadings,omitempty"`
	Content      [][]string `json:"content"`
}

// QuoteData is the payload of a quote block.
type QuoteData struct {
	Text    string `json:"text"`
	Caption string `json:"caption,omitempty"`
}

// WarningData is the payload of a warning/callout block.
type WarningData struct {
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

// RawData is the payload of a raw markup block; HTML renders verbatim.
type RawData struct {
	HTML string `json:"html"`
}

// ChecklistItem is one entry of a checklist block.
type ChecklistItem struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// ChecklistData is the payload of a checklist block.
type ChecklistData struct {
	Items []ChecklistItem `json:"items"`
}

// GalleryImage is one entry of a gallery block.
type GalleryImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// GalleryData is the payload of a gallery block.
type GalleryData struct {
	Images []GalleryImage `json:"images"`
}

// Tab is one pane of a tabs block; it wraps its own nested document.
type Tab struct {
	Title   string   `json:"title"`
	Content Document `json:"content"`
}

// TabsData is the payload of a tabs block.
type TabsData struct {
	Tabs []Tab `json:"tabs"`
}

// IconData is the payload of an icon block. SVG is trusted markup that was
// sanitized when the icon entered the system.
type IconData struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	SVG      string `json:"svg,omitempty"`
	Size     int    `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
}

// Page-link display styles.
const (
	PageLinkVertical   = "vertical"
	PageLinkHorizontal = "horizontal"
	PageLinkMinimal    = "minimal"
)

// PageLinkData is the payload of a pageLink block: a card linking to another
// page. Title, Slug, and Summary are denormalized at authoring time.
type PageLinkData struct {
	PageID  string `json:"pageId"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Summary string `json:"summary,omitempty"`
	Style   string `json:"style,omitempty"` // vertical, horizontal, minimal
}

// CodeExampleData is the payload of a codeExample block: a snippet with an
// optional live preview of the same markup.
type CodeExampleData struct {
	Title    string `json:"title,omitempty"`
	Language string `json:"language,omitempty"`
	Code     string `json:"code"`
	Preview  bool   `json:"preview,omitempty"`
}

// PropRow is one row of a componentProps block.
type PropRow struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// ComponentPropsData is the payload of a componentProps block documenting a
// design-system component's API.
type ComponentPropsData struct {
	Component string    `json:"component"`
	Props     []PropRow `json:"props"`
}
