// internal/domain/content/editors.go
package content

// Editing-surface descriptors. Rendering and editing resolve separately: a
// read-only viewer never pays for editor wiring, and an editing context asks
// the registry for an EditorSpec describing the widget to mount for a block
// type. Blocks of unknown types get the preserve widget, which shows the raw
// payload read-only and keeps it intact through the edit session.

// Editor widget kinds.
const (
	WidgetText     = "text"      // single-line input
	WidgetRichText = "richtext"  // multi-line markup area
	WidgetCodeArea = "code"      // monospace area
	WidgetItems    = "items"     // repeatable row editor (lists, checklists, props)
	WidgetGrid     = "grid"      // table cell grid
	WidgetSelector = "selector"  // external selector (icon library, page picker)
	WidgetNested   = "nested"    // nested document editor (tabs)
	WidgetPreserve = "preserve"  // read-only raw payload, kept byte-identical
)

// FieldSpec describes one editable field of a block payload.
type FieldSpec struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Widget  string   `json:"widget"`
	Options []string `json:"options,omitempty"` // for enum-valued fields
}

// EditorSpec describes the editing widget for a block type.
type EditorSpec struct {
	Type   string      `json:"type"`
	Label  string      `json:"label"`
	Fields []FieldSpec `json:"fields"`

	// Selector names the external selector collaborator the editor needs
	// ("pages" or "icons"); empty when none. The host application owns
	// the selector UI and hands the chosen value back to the field.
	Selector string `json:"selector,omitempty"`
}

// editorSpecs describes the built-in editing widgets.
var editorSpecs = map[string]EditorSpec{
	TypeHeader: {Type: TypeHeader, Label: "Heading", Fields: []FieldSpec{
		{Name: "text", Label: "Text", Widget: WidgetRichText},
		{Name: "level", Label: "Level", Widget: WidgetText, Options: []string{"1", "2", "3", "4", "5", "6"}},
	}},
	TypeParagraph: {Type: TypeParagraph, Label: "Paragraph", Fields: []FieldSpec{
		{Name: "text", Label: "Text", Widget: WidgetRichText},
	}},
	TypeList: {Type: TypeList, Label: "List", Fields: []FieldSpec{
		{Name: "style", Label: "Style", Widget: WidgetText, Options: []string{ListOrdered, ListUnordered}},
		{Name: "items", Label: "Items", Widget: WidgetItems},
	}},
	TypeImage: {Type: TypeImage, Label: "Image", Fields: []FieldSpec{
		{Name: "url", Label: "Image URL", Widget: WidgetText},
		{Name: "caption", Label: "Caption", Widget: WidgetRichText},
	}},
	TypeCode: {Type: TypeCode, Label: "Code", Fields: []FieldSpec{
		{Name: "language", Label: "Language", Widget: WidgetText},
		{Name: "code", Label: "Code", Widget: WidgetCodeArea},
	}},
	TypeTable: {Type: TypeTable, Label: "Table", Fields: []FieldSpec{
		{Name: "content", Label: "Cells", Widget: WidgetGrid},
	}},
	TypeQuote: {Type: TypeQuote, Label: "Quote", Fields: []FieldSpec{
		{Name: "text", Label: "Quote", Widget: WidgetRichText},
		{Name: "caption", Label: "Attribution", Widget: WidgetText},
	}},
	TypeWarning: {Type: TypeWarning, Label: "Callout", Fields: []FieldSpec{
		{Name: "title", Label: "Title", Widget: WidgetText},
		{Name: "message", Label: "Message", Widget: WidgetRichText},
	}},
	TypeDelimiter: {Type: TypeDelimiter, Label: "Divider"},
	TypeRaw: {Type: TypeRaw, Label: "Raw HTML", Fields: []FieldSpec{
		{Name: "html", Label: "Markup", Widget: WidgetCodeArea},
	}},
	TypeChecklist: {Type: TypeChecklist, Label: "Checklist", Fields: []FieldSpec{
		{Name: "items", Label: "Items", Widget: WidgetItems},
	}},
	TypeGallery: {Type: TypeGallery, Label: "Gallery", Fields: []FieldSpec{
		{Name: "images", Label: "Images", Widget: WidgetItems},
	}},
	TypeTabs: {Type: TypeTabs, Label: "Tabs", Fields: []FieldSpec{
		{Name: "tabs", Label: "Tabs", Widget: WidgetNested},
	}},
	TypeIcon: {Type: TypeIcon, Label: "Icon", Selector: "icons", Fields: []FieldSpec{
		{Name: "name", Label: "Icon", Widget: WidgetSelector},
		{Name: "size", Label: "Size", Widget: WidgetText},
		{Name: "color", Label: "Color", Widget: WidgetText},
	}},
	TypePageLink: {Type: TypePageLink, Label: "Page Link", Selector: "pages", Fields: []FieldSpec{
		{Name: "pageId", Label: "Page", Widget: WidgetSelector},
		{Name: "style", Label: "Style", Widget: WidgetText, Options: []string{PageLinkVertical, PageLinkHorizontal, PageLinkMinimal}},
	}},
	TypeCodeExample: {Type: TypeCodeExample, Label: "Code Example", Fields: []FieldSpec{
		{Name: "title", Label: "Title", Widget: WidgetText},
		{Name: "language", Label: "Language", Widget: WidgetText},
		{Name: "code", Label: "Code", Widget: WidgetCodeArea},
	}},
	TypeComponentProps: {Type: TypeComponentProps, Label: "Component Props", Fields: []FieldSpec{
		{Name: "component", Label: "Component", Widget: WidgetText},
		{Name: "props", Label: "Props", Widget: WidgetItems},
	}},
}

// Editor resolves the editing widget for a block type. Unknown types get the
// preserve widget so their payloads ride through an edit session untouched.
func (r *Registry) Editor(blockType string) EditorSpec {
	if spec, ok := editorSpecs[blockType]; ok {
		return spec
	}
	return EditorSpec{
		Type:  blockType,
		Label: blockType,
		Fields: []FieldSpec{
			{Name: "data", Label: "Raw data", Widget: WidgetPreserve},
		},
	}
}

// Editors returns the specs for every block type with a purpose-built
// editing widget, for building the editor's block palette.
func (r *Registry) Editors() []EditorSpec {
	specs := make([]EditorSpec, 0, len(editorSpecs))
	for _, t := range []string{
		TypeHeader, TypeParagraph, TypeList, TypeImage, TypeCode,
		TypeTable, TypeQuote, TypeWarning, TypeDelimiter, TypeRaw,
		TypeChecklist, TypeGallery, TypeTabs, TypeIcon, TypePageLink,
		TypeCodeExample, TypeComponentProps,
	} {
		specs = append(specs, editorSpecs[t])
	}
	return specs
}
