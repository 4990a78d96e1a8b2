package docxbuilder

import (
	"strings"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/ooxml"
	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
	"github.com/kundan048/docx-builder/pkg/docxbuilder/placeholder"
	"github.com/kundan048/docx-builder/pkg/docxbuilder/splice"
)

// Target selects the buffer that content is appended to.
type Target int

const (
	Body Target = iota
	Header
	Footer
)

func (t Target) String() string {
	switch t {
	case Body:
		return "body"
	case Header:
		return "header"
	case Footer:
		return "footer"
	default:
		return "unknown"
	}
}

// Alignment values for paragraphs.
const (
	AlignLeft   = ooxml.AlignLeft
	AlignCenter = ooxml.AlignCenter
	AlignRight  = ooxml.AlignRight
)

// TableBorders configures the single-line borders drawn by BeginTable.
type TableBorders = ooxml.TableBorders

// FormattingState is the formatting applied to the next inserted text.
type FormattingState struct {
	Bold      bool
	Italic    bool
	Underline bool
	Font      string
	// Size is in half-points; 0 means unset.
	Size      int
	Alignment ooxml.Alignment
	Target    Target
}

func (s FormattingState) runProperties() ooxml.RunProperties {
	return ooxml.RunProperties{
		Bold:      s.Bold,
		Italic:    s.Italic,
		Underline: s.Underline,
		Font:      s.Font,
		Size:      s.Size,
	}
}

// Document builds a .docx file from text, tables, raw markup and imported documents.
// A Document is not safe for concurrent use.
type Document struct {
	config   *Config
	logger   *Logger
	metrics  *Metrics
	renderer splice.Renderer
	suffix   splice.SuffixGenerator
	template *opc.Archive

	state   FormattingState
	buffers [3][]string

	tables  *splice.TableBuilder
	records []splice.Relationship
	pending []*PendingImport
}

// Option configures a Document.
type Option func(*Document)

// WithConfig overrides the global configuration.
func WithConfig(config *Config) Option {
	return func(d *Document) {
		if config != nil {
			d.config = config
		}
	}
}

// WithLogger sets the logger; the global logger is used otherwise.
func WithLogger(logger *Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// WithMetrics records imports and saves in m.
func WithMetrics(m *Metrics) Option {
	return func(d *Document) {
		d.metrics = m
	}
}

// WithSuffixGenerator sets the generator for renamed relationship ids,
// overriding the configured suffix style.
func WithSuffixGenerator(g splice.SuffixGenerator) Option {
	return func(d *Document) {
		d.suffix = g
	}
}

// WithTemplate uses an opened package as host template. It is not modified.
func WithTemplate(template *opc.Archive) Option {
	return func(d *Document) {
		d.template = template
	}
}

// WithRenderer replaces the placeholder renderer applied at save.
func WithRenderer(r splice.Renderer) Option {
	return func(d *Document) {
		d.renderer = r
	}
}

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{
		config:   GetGlobalConfig(),
		renderer: placeholder.New(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = GetLogger()
	}
	if d.suffix == nil {
		d.suffix = newSuffixGenerator(d.config.SuffixStyle)
	}
	d.tables = splice.NewTableBuilder(d.suffix)
	return d
}

func newSuffixGenerator(style string) splice.SuffixGenerator {
	if style == SuffixCounter {
		return &splice.CounterSuffix{}
	}
	return splice.UUIDSuffix{}
}

// State returns a snapshot of the current formatting state.
func (d *Document) State() FormattingState {
	return d.state
}

func (d *Document) BeginHeader() { d.state.Target = Header }
func (d *Document) EndHeader()   { d.state.Target = Body }
func (d *Document) BeginFooter() { d.state.Target = Footer }
func (d *Document) EndFooter()   { d.state.Target = Body }

func (d *Document) SetBold()        { d.state.Bold = true }
func (d *Document) UnsetBold()      { d.state.Bold = false }
func (d *Document) SetItalic()      { d.state.Italic = true }
func (d *Document) UnsetItalic()    { d.state.Italic = false }
func (d *Document) SetUnderline()   { d.state.Underline = true }
func (d *Document) UnsetUnderline() { d.state.Underline = false }

func (d *Document) SetFont(font string) { d.state.Font = font }
func (d *Document) UnsetFont()          { d.state.Font = "" }

// SetSize sets the font size in half-points (24 is 12pt).
func (d *Document) SetSize(halfPoints int) { d.state.Size = halfPoints }
func (d *Document) UnsetSize()             { d.state.Size = 0 }

func (d *Document) RightAlign()  { d.state.Alignment = AlignRight }
func (d *Document) CenterAlign() { d.state.Alignment = AlignCenter }
func (d *Document) LeftAlign()   { d.state.Alignment = AlignLeft }

func (d *Document) push(fragment string) {
	d.buffers[d.state.Target] = append(d.buffers[d.state.Target], fragment)
}

// InsertText appends a paragraph with one run holding text in the current formatting.
// The text is inserted as markup without escaping; use ooxml.EscapeText for literal
// text that may contain '<' or '&'.
func (d *Document) InsertText(text string) {
	d.push(ooxml.Paragraph(text, d.state.Alignment, d.state.runProperties()))
}

// InsertRaw appends WordprocessingML markup as is.
func (d *Document) InsertRaw(xml string) {
	d.push(xml)
}

func (d *Document) InsertPageBreak() {
	d.push(ooxml.PageBreak)
}

// BeginTable opens a table and its first row is started by InsertRow.
// Nil borders draw no borders. Balanced calls are the caller's responsibility.
func (d *Document) BeginTable(borders *TableBorders) {
	d.push(ooxml.TableStart(borders))
}

func (d *Document) InsertRow()  { d.push(ooxml.RowStart) }
func (d *Document) NextColumn() { d.push(ooxml.CellBreak) }
func (d *Document) NextRow()    { d.push(ooxml.RowBreak) }
func (d *Document) EndTable()   { d.push(ooxml.TableClose) }

// Markup returns the content accumulated for a target.
func (d *Document) Markup(target Target) string {
	return strings.Join(d.buffers[target], "")
}

func (d *Document) parts() splice.Parts {
	return splice.Parts{
		Body:   d.Markup(Body),
		Header: d.Markup(Header),
		Footer: d.Markup(Footer),
	}
}
