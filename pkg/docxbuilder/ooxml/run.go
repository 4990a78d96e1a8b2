package ooxml

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Alignment is a paragraph justification value. The zero value leaves the paragraph
// left aligned without emitting paragraph properties.
type Alignment string

const (
	AlignLeft   Alignment = ""
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// RunProperties is the character formatting applied to a run.
type RunProperties struct {
	Bold      bool
	Italic    bool
	Underline bool
	Font      string
	// Size is in half-points, as stored in w:sz; zero means unset.
	Size int
}

// IsZero reports whether the properties would render no w:rPr children.
func (p RunProperties) IsZero() bool {
	return !p.Bold && !p.Italic && !p.Underline && p.Font == "" && p.Size <= 0
}

// writeTo emits <w:rPr> with its children in schema order.
func (p RunProperties) writeTo(b *strings.Builder) {
	if p.IsZero() {
		return
	}
	b.WriteString("<w:rPr>")
	if p.Font != "" {
		b.WriteString(`<w:rFonts w:ascii="`)
		escapeAttr(b, p.Font)
		b.WriteString(`" w:hAnsi="`)
		escapeAttr(b, p.Font)
		b.WriteString(`"/>`)
	}
	if p.Bold {
		b.WriteString("<w:b/>")
	}
	if p.Italic {
		b.WriteString("<w:i/>")
	}
	if p.Size > 0 {
		b.WriteString(`<w:sz w:val="`)
		b.WriteString(strconv.Itoa(p.Size))
		b.WriteString(`"/>`)
	}
	if p.Underline {
		b.WriteString(`<w:u w:val="single"/>`)
	}
	b.WriteString("</w:rPr>")
}

// Paragraph renders a paragraph holding one run of text.
// The text is inserted verbatim.
func Paragraph(text string, align Alignment, props RunProperties) string {
	var b strings.Builder
	b.Grow(len(text) + 128)
	b.WriteString("<w:p>")
	if align != AlignLeft {
		b.WriteString(`<w:pPr><w:jc w:val="`)
		b.WriteString(string(align))
		b.WriteString(`"/></w:pPr>`)
	}
	b.WriteString("<w:r>")
	props.writeTo(&b)
	if needsPreserve(text) {
		b.WriteString(`<w:t xml:space="preserve">`)
	} else {
		b.WriteString("<w:t>")
	}
	b.WriteString(text)
	b.WriteString("</w:t></w:r></w:p>")
	return b.String()
}

// PageBreak is a paragraph holding a single page break.
const PageBreak = `<w:p><w:r><w:br w:type="page"/></w:r></w:p>`

// EscapeText escapes text for use as run content.
func EscapeText(text string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(text))
	return b.String()
}

func needsPreserve(text string) bool {
	if text == "" {
		return false
	}
	return isSpace(text[0]) || isSpace(text[len(text)-1])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func escapeAttr(b *strings.Builder, value string) {
	_ = xml.EscapeText(b, []byte(value))
}
