// Package placeholder substitutes {{...}} placeholders in the story parts of a DOCX
// package (the main document, headers and footers).
//
// Two forms are recognized:
//
//   - {{@name}} as the entire text of a paragraph replaces the whole paragraph with the
//     value, which is inserted as raw WordprocessingML. An empty value leaves an empty
//     paragraph so that headers, footers and table cells stay valid.
//   - {{name}} inside the text of a single w:t element is replaced with the value,
//     escaped as text.
//
// Placeholders without a value are left untouched.
package placeholder

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/ooxml"
	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
	"github.com/kundan048/docx-builder/pkg/docxbuilder/splice"
)

var (
	tokenRegex     = regexp.MustCompile(`\{\{([^}]*)\}\}`)
	rawTokenRegex  = regexp.MustCompile(`^\{\{@([^}]+)\}\}$`)
	entityReplacer = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'", "&amp;", "&")
)

const emptyParagraph = "<w:p/>"

// Renderer renders placeholders in every story part of a package.
type Renderer struct{}

// New returns a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render substitutes values into the main document, headers and footers of pkg.
// Parts without placeholders are not rewritten.
func (r *Renderer) Render(pkg *opc.Archive, values map[string]string) error {
	for _, name := range pkg.StoryParts() {
		data, err := pkg.Read(name)
		if err != nil {
			return err
		}
		text, err := splice.DecodePart(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out, changed, err := RenderPart(text, values)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if changed {
			pkg.Write(name, []byte(out))
		}
	}
	return nil
}

type edit struct {
	start, end  int
	replacement string
	paragraph   bool
}

type openParagraph struct {
	start int
	text  strings.Builder
}

// RenderPart substitutes values into one part and reports whether anything changed.
func RenderPart(src string, values map[string]string) (string, bool, error) {
	if !strings.Contains(src, "{{") {
		return src, false, nil
	}

	var edits []edit
	var paragraphs []*openParagraph
	textStart := -1

	err := splice.Scan(src, func(tok splice.Token) error {
		switch {
		case tok.Kind == splice.StartTag && tok.Name == "w:p" && !tok.SelfClosing:
			paragraphs = append(paragraphs, &openParagraph{start: tok.Start})

		case tok.Kind == splice.EndTag && tok.Name == "w:p" && !tok.SelfClosing:
			if len(paragraphs) == 0 {
				return nil
			}
			p := paragraphs[len(paragraphs)-1]
			paragraphs = paragraphs[:len(paragraphs)-1]
			if e, ok := paragraphEdit(p, tok.End, values); ok {
				edits = append(edits, e)
			}

		case tok.Kind == splice.StartTag && tok.Name == "w:t" && !tok.SelfClosing:
			textStart = tok.End

		case tok.Kind == splice.EndTag && tok.Name == "w:t" && textStart >= 0:
			raw := src[textStart:tok.Start]
			if len(paragraphs) > 0 {
				paragraphs[len(paragraphs)-1].text.WriteString(entityReplacer.Replace(raw))
			}
			edits = append(edits, inlineEdits(raw, textStart, values)...)
			textStart = -1
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	if len(edits) == 0 {
		return src, false, nil
	}
	return applyEdits(src, edits), true, nil
}

func paragraphEdit(p *openParagraph, end int, values map[string]string) (edit, bool) {
	m := rawTokenRegex.FindStringSubmatch(strings.TrimSpace(p.text.String()))
	if m == nil {
		return edit{}, false
	}
	value, ok := values[strings.TrimSpace(m[1])]
	if !ok {
		return edit{}, false
	}
	if value == "" {
		value = emptyParagraph
	}
	return edit{start: p.start, end: end, replacement: value, paragraph: true}, true
}

func inlineEdits(raw string, offset int, values map[string]string) []edit {
	var edits []edit
	for _, m := range tokenRegex.FindAllStringSubmatchIndex(raw, -1) {
		name := strings.TrimSpace(raw[m[2]:m[3]])
		if strings.HasPrefix(name, "@") {
			continue
		}
		value, ok := values[name]
		if !ok {
			continue
		}
		edits = append(edits, edit{start: offset + m[0], end: offset + m[1], replacement: ooxml.EscapeText(value)})
	}
	return edits
}

// applyEdits applies non-overlapping edits. Edits inside a replaced paragraph are
// dropped in favor of the paragraph replacement.
func applyEdits(src string, edits []edit) string {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}
		return edits[i].paragraph && !edits[j].paragraph
	})

	var b strings.Builder
	b.Grow(len(src))
	pos := 0
	for _, e := range edits {
		if e.start < pos {
			continue
		}
		b.WriteString(src[pos:e.start])
		b.WriteString(e.replacement)
		pos = e.end
	}
	b.WriteString(src[pos:])
	return b.String()
}
