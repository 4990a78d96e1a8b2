package manifest

import (
	"github.com/kundan048/docx-builder/pkg/docxbuilder"
	"github.com/kundan048/docx-builder/pkg/docxbuilder/ooxml"
)

// Apply writes the manifest's content into doc. Failed imports do not stop the other
// items; all failures are returned together.
func (m *Manifest) Apply(doc *docxbuilder.Document) error {
	errs := docxbuilder.NewMultiError()
	var pending []*pendingItem

	for _, section := range m.sections() {
		if len(section.items) == 0 {
			continue
		}
		enter(doc, section.target)
		for i, item := range section.items {
			ctx := map[string]interface{}{"section": section.name, "item": i + 1}
			if item.Import != "" && item.Async {
				p := doc.InsertDocxFileAsync(m.Resolve(item.Import))
				pending = append(pending, &pendingItem{imp: p, ctx: ctx})
				continue
			}
			if err := m.applyItem(doc, item); err != nil {
				errs.Add(docxbuilder.WithContext(err, "manifest", ctx))
			}
		}
		leave(doc, section.target)
	}

	for _, p := range pending {
		if err := p.imp.Wait(); err != nil {
			errs.Add(docxbuilder.WithContext(err, "manifest", p.ctx))
		}
	}
	return errs.Err()
}

type pendingItem struct {
	imp *docxbuilder.PendingImport
	ctx map[string]interface{}
}

func enter(doc *docxbuilder.Document, target docxbuilder.Target) {
	switch target {
	case docxbuilder.Header:
		doc.BeginHeader()
	case docxbuilder.Footer:
		doc.BeginFooter()
	}
}

func leave(doc *docxbuilder.Document, target docxbuilder.Target) {
	switch target {
	case docxbuilder.Header:
		doc.EndHeader()
	case docxbuilder.Footer:
		doc.EndFooter()
	}
}

func (m *Manifest) applyItem(doc *docxbuilder.Document, item Item) error {
	switch {
	case item.Text != nil:
		applyText(doc, item, *item.Text)
	case item.Raw != "":
		doc.InsertRaw(item.Raw)
	case item.PageBreak:
		doc.InsertPageBreak()
	case item.Table != nil:
		applyTable(doc, item)
	case item.Import != "":
		return doc.InsertDocxFile(m.Resolve(item.Import))
	}
	return nil
}

// applyText inserts escaped text with the item's formatting, then restores the
// default formatting.
func applyText(doc *docxbuilder.Document, item Item, text string) {
	if item.Bold {
		doc.SetBold()
	}
	if item.Italic {
		doc.SetItalic()
	}
	if item.Underline {
		doc.SetUnderline()
	}
	if item.Font != "" {
		doc.SetFont(item.Font)
	}
	if item.Size > 0 {
		doc.SetSize(item.Size)
	}
	align, _ := parseAlign(item.Align)
	switch align {
	case docxbuilder.AlignCenter:
		doc.CenterAlign()
	case docxbuilder.AlignRight:
		doc.RightAlign()
	}

	doc.InsertText(ooxml.EscapeText(text))

	doc.UnsetBold()
	doc.UnsetItalic()
	doc.UnsetUnderline()
	doc.UnsetFont()
	doc.UnsetSize()
	doc.LeftAlign()
}

func applyTable(doc *docxbuilder.Document, item Item) {
	var borders *docxbuilder.TableBorders
	if b := item.Table.Borders; b != nil {
		borders = &docxbuilder.TableBorders{Color: b.Color, Size: b.Size}
	}

	doc.BeginTable(borders)
	doc.InsertRow()
	for r, row := range item.Table.Rows {
		if r > 0 {
			doc.NextRow()
		}
		for c, cell := range row {
			if c > 0 {
				doc.NextColumn()
			}
			// cell formatting follows the item, minus alignment
			cellItem := item
			cellItem.Align = ""
			applyText(doc, cellItem, cell)
		}
	}
	doc.EndTable()
}
