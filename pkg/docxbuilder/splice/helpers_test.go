package splice

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
)

const (
	wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`
	relNS  = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

	relTypeImage     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeTheme     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relTypeFootnotes = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footnotes"
)

type zipEntry struct {
	name    string
	content string
}

// createPackage zips the entries in the given order.
func createPackage(t *testing.T, entries ...zipEntry) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, e := range entries {
		f, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", e.name, err)
		}
		if _, err := f.Write([]byte(e.content)); err != nil {
			t.Fatalf("failed to write %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func documentXML(body string) string {
	return opc.XMLDeclaration + `<w:document ` + wordNS + ` ` + relNS + `><w:body>` + body + `</w:body></w:document>`
}

func relsXML(rows ...opc.Relationship) string {
	var b strings.Builder
	b.WriteString(opc.XMLDeclaration)
	b.WriteString(`<Relationships xmlns="` + opc.RelationshipsNS + `">`)
	for _, row := range rows {
		b.WriteString(row.Markup())
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func stylesXML(styleIDs ...string) string {
	var b strings.Builder
	b.WriteString(opc.XMLDeclaration)
	b.WriteString(`<w:styles ` + wordNS + `>`)
	for _, id := range styleIDs {
		fmt.Fprintf(&b, `<w:style w:type="paragraph" w:styleId="%s"/>`, id)
	}
	b.WriteString(`</w:styles>`)
	return b.String()
}

const contentTypesXML = opc.XMLDeclaration + `<Types xmlns="` + opc.ContentTypesNS + `">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

// hostArchive is a minimal host with a styles part registered under its fixed id.
func hostArchive(t *testing.T) *opc.Archive {
	t.Helper()
	host := opc.New()
	host.Write(opc.ContentTypesPart, []byte(contentTypesXML))
	host.Write(opc.DocumentPart, []byte(documentXML(`<w:p><w:r><w:t>host</w:t></w:r></w:p>`)))
	host.Write(opc.DocumentRelsPart, []byte(relsXML(
		opc.Relationship{ID: "rId1", Type: relTypeStyles, Target: "styles.xml"},
	)))
	host.Write("word/styles.xml", []byte(stylesXML("Normal")))
	return host
}

func mustRead(t *testing.T, pkg *opc.Archive, name string) string {
	t.Helper()
	data, err := pkg.Read(name)
	if err != nil {
		t.Fatalf("Read(%s) error = %v", name, err)
	}
	return string(data)
}

// repeatSuffix returns the queued tokens in order, then keeps returning the last one.
type repeatSuffix struct {
	tokens []string
	calls  int
}

func (g *repeatSuffix) Next() string {
	g.calls++
	if len(g.tokens) == 1 {
		return g.tokens[0]
	}
	token := g.tokens[0]
	g.tokens = g.tokens[1:]
	return token
}
