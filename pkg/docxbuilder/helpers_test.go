package docxbuilder

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
	"github.com/kundan048/docx-builder/pkg/docxbuilder/splice"
)

const (
	testRelImage     = relTypePrefix + "image"
	testRelStyles    = relTypePrefix + "styles"
	testRelHyperlink = relTypePrefix + "hyperlink"
)

type zipEntry struct {
	name    string
	content string
}

// createDocx zips the entries in the given order.
func createDocx(t *testing.T, entries ...zipEntry) []byte {
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

// importable builds a package with the given body and document relationships.
// Extra entries are added after the document parts.
func importable(t *testing.T, body string, rels []opc.Relationship, extra ...zipEntry) []byte {
	t.Helper()
	var manifest strings.Builder
	manifest.WriteString(opc.XMLDeclaration)
	manifest.WriteString(`<Relationships xmlns="` + opc.RelationshipsNS + `">`)
	for _, rel := range rels {
		manifest.WriteString(rel.Markup())
	}
	manifest.WriteString(`</Relationships>`)

	entries := []zipEntry{
		{name: opc.ContentTypesPart, content: templateContentTypes},
		{name: opc.PackageRelsPart, content: templatePackageRels},
		{name: opc.DocumentPart, content: opc.XMLDeclaration + `<w:document ` + nsW + ` ` + nsR + `><w:body>` + body + `</w:body></w:document>`},
		{name: opc.DocumentRelsPart, content: manifest.String()},
	}
	return createDocx(t, append(entries, extra...)...)
}

func openOutput(t *testing.T, data []byte) *opc.Archive {
	t.Helper()
	pkg, err := opc.Open(data)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	return pkg
}

func readPart(t *testing.T, pkg *opc.Archive, name string) string {
	t.Helper()
	data, err := pkg.Read(name)
	if err != nil {
		t.Fatalf("Read(%s) error = %v", name, err)
	}
	return string(data)
}

// newTestDocument returns a document with a counter suffix and a silent logger.
func newTestDocument(opts ...Option) *Document {
	base := []Option{
		WithLogger(NewLogger(nil, LogOff)),
		WithConfig(DefaultConfig()),
		WithSuffixGenerator(&splice.CounterSuffix{}),
	}
	return New(append(base, opts...)...)
}
