package splice

import (
	"errors"
	"strings"
	"testing"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
)

type recordingRenderer struct {
	values map[string]string
	err    error
}

func (r *recordingRenderer) Render(_ *opc.Archive, values map[string]string) error {
	r.values = values
	return r.err
}

func imageSource(t *testing.T, payload string) []byte {
	t.Helper()
	return createPackage(t,
		zipEntry{opc.ContentTypesPart, contentTypesXML},
		zipEntry{opc.DocumentPart, documentXML(`<w:p><w:r><w:drawing><a:blip r:embed="rId7"/></w:drawing></w:r></w:p>`)},
		zipEntry{opc.DocumentRelsPart, relsXML(
			opc.Relationship{ID: "rId1", Type: relTypeStyles, Target: "styles.xml"},
			opc.Relationship{ID: "rId7", Type: relTypeImage, Target: "media/image1.png"},
		)},
		zipEntry{"word/styles.xml", stylesXML("Imported")},
		zipEntry{"word/media/image1.png", payload},
	)
}

func TestMerge_MediaRoundTrip(t *testing.T) {
	payload := "\x89PNG\r\n\x1a\n-image-bytes"
	b := NewTableBuilder(&CounterSuffix{})
	imported, err := b.Import(imageSource(t, payload))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if !strings.Contains(imported.Body, `r:embed="rId7_1"`) {
		t.Fatalf("body not rewritten: %s", imported.Body)
	}

	host := hostArchive(t)
	hostDocument := mustRead(t, host, opc.DocumentPart)
	renderer := &recordingRenderer{}
	parts := Parts{Body: imported.Body, Header: "<w:p/>"}

	out, report, err := Merge(host, imported.Relationships, parts, renderer, Options{RegisterContentTypes: true})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if got := mustRead(t, host, opc.DocumentPart); got != hostDocument {
		t.Error("host archive was modified")
	}

	merged, err := opc.Open(out)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := mustRead(t, merged, "word/media/1_image1.png"); got != payload {
		t.Errorf("media payload = %q, want %q", got, payload)
	}

	rels, err := opc.ParseRelationships([]byte(mustRead(t, merged, opc.DocumentRelsPart)))
	if err != nil {
		t.Fatalf("ParseRelationships() error = %v", err)
	}
	var found bool
	for _, rel := range rels {
		if rel.ID == "rId7_1" {
			found = true
			if rel.Target != "media/1_image1.png" || rel.Type != relTypeImage {
				t.Errorf("unexpected manifest row %+v", rel)
			}
		}
	}
	if !found {
		t.Error("manifest has no row for rId7_1")
	}

	ct, err := opc.ParseContentTypes([]byte(mustRead(t, merged, opc.ContentTypesPart)))
	if err != nil {
		t.Fatalf("ParseContentTypes() error = %v", err)
	}
	if !ct.HasDefault("png") {
		t.Error("png content type not registered")
	}

	if report.Count(DispositionAdded) != 1 || report.Count(DispositionMerged) != 1 {
		t.Errorf("unexpected counts %v", report.Counts)
	}
	if renderer.values[BodyPlaceholder] != imported.Body || renderer.values[HeaderPlaceholder] != "<w:p/>" {
		t.Errorf("renderer got %v", renderer.values)
	}
	if _, ok := renderer.values[FooterPlaceholder]; !ok {
		t.Error("footer value missing")
	}
}

func TestMerge_TwoImportsShareOneStylesRoot(t *testing.T) {
	b := NewTableBuilder(&CounterSuffix{})
	var records []Relationship
	for _, style := range []string{"First", "Second"} {
		src := createPackage(t,
			zipEntry{opc.DocumentPart, documentXML(`<w:p/>`)},
			zipEntry{opc.DocumentRelsPart, relsXML(opc.Relationship{ID: "rId3", Type: relTypeStyles, Target: "styles.xml"})},
			zipEntry{"word/styles.xml", stylesXML(style)},
		)
		imported, err := b.Import(src)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		records = append(records, imported.Relationships...)
	}

	work, report, err := MergeArchive(hostArchive(t), records, Parts{}, nil, Options{})
	if err != nil {
		t.Fatalf("MergeArchive() error = %v", err)
	}

	styles := mustRead(t, work, "word/styles.xml")
	if n := strings.Count(styles, "<w:styles"); n != 1 {
		t.Errorf("styles part has %d root elements, want 1", n)
	}
	for _, id := range []string{"Normal", "First", "Second"} {
		if !strings.Contains(styles, `w:styleId="`+id+`"`) {
			t.Errorf("style %s missing", id)
		}
	}
	if _, err := FindRoot(styles); err != nil {
		t.Errorf("merged styles not well formed: %v", err)
	}
	if report.Count(DispositionMerged) != 2 {
		t.Errorf("merged = %d, want 2", report.Count(DispositionMerged))
	}
	// the host already registers rId1, so the manifest is untouched
	for _, name := range report.Written {
		if name == opc.DocumentRelsPart {
			t.Error("manifest rewritten without additions")
		}
	}
}

func TestMergeArchive_SharedPartAbsentFromHost(t *testing.T) {
	footnotes := `<?xml version="1.0"?><w:footnotes ` + wordNS + `><w:footnote w:id="1"/></w:footnotes>`
	rec := Relationship{
		OriginalID: "rId2", RenamedID: "rId4", Type: relTypeFootnotes,
		OriginalTarget: "footnotes.xml", RenamedTarget: "footnotes.xml",
		Payload: []byte(footnotes),
	}

	work, _, err := MergeArchive(hostArchive(t), []Relationship{rec, rec}, Parts{}, nil, Options{RegisterContentTypes: true})
	if err != nil {
		t.Fatalf("MergeArchive() error = %v", err)
	}

	got := mustRead(t, work, "word/footnotes.xml")
	if n := strings.Count(got, `<w:footnote w:id="1"/>`); n != 2 {
		t.Errorf("footnotes part has %d footnotes, want 2: %s", n, got)
	}
	manifest := mustRead(t, work, opc.DocumentRelsPart)
	if n := strings.Count(manifest, `Id="rId4"`); n != 1 {
		t.Errorf("manifest has %d rows for rId4, want 1", n)
	}
	ct, err := opc.ParseContentTypes([]byte(mustRead(t, work, opc.ContentTypesPart)))
	if err != nil {
		t.Fatalf("ParseContentTypes() error = %v", err)
	}
	if !ct.HasOverride("/word/footnotes.xml") {
		t.Error("footnotes override not registered")
	}
}

func TestMergeArchive_ThemeIsReplaced(t *testing.T) {
	host := hostArchive(t)
	host.Write("word/theme/theme1.xml", []byte(`<a:theme name="host"/>`))
	rec := Relationship{
		OriginalID: "rId5", RenamedID: "rId9", Type: relTypeTheme,
		OriginalTarget: "theme/theme1.xml", RenamedTarget: "theme/theme1.xml",
		Payload: []byte(`<a:theme name="imported"/>`),
	}

	work, report, err := MergeArchive(host, []Relationship{rec}, Parts{}, nil, Options{})
	if err != nil {
		t.Fatalf("MergeArchive() error = %v", err)
	}
	if got := mustRead(t, work, "word/theme/theme1.xml"); got != `<a:theme name="imported"/>` {
		t.Errorf("theme = %q", got)
	}
	if report.Count(DispositionReplaced) != 1 {
		t.Errorf("unexpected counts %v", report.Counts)
	}
}

func TestMergeArchive_UnsupportedMergeTarget(t *testing.T) {
	rec := Relationship{
		OriginalID: "rId3", RenamedID: "rId3", Type: relTypeImage,
		OriginalTarget: "media/logo.png", RenamedTarget: "media/logo.png",
		Payload: []byte("png"),
	}

	t.Run("diagnostic", func(t *testing.T) {
		work, report, err := MergeArchive(hostArchive(t), []Relationship{rec}, Parts{}, nil, Options{})
		if err != nil {
			t.Fatalf("MergeArchive() error = %v", err)
		}
		if work.Has("word/media/logo.png") {
			t.Error("skipped part was written")
		}
		if len(report.Diagnostics) != 1 || !errors.Is(report.Diagnostics[0].Kind, ErrUnsupportedMergeTarget) {
			t.Errorf("diagnostics = %v", report.Diagnostics)
		}
		if report.Count(DispositionSkipped) != 1 {
			t.Errorf("unexpected counts %v", report.Counts)
		}
	})

	t.Run("strict", func(t *testing.T) {
		_, _, err := MergeArchive(hostArchive(t), []Relationship{rec}, Parts{}, nil, Options{Strict: true})
		if !errors.Is(err, ErrUnsupportedMergeTarget) {
			t.Fatalf("error = %v, want ErrUnsupportedMergeTarget", err)
		}
	})
}

func TestMergeArchive_ExternalRelationship(t *testing.T) {
	rec := Relationship{
		OriginalID: "rId9", RenamedID: "rId9_1", Type: relTypeHyperlink,
		OriginalTarget: "https://example.com", RenamedTarget: "https://example.com",
		TargetMode: opc.ExternalTargetMode,
	}

	work, report, err := MergeArchive(hostArchive(t), []Relationship{rec}, Parts{}, nil, Options{RegisterContentTypes: true})
	if err != nil {
		t.Fatalf("MergeArchive() error = %v", err)
	}
	manifest := mustRead(t, work, opc.DocumentRelsPart)
	if !strings.Contains(manifest, `Id="rId9_1"`) || !strings.Contains(manifest, `TargetMode="External"`) {
		t.Errorf("external row missing: %s", manifest)
	}
	if report.Count(DispositionExternal) != 1 {
		t.Errorf("unexpected counts %v", report.Counts)
	}
}

func TestMergeArchive_Errors(t *testing.T) {
	media := Relationship{
		OriginalID: "rId7", RenamedID: "rId7_1", Type: relTypeImage,
		OriginalTarget: "media/image1.png", RenamedTarget: "media/1_image1.png",
		Payload: []byte("png"),
	}

	t.Run("host without manifest", func(t *testing.T) {
		host := opc.New()
		host.Write(opc.DocumentPart, []byte(documentXML("")))
		_, _, err := MergeArchive(host, []Relationship{media}, Parts{}, nil, Options{})
		if !errors.Is(err, ErrMalformedPackage) {
			t.Fatalf("error = %v, want ErrMalformedPackage", err)
		}
	})

	t.Run("host without manifest and nothing to add", func(t *testing.T) {
		host := opc.New()
		host.Write(opc.DocumentPart, []byte(documentXML("")))
		if _, _, err := MergeArchive(host, nil, Parts{}, nil, Options{}); err != nil {
			t.Fatalf("MergeArchive() error = %v", err)
		}
	})

	t.Run("host reuses a shared id", func(t *testing.T) {
		host := hostArchive(t)
		host.Write(opc.DocumentRelsPart, []byte(relsXML(
			opc.Relationship{ID: "rId1", Type: relTypeStyles, Target: "styles.xml"},
			opc.Relationship{ID: "rId6", Type: relTypeImage, Target: "media/logo.png"},
		)))
		_, _, err := MergeArchive(host, nil, Parts{}, nil, Options{})
		if !errors.Is(err, ErrMalformedPackage) {
			t.Fatalf("error = %v, want ErrMalformedPackage", err)
		}
		if !strings.Contains(err.Error(), "rId6 must target header1.xml") {
			t.Errorf("error = %v, want rId6 named", err)
		}
	})

	t.Run("host shared id with absolute target", func(t *testing.T) {
		host := hostArchive(t)
		host.Write(opc.DocumentRelsPart, []byte(relsXML(
			opc.Relationship{ID: "rId1", Type: relTypeStyles, Target: "/word/styles.xml"},
		)))
		if _, _, err := MergeArchive(host, nil, Parts{}, nil, Options{}); err != nil {
			t.Fatalf("MergeArchive() error = %v", err)
		}
	})

	t.Run("renderer failure", func(t *testing.T) {
		renderer := &recordingRenderer{err: errors.New("boom")}
		_, _, err := Merge(hostArchive(t), nil, Parts{}, renderer, Options{})
		if !errors.Is(err, ErrPackageWrite) {
			t.Fatalf("error = %v, want ErrPackageWrite", err)
		}
	})

	t.Run("malformed shared part", func(t *testing.T) {
		broken := Relationship{
			OriginalID: "rId1", RenamedID: "rId1", Type: relTypeStyles,
			OriginalTarget: "styles.xml", RenamedTarget: "styles.xml",
			Payload: []byte(`<w:styles><w:style>`),
		}
		_, _, err := MergeArchive(hostArchive(t), []Relationship{broken}, Parts{}, nil, Options{})
		if !errors.Is(err, ErrMalformedPackage) {
			t.Fatalf("error = %v, want ErrMalformedPackage", err)
		}
	})
}

func TestMerge_ZeroRelationshipsKeepsHostParts(t *testing.T) {
	host := hostArchive(t)
	work, report, err := MergeArchive(host, nil, Parts{}, nil, Options{})
	if err != nil {
		t.Fatalf("MergeArchive() error = %v", err)
	}
	if len(report.Written) != 0 {
		t.Errorf("parts written: %v", report.Written)
	}
	for _, name := range host.Names() {
		if mustRead(t, work, name) != mustRead(t, host, name) {
			t.Errorf("%s changed", name)
		}
	}
}
