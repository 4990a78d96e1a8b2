package docxbuilder

import (
	"errors"
	"strings"
	"testing"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
)

func TestValidate(t *testing.T) {
	withPart := func(name, content string) func(*opc.Archive) {
		return func(pkg *opc.Archive) { pkg.Write(name, []byte(content)) }
	}

	tests := []struct {
		name     string
		modify   func(*opc.Archive)
		wantPart string
		wantMsg  string
	}{
		{
			name: "unknown reference",
			modify: withPart(opc.DocumentPart, opc.XMLDeclaration+`<w:document `+nsW+` `+nsR+`><w:body>`+
				`<w:p><w:hyperlink r:id="rId42"/></w:p></w:body></w:document>`),
			wantPart: opc.DocumentPart,
			wantMsg:  "unknown relationship rId42",
		},
		{
			name: "missing target",
			modify: withPart(opc.DocumentRelsPart, opc.XMLDeclaration+`<Relationships xmlns="`+opc.RelationshipsNS+`">`+
				`<Relationship Id="rId6" Type="`+relTypePrefix+`header" Target="header1.xml"/>`+
				`<Relationship Id="rId7" Type="`+relTypePrefix+`footer" Target="footer1.xml"/>`+
				`<Relationship Id="rId10" Type="`+relTypePrefix+`image" Target="media/gone.png"/>`+
				`</Relationships>`),
			wantPart: opc.DocumentRelsPart,
			wantMsg:  "missing part word/media/gone.png",
		},
		{
			name:     "part without content type",
			modify:   withPart("word/media/logo.png", "png"),
			wantPart: "word/media/logo.png",
			wantMsg:  "no content type",
		},
		{
			name:     "malformed header",
			modify:   withPart("word/header1.xml", `<w:hdr `+nsW+`><w:p></w:hdr>`),
			wantPart: "word/header1.xml",
			wantMsg:  "not well-formed",
		},
		{
			name: "imported header reference",
			modify: withPart("word/1_header2.xml", `<w:hdr `+nsW+` `+nsR+`><w:p><w:r>`+
				`<w:pict r:id="rId3"/></w:r></w:p></w:hdr>`),
			wantPart: "word/1_header2.xml",
			wantMsg:  "unknown relationship rId3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := DefaultTemplate().Clone()
			tt.modify(pkg)

			err := ValidateArchive(pkg)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateArchive() error = %v, want *ValidationError", err)
			}
			found := false
			for _, issue := range verr.Issues {
				if issue.Part == tt.wantPart && strings.Contains(issue.Message, tt.wantMsg) {
					found = true
				}
			}
			if !found {
				t.Errorf("issues = %+v, want %s: %s", verr.Issues, tt.wantPart, tt.wantMsg)
			}
		})
	}
}

func TestValidateNotAPackage(t *testing.T) {
	err := Validate([]byte("nope"))
	if !errors.Is(err, ErrMalformedPackage) {
		t.Errorf("Validate() error = %v, want ErrMalformedPackage", err)
	}
}
