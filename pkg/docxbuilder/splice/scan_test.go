package splice

import (
	"strings"
	"testing"
)

func TestScan_SelfClosingTokens(t *testing.T) {
	src := `<a><b x="1"/><c>t</c></a>`

	var got []Token
	if err := Scan(src, func(tok Token) error {
		got = append(got, tok)
		return nil
	}); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	// a, b, /b, c, text, /c, /a
	if len(got) != 7 {
		t.Fatalf("got %d tokens, want 7", len(got))
	}
	b, bEnd := got[1], got[2]
	if b.Kind != StartTag || b.Name != "b" || !b.SelfClosing || b.Depth != 1 {
		t.Errorf("unexpected start token %+v", b)
	}
	if src[b.Start:b.End] != `<b x="1"/>` {
		t.Errorf("start token range = %q", src[b.Start:b.End])
	}
	if v, ok := b.Attr("x"); !ok || v != "1" {
		t.Errorf("Attr(x) = %q, %v", v, ok)
	}
	if bEnd.Kind != EndTag || !bEnd.SelfClosing || bEnd.Start != bEnd.End || bEnd.Depth != 1 {
		t.Errorf("unexpected end token %+v", bEnd)
	}
	if got[6].Kind != EndTag || got[6].Depth != 0 || got[6].SelfClosing {
		t.Errorf("unexpected root end token %+v", got[6])
	}
}

func TestScan_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "unclosed element", src: `<a><b></b>`},
		{name: "bad syntax", src: `<a><</a>`},
		{name: "unterminated attribute", src: `<a x="1></a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Scan(tt.src, func(Token) error { return nil }); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFindRoot(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		wantName    string
		wantInner   string
		selfClosing bool
		wantErr     bool
	}{
		{
			name:      "with declaration",
			src:       `<?xml version="1.0"?>` + "\n" + `<w:styles a="1"><w:style/></w:styles>`,
			wantName:  "w:styles",
			wantInner: `<w:style/>`,
		},
		{
			name:      "comment before root",
			src:       `<!-- c --><root>x</root>`,
			wantName:  "root",
			wantInner: `x`,
		},
		{
			name:        "self closing root",
			src:         `<?xml version="1.0"?><w:footnotes/>`,
			wantName:    "w:footnotes",
			selfClosing: true,
		},
		{
			name:    "no root",
			src:     `<?xml version="1.0"?>`,
			wantErr: true,
		},
		{
			name:    "two roots",
			src:     `<a/><b/>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := FindRoot(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if root.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", root.Name, tt.wantName)
			}
			if root.SelfClosing != tt.selfClosing {
				t.Errorf("SelfClosing = %v, want %v", root.SelfClosing, tt.selfClosing)
			}
			if inner := root.Inner(tt.src); inner != tt.wantInner {
				t.Errorf("Inner = %q, want %q", inner, tt.wantInner)
			}
		})
	}
}

func TestFindElement_Nested(t *testing.T) {
	src := `<w:document><w:body><w:p><w:body>not this</w:body></w:p></w:body></w:document>`
	// only the outer body is reported, its content includes the nested element
	elem, found, err := FindElement(src, "w:body")
	if err != nil || !found {
		t.Fatalf("FindElement() found = %v, error = %v", found, err)
	}
	want := `<w:p><w:body>not this</w:body></w:p>`
	if got := elem.Inner(src); got != want {
		t.Errorf("Inner = %q, want %q", got, want)
	}
}

func TestInsertBeforeClose(t *testing.T) {
	tests := []struct {
		name    string
		dest    string
		content string
		want    string
	}{
		{
			name:    "appends before closing tag",
			dest:    `<?xml version="1.0"?><r><a/></r>`,
			content: `<b/>`,
			want:    `<?xml version="1.0"?><r><a/><b/></r>`,
		},
		{
			name:    "expands self closing root",
			dest:    `<?xml version="1.0"?><w:endnotes x="1" />` + "\n",
			content: `<w:endnote/>`,
			want:    `<?xml version="1.0"?><w:endnotes x="1"><w:endnote/></w:endnotes>` + "\n",
		},
		{
			name:    "trailing content preserved",
			dest:    `<r></r><!-- tail -->`,
			content: `x`,
			want:    `<r>x</r><!-- tail -->`,
		},
		{
			name:    "empty content is identity",
			dest:    `<r/>`,
			content: ``,
			want:    `<r/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InsertBeforeClose(tt.dest, tt.content)
			if err != nil {
				t.Fatalf("InsertBeforeClose() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpliceInner_AccumulatesOneRoot(t *testing.T) {
	dest := stylesXML("Normal")
	var err error
	for _, id := range []string{"A", "B"} {
		dest, err = SpliceInner(dest, stylesXML(id))
		if err != nil {
			t.Fatalf("SpliceInner() error = %v", err)
		}
	}

	if n := strings.Count(dest, "<w:styles "); n != 1 {
		t.Errorf("found %d root start tags, want 1", n)
	}
	if n := strings.Count(dest, "<?xml"); n != 1 {
		t.Errorf("found %d declarations, want 1", n)
	}
	iNormal := strings.Index(dest, `w:styleId="Normal"`)
	iA := strings.Index(dest, `w:styleId="A"`)
	iB := strings.Index(dest, `w:styleId="B"`)
	if iNormal < 0 || iA < iNormal || iB < iA {
		t.Errorf("styles out of order: %s", dest)
	}
	if _, err := FindRoot(dest); err != nil {
		t.Errorf("merged part is not well formed: %v", err)
	}
}
