package splice

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// TokenKind classifies scanned tokens.
type TokenKind int

const (
	StartTag TokenKind = iota + 1
	EndTag
	CharData
	Comment
	ProcInst
	Directive
)

// Token is one raw XML token with its byte range in the scanned text.
type Token struct {
	Kind  TokenKind
	Name  string // qualified name as written, e.g. "w:body"
	Attrs []xml.Attr
	Start int
	End   int
	// Depth is the nesting level of the element; the root element is at depth 0.
	Depth int
	// SelfClosing is set on both tokens produced by an empty-element tag like <w:b/>.
	// The end token of a self-closing element has zero width.
	SelfClosing bool
}

// Attr returns the value of the attribute with the given qualified name.
func (t Token) Attr(name string) (string, bool) {
	for _, attr := range t.Attrs {
		if qualifiedName(attr.Name) == name {
			return attr.Value, true
		}
	}
	return "", false
}

// ErrStopScan can be returned from a scan callback to end the walk early without error.
var ErrStopScan = errors.New("stop scan")

// Scan walks src token by token, reporting each token with its byte range.
// Namespace prefixes are kept as written and not resolved.
func Scan(src string, fn func(Token) error) error {
	decoder := xml.NewDecoder(strings.NewReader(src))
	decoder.Strict = true
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		// parts are decoded to UTF-8 text before they are scanned
		return input, nil
	}

	depth := 0
	for {
		start := int(decoder.InputOffset())
		raw, err := decoder.RawToken()
		if err == io.EOF {
			if depth != 0 {
				return fmt.Errorf("unexpected end of input: %d unclosed element(s)", depth)
			}
			return nil
		}
		if err != nil {
			return err
		}
		end := int(decoder.InputOffset())

		tok := Token{Start: start, End: end, Depth: depth}
		switch v := raw.(type) {
		case xml.StartElement:
			tok.Kind = StartTag
			tok.Name = qualifiedName(v.Name)
			tok.Attrs = v.Attr
			tok.SelfClosing = strings.HasSuffix(src[start:end], "/>")
			depth++
		case xml.EndElement:
			depth--
			tok.Kind = EndTag
			tok.Name = qualifiedName(v.Name)
			tok.Depth = depth
			tok.SelfClosing = start == end
		case xml.CharData:
			tok.Kind = CharData
		case xml.Comment:
			tok.Kind = Comment
		case xml.ProcInst:
			tok.Kind = ProcInst
			tok.Name = v.Target
		case xml.Directive:
			tok.Kind = Directive
		}

		if err := fn(tok); err != nil {
			if errors.Is(err, ErrStopScan) {
				return nil
			}
			return err
		}
	}
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// Element is the byte layout of one element in a scanned text.
type Element struct {
	Name string
	// OpenStart and OpenEnd delimit the start tag.
	OpenStart, OpenEnd int
	// CloseStart and CloseEnd delimit the end tag. For a self-closing element both
	// equal OpenEnd.
	CloseStart, CloseEnd int
	SelfClosing          bool
}

// Inner returns the content between the start and end tags.
func (e Element) Inner(src string) string {
	return src[e.OpenEnd:e.CloseStart]
}

// FindRoot locates the document element of src.
func FindRoot(src string) (Element, error) {
	var root Element
	found := false
	err := Scan(src, func(tok Token) error {
		if tok.Depth != 0 {
			return nil
		}
		switch tok.Kind {
		case StartTag:
			if found {
				return fmt.Errorf("second root element <%s>", tok.Name)
			}
			found = true
			root.Name = tok.Name
			root.OpenStart, root.OpenEnd = tok.Start, tok.End
			root.SelfClosing = tok.SelfClosing
		case EndTag:
			root.CloseStart, root.CloseEnd = tok.Start, tok.End
		}
		return nil
	})
	if err != nil {
		return Element{}, err
	}
	if !found {
		return Element{}, errors.New("no root element")
	}
	return root, nil
}

// FindElement locates the first element named name, at any depth.
func FindElement(src, name string) (Element, bool, error) {
	var elem Element
	found := false
	openDepth := -1
	err := Scan(src, func(tok Token) error {
		switch {
		case tok.Kind == StartTag && !found && tok.Name == name:
			found = true
			openDepth = tok.Depth
			elem.Name = tok.Name
			elem.OpenStart, elem.OpenEnd = tok.Start, tok.End
			elem.SelfClosing = tok.SelfClosing
		case tok.Kind == EndTag && found && tok.Depth == openDepth:
			elem.CloseStart, elem.CloseEnd = tok.Start, tok.End
			return ErrStopScan
		}
		return nil
	})
	if err != nil {
		return Element{}, false, err
	}
	return elem, found, nil
}

// InsertBeforeClose inserts content immediately before the closing tag of the root
// element of dest. A self-closing root is expanded into a start and end tag pair.
func InsertBeforeClose(dest, content string) (string, error) {
	if content == "" {
		return dest, nil
	}
	root, err := FindRoot(dest)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(dest) + len(content) + len(root.Name) + 3)
	if root.SelfClosing {
		open := strings.TrimRight(strings.TrimSuffix(dest[root.OpenStart:root.OpenEnd], "/>"), " \t\r\n")
		b.WriteString(dest[:root.OpenStart])
		b.WriteString(open)
		b.WriteString(">")
		b.WriteString(content)
		b.WriteString("</")
		b.WriteString(root.Name)
		b.WriteString(">")
		b.WriteString(dest[root.OpenEnd:])
		return b.String(), nil
	}
	b.WriteString(dest[:root.CloseStart])
	b.WriteString(content)
	b.WriteString(dest[root.CloseStart:])
	return b.String(), nil
}

// SpliceInner appends the content of the root element of imported to the root element
// of dest. Nothing outside the two root elements is taken from imported.
func SpliceInner(dest, imported string) (string, error) {
	root, err := FindRoot(imported)
	if err != nil {
		return "", fmt.Errorf("imported part: %w", err)
	}
	if root.SelfClosing {
		return dest, nil
	}
	merged, err := InsertBeforeClose(dest, root.Inner(imported))
	if err != nil {
		return "", fmt.Errorf("destination part: %w", err)
	}
	return merged, nil
}
