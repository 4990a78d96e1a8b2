package splice

import (
	"errors"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
)

const bodyElement = "w:body"

// Fragments are the two pieces of an external package needed to import it.
type Fragments struct {
	// Body is the raw markup strictly between <w:body> and </w:body>.
	Body string
	// Relationships is the full text of word/_rels/document.xml.rels.
	Relationships string
}

// ExtractBytes opens a DOCX package and extracts its fragments.
// The opened archive is returned so that relationship targets can be read from it.
func ExtractBytes(data []byte) (Fragments, *opc.Archive, error) {
	pkg, err := opc.Open(data)
	if err != nil {
		return Fragments{}, nil, newPackageError(ErrMalformedPackage, "", err)
	}
	frags, err := Extract(pkg)
	if err != nil {
		return Fragments{}, nil, err
	}
	return frags, pkg, nil
}

// Extract reads the body markup and the relationship manifest of a package.
func Extract(pkg *opc.Archive) (Fragments, error) {
	documentData, err := pkg.Read(opc.DocumentPart)
	if err != nil {
		return Fragments{}, newPackageError(ErrMalformedPackage, opc.DocumentPart, err)
	}
	relsData, err := pkg.Read(opc.DocumentRelsPart)
	if err != nil {
		return Fragments{}, newPackageError(ErrMalformedPackage, opc.DocumentRelsPart, err)
	}

	document, err := DecodePart(documentData)
	if err != nil {
		return Fragments{}, newPackageError(ErrMalformedDocumentXML, opc.DocumentPart, err)
	}
	rels, err := DecodePart(relsData)
	if err != nil {
		return Fragments{}, newPackageError(ErrMalformedPackage, opc.DocumentRelsPart, err)
	}

	body, err := BodyContent(document)
	if err != nil {
		return Fragments{}, err
	}
	return Fragments{Body: body, Relationships: rels}, nil
}

// BodyContent returns the markup strictly between the start and end tags of w:body.
// An empty or self-closing body yields "".
func BodyContent(document string) (string, error) {
	elem, found, err := FindElement(document, bodyElement)
	if err != nil {
		return "", newPackageError(ErrMalformedDocumentXML, opc.DocumentPart, err)
	}
	if !found {
		return "", newPackageError(ErrMalformedDocumentXML, opc.DocumentPart, errors.New("no <w:body> element"))
	}
	return elem.Inner(document), nil
}
