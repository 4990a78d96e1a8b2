package opc

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Namespaces of the package-level manifests.
const (
	RelationshipsNS = "http://schemas.openxmlformats.org/package/2006/relationships"
	ContentTypesNS  = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// ExternalTargetMode marks a relationship whose target lives outside the package.
const ExternalTargetMode = "External"

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// IsExternal reports whether the relationship points outside the package.
func (r Relationship) IsExternal() bool {
	return strings.EqualFold(r.TargetMode, ExternalTargetMode)
}

// Markup renders the relationship as a self-closing manifest row.
func (r Relationship) Markup() string {
	var b strings.Builder
	b.WriteString(`<Relationship Id="`)
	writeAttrValue(&b, r.ID)
	b.WriteString(`" Type="`)
	writeAttrValue(&b, r.Type)
	b.WriteString(`" Target="`)
	writeAttrValue(&b, r.Target)
	b.WriteString(`"`)
	if r.TargetMode != "" {
		b.WriteString(` TargetMode="`)
		writeAttrValue(&b, r.TargetMode)
		b.WriteString(`"`)
	}
	b.WriteString("/>")
	return b.String()
}

// Relationships represents the collection of relationships
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// ParseRelationships decodes a .rels part. Relationship order is preserved.
func ParseRelationships(data []byte) ([]Relationship, error) {
	var rels Relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}
	return rels.Relationship, nil
}

// RelationshipsPartFor returns the .rels part that describes partName,
// e.g. "word/document.xml" -> "word/_rels/document.xml.rels".
func RelationshipsPartFor(partName string) string {
	dir := ""
	base := partName
	if idx := strings.LastIndex(partName, "/"); idx != -1 {
		dir = partName[:idx]
		base = partName[idx+1:]
	}
	if dir == "" {
		return "_rels/" + base + ".rels"
	}
	return dir + "/_rels/" + base + ".rels"
}

func writeAttrValue(b *strings.Builder, value string) {
	_ = xml.EscapeText(b, []byte(value))
}
