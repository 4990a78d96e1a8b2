package opc

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

// ContentTypes represents [Content_Types].xml
type ContentTypes struct {
	XMLName   xml.Name              `xml:"Types"`
	Namespace string                `xml:"xmlns,attr"`
	Defaults  []ContentTypeDefault  `xml:"Default"`
	Overrides []ContentTypeOverride `xml:"Override"`
}

// ContentTypeDefault maps a file extension to a content type.
type ContentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypeOverride assigns a content type to a single part.
type ContentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

var extensionContentTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"tif":  "image/tiff",
	"svg":  "image/svg+xml",
	"webp": "image/webp",
	"emf":  "image/x-emf",
	"wmf":  "image/x-wmf",
	"xml":  "application/xml",
	"rels": "application/vnd.openxmlformats-package.relationships+xml",
	"bin":  "application/vnd.openxmlformats-officedocument.oleObject",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// relationship type suffix -> content type of the XML part it points at
var relationshipPartContentTypes = map[string]string{
	"/header":    "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml",
	"/footer":    "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml",
	"/numbering": "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml",
	"/comments":  "application/vnd.openxmlformats-officedocument.wordprocessingml.comments+xml",
	"/footnotes": "application/vnd.openxmlformats-officedocument.wordprocessingml.footnotes+xml",
	"/endnotes":  "application/vnd.openxmlformats-officedocument.wordprocessingml.endnotes+xml",
	"/styles":    "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml",
	"/settings":  "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml",
	"/fontTable": "application/vnd.openxmlformats-officedocument.wordprocessingml.fontTable+xml",
	"/theme":     "application/vnd.openxmlformats-officedocument.theme+xml",
	"/chart":     "application/vnd.openxmlformats-officedocument.drawingml.chart+xml",
}

// ContentTypeForExtension returns the registered content type for a file extension,
// falling back to a generic image type for unknown extensions.
func ContentTypeForExtension(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if contentType, ok := extensionContentTypes[ext]; ok {
		return contentType
	}
	return "image/" + ext
}

// ContentTypeForRelationship returns the part content type implied by a relationship
// type URI, if it is one Word requires an Override for.
func ContentTypeForRelationship(relType string) (string, bool) {
	for suffix, contentType := range relationshipPartContentTypes {
		if strings.HasSuffix(relType, suffix) {
			return contentType, true
		}
	}
	return "", false
}

// ParseContentTypes decodes [Content_Types].xml.
func ParseContentTypes(data []byte) (*ContentTypes, error) {
	ct := &ContentTypes{}
	if err := xml.Unmarshal(data, ct); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ContentTypesPart, err)
	}
	return ct, nil
}

// HasDefault reports whether ext already has a Default entry.
func (ct *ContentTypes) HasDefault(ext string) bool {
	for _, def := range ct.Defaults {
		if strings.EqualFold(def.Extension, ext) {
			return true
		}
	}
	return false
}

// HasOverride reports whether partName already has an Override entry.
func (ct *ContentTypes) HasOverride(partName string) bool {
	for _, o := range ct.Overrides {
		if o.PartName == partName {
			return true
		}
	}
	return false
}

// RegisterPart makes sure the archive path has a content type. XML parts with a known
// relationship type get an Override; everything else gets a Default for its extension.
// It reports whether anything was added.
func (ct *ContentTypes) RegisterPart(archivePath, relType string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(archivePath), "."))
	if ext == "xml" {
		contentType, ok := ContentTypeForRelationship(relType)
		if !ok {
			return false
		}
		partName := "/" + archivePath
		if ct.HasOverride(partName) {
			return false
		}
		ct.Overrides = append(ct.Overrides, ContentTypeOverride{PartName: partName, ContentType: contentType})
		return true
	}
	if ext == "" || ct.HasDefault(ext) {
		return false
	}
	ct.Defaults = append(ct.Defaults, ContentTypeDefault{Extension: ext, ContentType: ContentTypeForExtension(ext)})
	return true
}

// Marshal encodes the content types with Word's XML declaration.
func (ct *ContentTypes) Marshal() ([]byte, error) {
	if ct.Namespace == "" {
		ct.Namespace = ContentTypesNS
	}
	// the parsed name carries the namespace, which would be written twice
	ct.XMLName = xml.Name{Local: "Types"}
	output, err := xml.Marshal(ct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", ContentTypesPart, err)
	}
	return append([]byte(XMLDeclaration+"\n"), output...), nil
}
