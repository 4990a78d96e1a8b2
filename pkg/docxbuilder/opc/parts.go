package opc

import "regexp"

// Imported headers and footers carry a "<token>_" prefix, as in word/1_header2.xml.
var (
	headerPartPattern = regexp.MustCompile(`^word/(?:[0-9A-Za-z]+_)?header(\d+)\.xml$`)
	footerPartPattern = regexp.MustCompile(`^word/(?:[0-9A-Za-z]+_)?footer(\d+)\.xml$`)
)

// IsHeaderPart reports whether name is a header part such as word/header1.xml or an
// imported word/<token>_header2.xml.
func IsHeaderPart(name string) bool {
	return headerPartPattern.MatchString(name)
}

// IsFooterPart reports whether name is a footer part such as word/footer1.xml or an
// imported word/<token>_footer2.xml.
func IsFooterPart(name string) bool {
	return footerPartPattern.MatchString(name)
}

// IsStoryPart reports whether name holds document content: the main document,
// a header or a footer.
func IsStoryPart(name string) bool {
	return name == DocumentPart || IsHeaderPart(name) || IsFooterPart(name)
}

// StoryParts lists the story parts of the archive: the main document first, then
// headers and footers in archive order.
func (a *Archive) StoryParts() []string {
	var names []string
	if a.Has(DocumentPart) {
		names = append(names, DocumentPart)
	}
	for _, name := range a.order {
		if name != DocumentPart && IsStoryPart(name) {
			names = append(names, name)
		}
	}
	return names
}
