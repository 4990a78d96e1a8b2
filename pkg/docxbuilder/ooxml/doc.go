// Package ooxml renders the WordprocessingML fragments emitted by the document builder:
// single-run paragraphs, page breaks and table scaffolding.
//
// Fragments are produced as strings in document order. Run text is inserted as given;
// callers that need literal '<' or '&' must escape the text themselves (see EscapeText).
package ooxml
