// Package docxbuilder builds Microsoft Word documents (DOCX) from text, tables, raw
// WordprocessingML and the content of other .docx files.
//
// # Quick Start
//
//	doc := docxbuilder.New()
//
//	doc.SetBold()
//	doc.SetSize(32)
//	doc.CenterAlign()
//	doc.InsertText("Quarterly report")
//	doc.UnsetBold()
//	doc.UnsetSize()
//	doc.LeftAlign()
//
//	if err := doc.InsertDocxFile("summary.docx"); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := doc.Save("report.docx"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Formatting
//
// The document keeps a formatting state (bold, italic, underline, font, size and
// alignment) that applies to every following InsertText call. Sizes are in half-points,
// so SetSize(24) is 12pt. InsertText inserts its argument as markup; escape literal text
// with ooxml.EscapeText when it may contain '<' or '&'.
//
// # Headers and Footers
//
// BeginHeader and BeginFooter redirect output to the header or footer buffer until the
// matching End call. The three buffers are substituted into the {{@body}}, {{@header}}
// and {{@footer}} placeholders of the host template when the document is saved.
//
// # Tables
//
//	doc.BeginTable(&docxbuilder.TableBorders{Color: "000000", Size: 4})
//	doc.InsertRow()
//	doc.InsertText("Name")
//	doc.NextColumn()
//	doc.InsertText("Total")
//	doc.NextRow()
//	doc.InsertText("Widgets")
//	doc.NextColumn()
//	doc.InsertText("42")
//	doc.EndTable()
//
// # Importing Documents
//
// InsertDocx appends the body of another package. Images, hyperlinks and other parts the
// imported body refers to are renamed with a unique suffix, so any number of documents
// can be imported without collisions. Styles, numbering-free shared parts such as
// settings and font tables, footnotes and endnotes are merged into the host's copy.
// InsertDocxFileAsync reads the file in the background and keeps the position it was
// called at.
//
// # Configuration
//
// Configuration comes from environment variables or a YAML file:
//
//	DOCXBUILDER_LOG_LEVEL      - debug, info, warn, error or off
//	DOCXBUILDER_TEMPLATE       - .docx file used as host template
//	DOCXBUILDER_SUFFIX         - "uuid" (default) or "counter"
//	DOCXBUILDER_STRICT_MERGE   - fail saves on parts that cannot be merged
//	DOCXBUILDER_TEMPLATE_CACHE - number of host templates kept in memory
//
// # Errors
//
// Import and save failures are returned as *DocumentError wrapping one of the error
// kinds ErrMalformedPackage, ErrMalformedDocumentXML, ErrPackageWrite or
// ErrUnsupportedMergeTarget. Test for them with errors.Is.
package docxbuilder
