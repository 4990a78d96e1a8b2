// Package splice imports the content of external DOCX packages into a host package.
//
// Importing a document is a small link-resolution problem: the external document's body
// refers to parts of its own package through relationship ids ("rId7"), and those ids and
// part names may collide with the host's. The package is organized as a pipeline:
//
//   - extract.go: pulls the body markup and the relationship manifest out of a package
//   - relationships.go: builds the relationship table and decides new ids and targets
//   - rewrite.go: rewrites relationship id references in body markup in one pass
//   - merge.go: writes renamed parts, merges shared XML parts and updates the manifest
//
// Shared parts (styles, settings, fonts, headers, footers, footnotes, endnotes) keep the
// host's fixed relationship ids. Their imported content is spliced into the host copy
// immediately before the root element's closing tag, so several imports accumulate into
// a single part with one root element.
//
// The scanner in scan.go locates elements by byte range using encoding/xml raw tokens,
// so everything outside the edited ranges is preserved verbatim.
package splice
