// Package opc implements the Open Packaging Conventions container used by DOCX files:
// a zip archive of named parts plus the relationship and content-type manifests that
// describe them.
//
// An Archive is fully loaded into memory when opened. Parts can be listed, read,
// overwritten and added, and the archive serialized back to bytes. Part order is kept
// stable so that rewriting a package changes nothing but the parts that were written.
package opc

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrPartNotFound is returned when a named part does not exist in the archive.
var ErrPartNotFound = errors.New("part not found")

// Well-known part names of a WordprocessingML package.
const (
	ContentTypesPart = "[Content_Types].xml"
	PackageRelsPart  = "_rels/.rels"
	DocumentPart     = "word/document.xml"
	DocumentRelsPart = "word/_rels/document.xml.rels"
)

// XMLDeclaration is the prolog Word writes at the top of every XML part.
const XMLDeclaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

const (
	wordPartPrefix       = "word/"
	parentDirectoryShift = "../"
)

// Archive is an in-memory zip package.
type Archive struct {
	parts map[string][]byte
	order []string
}

// New returns an empty archive.
func New() *Archive {
	return &Archive{parts: make(map[string][]byte)}
}

// Open reads every file entry of a zip archive into memory.
func Open(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	a := New()
	for _, file := range zr.File {
		if file.FileInfo().IsDir() {
			continue
		}
		content, err := readZipFile(file)
		if err != nil {
			return nil, err
		}
		a.put(file.Name, content)
	}

	return a, nil
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}
	return content, nil
}

func (a *Archive) put(name string, data []byte) {
	if _, ok := a.parts[name]; !ok {
		a.order = append(a.order, name)
	}
	a.parts[name] = data
}

// Has reports whether the archive contains the named part.
func (a *Archive) Has(name string) bool {
	_, ok := a.parts[name]
	return ok
}

// Read returns a copy of the named part's content.
func (a *Archive) Read(name string) ([]byte, error) {
	content, ok := a.parts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	return bytes.Clone(content), nil
}

// Write adds or replaces a part. New parts are appended after existing ones.
func (a *Archive) Write(name string, data []byte) {
	a.put(name, bytes.Clone(data))
}

// Names lists the part names in archive order.
func (a *Archive) Names() []string {
	names := make([]string, len(a.order))
	copy(names, a.order)
	return names
}

// Len returns the number of parts.
func (a *Archive) Len() int {
	return len(a.order)
}

// Clone returns an independent copy of the archive.
func (a *Archive) Clone() *Archive {
	c := &Archive{
		parts: make(map[string][]byte, len(a.parts)),
		order: make([]string, len(a.order)),
	}
	copy(c.order, a.order)
	for name, content := range a.parts {
		c.parts[name] = bytes.Clone(content)
	}
	return c
}

// Bytes serializes the archive as a zip file.
func (a *Archive) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	for _, name := range a.order {
		fw, err := w.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", name, err)
		}
		if _, err := fw.Write(a.parts[name]); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip writer: %w", err)
	}
	return buf.Bytes(), nil
}

// ResolveTarget maps a relationship target declared in word/_rels/document.xml.rels to
// its in-archive path: "../x" resolves to "x", anything else is relative to "word/".
func ResolveTarget(target string) string {
	if strings.HasPrefix(target, parentDirectoryShift) {
		return target[len(parentDirectoryShift):]
	}
	return wordPartPrefix + target
}
