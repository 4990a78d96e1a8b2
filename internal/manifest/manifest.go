// Package manifest describes a document as YAML: the header, body and footer content
// in order, with formatting, tables, page breaks, raw markup and imported documents.
//
//	template: letterhead.docx
//	header:
//	  - text: ACME Corp
//	    align: right
//	body:
//	  - text: Quarterly report
//	    bold: true
//	    size: 32
//	    align: center
//	  - import: summary.docx
//	  - page_break: true
//	  - table:
//	      borders: {color: "000000", size: 4}
//	      rows:
//	        - [Region, Total]
//	        - [North, "42"]
//
// Relative paths are resolved against the manifest's directory.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kundan048/docx-builder/pkg/docxbuilder"
	"github.com/kundan048/docx-builder/pkg/docxbuilder/ooxml"
)

// Manifest is a document description.
type Manifest struct {
	// Template is a .docx host template; empty uses the configured one.
	Template string `yaml:"template"`
	// Output is the default output path of the build command.
	Output string `yaml:"output"`
	Header []Item `yaml:"header"`
	Body   []Item `yaml:"body"`
	Footer []Item `yaml:"footer"`

	dir string
}

// Item is one piece of content. Exactly one of Text, Raw, Import, Table or PageBreak
// is set; the formatting fields apply to Text and to table cells.
type Item struct {
	Text      *string `yaml:"text"`
	Raw       string  `yaml:"raw"`
	Import    string  `yaml:"import"`
	Table     *Table  `yaml:"table"`
	PageBreak bool    `yaml:"page_break"`

	// Async reads an imported file in the background.
	Async bool `yaml:"async"`

	Bold      bool   `yaml:"bold"`
	Italic    bool   `yaml:"italic"`
	Underline bool   `yaml:"underline"`
	Font      string `yaml:"font"`
	Size      int    `yaml:"size"`
	Align     string `yaml:"align"`
}

// Table is a grid of text cells.
type Table struct {
	Borders *Borders   `yaml:"borders"`
	Rows    [][]string `yaml:"rows"`
}

// Borders draws single-line borders around and inside a table.
type Borders struct {
	Color string `yaml:"color"`
	Size  int    `yaml:"size"`
}

// Load reads a manifest file. Environment variables are expanded and unknown keys
// are rejected.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest '%s': %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest '%s': %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// Parse decodes and validates a manifest. Relative paths are resolved against the
// working directory.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	decoder := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	decoder.KnownFields(true)
	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("YAML syntax error: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that every item has exactly one kind of content.
func (m *Manifest) Validate() error {
	errs := docxbuilder.NewMultiError()
	for _, section := range m.sections() {
		for i, item := range section.items {
			if err := item.validate(); err != nil {
				errs.Add(fmt.Errorf("%s item %d: %w", section.name, i+1, err))
			}
		}
	}
	return errs.Err()
}

func (it Item) validate() error {
	kinds := 0
	for _, set := range []bool{it.Text != nil, it.Raw != "", it.Import != "", it.Table != nil, it.PageBreak} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return errors.New("item must have exactly one of text, raw, import, table or page_break")
	}
	if _, err := parseAlign(it.Align); err != nil {
		return err
	}
	if it.Size < 0 {
		return fmt.Errorf("invalid size %d", it.Size)
	}
	if it.Async && it.Import == "" {
		return errors.New("async applies to imports only")
	}
	return nil
}

func parseAlign(align string) (ooxml.Alignment, error) {
	switch strings.ToLower(align) {
	case "", "left":
		return docxbuilder.AlignLeft, nil
	case "center":
		return docxbuilder.AlignCenter, nil
	case "right":
		return docxbuilder.AlignRight, nil
	}
	return "", fmt.Errorf("invalid alignment %q", align)
}

type section struct {
	name   string
	target docxbuilder.Target
	items  []Item
}

func (m *Manifest) sections() []section {
	return []section{
		{name: "header", target: docxbuilder.Header, items: m.Header},
		{name: "body", target: docxbuilder.Body, items: m.Body},
		{name: "footer", target: docxbuilder.Footer, items: m.Footer},
	}
}

// Resolve returns path relative to the manifest's directory.
func (m *Manifest) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || m.dir == "" {
		return path
	}
	return filepath.Join(m.dir, path)
}
