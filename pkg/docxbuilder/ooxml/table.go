package ooxml

import (
	"strconv"
	"strings"
)

// Table scaffolding. A table is opened with TableStart, then rows and cells are delimited
// with the constants below; nesting is not checked.
const (
	RowStart   = "<w:tr><w:tc>"
	CellBreak  = "</w:tc><w:tc>"
	RowBreak   = "</w:tc></w:tr><w:tr><w:tc>"
	TableClose = "</w:tc></w:tr></w:tbl>"
)

// TableBorders draws a single line around and inside a table.
type TableBorders struct {
	// Color is a hex RGB value such as "000000"; empty means "auto".
	Color string
	// Size is the line width in eighths of a point; zero means 4.
	Size int
}

const (
	defaultBorderColor = "auto"
	defaultBorderSize  = 4
)

var borderEdges = []string{"top", "left", "bottom", "right", "insideH", "insideV"}

// TableStart opens a table, with borders when b is not nil.
func TableStart(b *TableBorders) string {
	if b == nil {
		return "<w:tbl>"
	}

	color := b.Color
	if color == "" {
		color = defaultBorderColor
	}
	size := b.Size
	if size <= 0 {
		size = defaultBorderSize
	}

	var sb strings.Builder
	sb.WriteString("<w:tbl><w:tblPr><w:tblBorders>")
	for _, edge := range borderEdges {
		sb.WriteString("<w:")
		sb.WriteString(edge)
		sb.WriteString(` w:val="single" w:space="0" w:color="`)
		escapeAttr(&sb, color)
		sb.WriteString(`" w:sz="`)
		sb.WriteString(strconv.Itoa(size))
		sb.WriteString(`"/>`)
	}
	sb.WriteString("</w:tblBorders></w:tblPr>")
	return sb.String()
}
