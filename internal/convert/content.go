package convert

import (
	"strconv"
	"strings"
)

// Package convert turns uploaded order sheets (HTML, PDF) into a structured
// content model plus a markdown rendering. The content model keeps texts and
// tables in document order and addresses them with self references
// ("#/texts/0", "#/tables/2") so extraction rules can point at specific items.

// BlockKind discriminates content blocks for JSON round-tripping.
type BlockKind string

const (
	BlockText  BlockKind = "text"
	BlockTable BlockKind = "table"
)

// Cell is a single table cell. ColSpan is recorded when the cell spans more
// than one column; a zero value means a plain single-column cell.
type Cell struct {
	Text    string `json:"text"`
	ColSpan int    `json:"col_span,omitempty"`
}

// Span returns the number of grid columns the cell occupies.
func (c Cell) Span() int {
	if c.ColSpan > 1 {
		return c.ColSpan
	}
	return 1
}

// Table is one table of the document as a row-major cell grid.
// Nested tables are hoisted into their own Table entries.
type Table struct {
	SelfRef string   `json:"self_ref"`
	Grid    [][]Cell `json:"grid"`
}

// Text is one free-standing text item (heading, paragraph, list item).
type Text struct {
	SelfRef string `json:"self_ref"`
	Label   string `json:"label"`
	Body    string `json:"body"`
}

// Block holds exactly one of Text or Table, tagged by Kind.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Text  *Text     `json:"text,omitempty"`
	Table *Table    `json:"table,omitempty"`
}

// Content is the structured form of a converted document.
type Content struct {
	Blocks []Block `json:"blocks"`
}

// Result is the full outcome of a conversion.
type Result struct {
	Markdown string  `json:"markdown"`
	Content  Content `json:"content"`
}

// Texts returns all text items in document order.
func (c *Content) Texts() []*Text {
	var out []*Text
	for i := range c.Blocks {
		if c.Blocks[i].Kind == BlockText {
			out = append(out, c.Blocks[i].Text)
		}
	}
	return out
}

// Tables returns all tables in document order.
func (c *Content) Tables() []*Table {
	var out []*Table
	for i := range c.Blocks {
		if c.Blocks[i].Kind == BlockTable {
			out = append(out, c.Blocks[i].Table)
		}
	}
	return out
}

// TextBySelfRef returns the body of the text item with the given self
// reference, or false when no such item exists.
func (c *Content) TextBySelfRef(ref string) (string, bool) {
	for i := range c.Blocks {
		if c.Blocks[i].Kind == BlockText && c.Blocks[i].Text.SelfRef == ref {
			return c.Blocks[i].Text.Body, true
		}
	}
	return "", false
}

// contentBuilder assigns self references while blocks are appended.
type contentBuilder struct {
	content Content
	nTexts  int
	nTables int
}

func (b *contentBuilder) addText(label, body string) {
	body = collapseSpace(body)
	if body == "" {
		return
	}
	t := &Text{
		SelfRef: "#/texts/" + strconv.Itoa(b.nTexts),
		Label:   label,
		Body:    body,
	}
	b.nTexts++
	b.content.Blocks = append(b.content.Blocks, Block{Kind: BlockText, Text: t})
}

func (b *contentBuilder) addTable(grid [][]Cell) {
	if len(grid) == 0 {
		return
	}
	t := &Table{
		SelfRef: "#/tables/" + strconv.Itoa(b.nTables),
		Grid:    grid,
	}
	b.nTables++
	b.content.Blocks = append(b.content.Blocks, Block{Kind: BlockTable, Table: t})
}

// collapseSpace trims and squeezes runs of whitespace into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
