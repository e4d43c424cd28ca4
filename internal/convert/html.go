package convert

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLConverter walks an HTML tree and collects headings, paragraphs, list
// items and tables in document order. Tables nested inside cells are hoisted
// into their own entries right after their parent, and the parent cell keeps
// the flattened text.
type HTMLConverter struct{}

// NewHTMLConverter returns a stateless HTML converter safe for concurrent use.
func NewHTMLConverter() *HTMLConverter {
	return &HTMLConverter{}
}

func (h *HTMLConverter) Convert(_ context.Context, r io.Reader) (*Result, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	b := &contentBuilder{}
	walk(root, b)

	if len(b.content.Blocks) == 0 {
		return nil, ErrEmptyDocument
	}

	return &Result{
		Markdown: ExportMarkdown(&b.content),
		Content:  b.content,
	}, nil
}

var headingLevels = map[atom.Atom]string{
	atom.H1: "heading_1",
	atom.H2: "heading_2",
	atom.H3: "heading_3",
	atom.H4: "heading_4",
	atom.H5: "heading_5",
	atom.H6: "heading_6",
}

func walk(n *html.Node, b *contentBuilder) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head, atom.Noscript:
			return
		case atom.Table:
			grid, nested := buildGrid(n)
			b.addTable(grid)
			for _, sub := range nested {
				b.addTable(sub)
			}
			return
		case atom.P, atom.Li, atom.Caption, atom.Figcaption:
			b.addText(labelFor(n.DataAtom), inlineText(n))
			return
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			b.addText(headingLevels[n.DataAtom], inlineText(n))
			return
		case atom.Div, atom.Span:
			// Leaf containers holding bare text become text items;
			// anything with block children is walked through.
			if !hasBlockChild(n) {
				b.addText("paragraph", inlineText(n))
				return
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, b)
	}
}

func labelFor(a atom.Atom) string {
	switch a {
	case atom.Li:
		return "list_item"
	case atom.Caption, atom.Figcaption:
		return "caption"
	default:
		return "paragraph"
	}
}

// hasBlockChild reports whether the node contains a descendant that the walk
// handles as its own block.
func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.DataAtom {
			case atom.Table, atom.P, atom.Li, atom.Ul, atom.Ol,
				atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
				atom.Div:
				return true
			}
			if hasBlockChild(c) {
				return true
			}
		}
	}
	return false
}

// buildGrid turns a <table> into a row-major cell grid. Nested tables found
// inside cells are returned separately, in the order encountered.
func buildGrid(table *html.Node) ([][]Cell, [][][]Cell) {
	var grid [][]Cell
	var nested [][][]Cell

	var visitRows func(n *html.Node)
	visitRows = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Tr:
				var row []Cell
				for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
					if cell.Type != html.ElementNode {
						continue
					}
					if cell.DataAtom != atom.Td && cell.DataAtom != atom.Th {
						continue
					}
					for _, sub := range nestedTables(cell) {
						subGrid, subNested := buildGrid(sub)
						nested = append(nested, subGrid)
						nested = append(nested, subNested...)
					}
					row = append(row, Cell{
						Text:    collapseSpace(inlineText(cell)),
						ColSpan: colSpan(cell),
					})
				}
				if len(row) > 0 {
					grid = append(grid, row)
				}
			case atom.Thead, atom.Tbody, atom.Tfoot:
				visitRows(c)
			}
		}
	}
	visitRows(table)

	return grid, nested
}

// colSpan reads the colspan attribute of a cell, returning 0 for the default
// single-column case.
func colSpan(n *html.Node) int {
	for _, attr := range n.Attr {
		if attr.Key != "colspan" {
			continue
		}
		if v, err := strconv.Atoi(strings.TrimSpace(attr.Val)); err == nil && v > 1 {
			return v
		}
	}
	return 0
}

// nestedTables returns direct nested <table> descendants of the cell,
// not descending into tables themselves.
func nestedTables(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Table {
			out = append(out, c)
			continue
		}
		out = append(out, nestedTables(c)...)
	}
	return out
}

// inlineText flattens the visible text of a node, skipping nested tables and
// non-rendered elements.
func inlineText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Table:
				return
			case atom.Br:
				sb.WriteByte(' ')
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visit(c)
	}
	return collapseSpace(sb.String())
}
