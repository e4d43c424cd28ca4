package convert

import (
	"strings"
)

// ExportMarkdown renders structured content as GitHub-flavored markdown:
// ATX headings, plain paragraphs, dashed list items and pipe tables.
func ExportMarkdown(c *Content) string {
	var sb strings.Builder

	for i := range c.Blocks {
		switch c.Blocks[i].Kind {
		case BlockText:
			writeTextMarkdown(&sb, c.Blocks[i].Text)
		case BlockTable:
			writeTableMarkdown(&sb, c.Blocks[i].Table)
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeTextMarkdown(sb *strings.Builder, t *Text) {
	switch {
	case strings.HasPrefix(t.Label, "heading_"):
		level := int(t.Label[len(t.Label)-1] - '0')
		if level < 1 || level > 6 {
			level = 1
		}
		sb.WriteString(strings.Repeat("#", level))
		sb.WriteByte(' ')
		sb.WriteString(t.Body)
	case t.Label == "list_item":
		sb.WriteString("- ")
		sb.WriteString(t.Body)
	default:
		sb.WriteString(t.Body)
	}
	sb.WriteString("\n\n")
}

func writeTableMarkdown(sb *strings.Builder, t *Table) {
	if len(t.Grid) == 0 {
		return
	}

	cols := 0
	for _, row := range t.Grid {
		width := 0
		for _, c := range row {
			width += c.Span()
		}
		if width > cols {
			cols = width
		}
	}

	// Spanning cells occupy their extra columns as empty cells so every row
	// lines up with the widest one.
	writeRow := func(row []Cell) {
		sb.WriteByte('|')
		written := 0
		for _, c := range row {
			sb.WriteByte(' ')
			sb.WriteString(escapePipes(c.Text))
			sb.WriteString(" |")
			written++
			for i := 1; i < c.Span(); i++ {
				sb.WriteString("  |")
				written++
			}
		}
		for ; written < cols; written++ {
			sb.WriteString("  |")
		}
		sb.WriteByte('\n')
	}

	writeRow(t.Grid[0])
	sb.WriteByte('|')
	for i := 0; i < cols; i++ {
		sb.WriteString("---|")
	}
	sb.WriteByte('\n')
	for _, row := range t.Grid[1:] {
		writeRow(row)
	}
	sb.WriteByte('\n')
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
