package tables

import (
	"strings"

	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

// FormatRow renders cells as "| a | b |".
func FormatRow(cells []string) string {
	var b strings.Builder
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(c)
		b.WriteString(" |")
	}
	return b.String()
}

// FormatRows renders a complete table block. A table without rows yields
// only the marker pair.
func FormatRows(rows [][]string) string {
	return textutil.JoinLines(formatBlock(rows))
}

func formatBlock(rows [][]string) []string {
	out := make([]string, 0, len(rows)+2)
	out = append(out, textutil.TableStart)
	for _, row := range rows {
		out = append(out, FormatRow(row))
	}
	return append(out, textutil.TableEnd)
}

// trimCells trims every cell and drops empty trailing cells.
func trimCells(cells []string) []string {
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	end := len(cells)
	for end > 0 && cells[end-1] == "" {
		end--
	}
	return cells[:end]
}
