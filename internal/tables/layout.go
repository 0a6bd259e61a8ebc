package tables

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	columnVoteShare = 0.6
	tabWidth        = 4
)

var (
	reSeparatorRow = regexp.MustCompile(`^[\s|+\-=:]+$`)
	reGap          = regexp.MustCompile(`(?: {2,}|\t+)`)
)

// isSeparatorRow matches rule lines such as "|---+---|" or "=====".
func isSeparatorRow(line string) bool {
	return reSeparatorRow.MatchString(line) && strings.ContainsAny(line, "-=")
}

// splitPipeRow strips the outer pipes and splits on the inner ones.
func splitPipeRow(line string) []string {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "|")
	t = strings.TrimSuffix(t, "|")
	return trimCells(strings.Split(t, "|"))
}

func pipeRows(lines []string) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" || isSeparatorRow(line) {
			continue
		}
		if cells := splitPipeRow(line); len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// columnBoundaries votes on character offsets where a column gap begins.
// Offset i is a boundary when at least 60% of lines have a space at i, the
// previous offset did not reach that share, and at least 60% of lines still
// carry content at or after i. Positions past the end of a line count as space.
func columnBoundaries(grid [][]rune) []int {
	n := len(grid)
	if n == 0 {
		return nil
	}
	width := 0
	for _, row := range grid {
		width = max(width, len(row))
	}
	// lastContent[k] is the index of the last non-space rune in row k.
	lastContent := make([]int, n)
	for k, row := range grid {
		lastContent[k] = -1
		for i := len(row) - 1; i >= 0; i-- {
			if !unicode.IsSpace(row[i]) {
				lastContent[k] = i
				break
			}
		}
	}
	need := columnVoteShare * float64(n)
	spaceMajority := func(i int) bool {
		votes := 0
		for _, row := range grid {
			if i >= len(row) || unicode.IsSpace(row[i]) {
				votes++
			}
		}
		return float64(votes) >= need
	}
	continues := func(i int) bool {
		count := 0
		for _, last := range lastContent {
			if last >= i {
				count++
			}
		}
		return float64(count) >= need
	}

	var bounds []int
	prev := spaceMajority(0)
	for i := 1; i < width; i++ {
		cur := spaceMajority(i)
		if cur && !prev && continues(i) {
			bounds = append(bounds, i)
		}
		prev = cur
	}
	return bounds
}

func toGrid(lines []string) [][]rune {
	grid := make([][]rune, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		expanded := strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
		grid = append(grid, []rune(strings.TrimRightFunc(expanded, unicode.IsSpace)))
	}
	return grid
}

// sliceRow cuts a row at the voted boundaries. A boundary that falls inside
// a token of this row is moved forward to the token's end.
func sliceRow(row []rune, bounds []int) []string {
	cells := make([]string, 0, len(bounds)+1)
	start := 0
	for _, b := range bounds {
		b = snapToGap(row, max(b, start))
		cells = append(cells, string(row[start:b]))
		start = b
	}
	cells = append(cells, string(row[start:]))
	return trimCells(cells)
}

func snapToGap(row []rune, b int) int {
	if b >= len(row) {
		return len(row)
	}
	for b > 0 && b < len(row) && !unicode.IsSpace(row[b-1]) && !unicode.IsSpace(row[b]) {
		b++
	}
	return b
}

// splitNearMiddle splits a line at the whitespace closest to its center.
func splitNearMiddle(row []rune) []string {
	s := strings.TrimSpace(string(row))
	r := []rune(s)
	mid := len(r) / 2
	best := -1
	for d := 0; d <= mid+1; d++ {
		if i := mid - d; i > 0 && i < len(r) && unicode.IsSpace(r[i]) {
			best = i
			break
		}
		if i := mid + d; i > 0 && i < len(r) && unicode.IsSpace(r[i]) {
			best = i
			break
		}
	}
	if best < 0 {
		return trimCells([]string{s})
	}
	return trimCells([]string{string(r[:best]), string(r[best:])})
}

// alignedRows slices space-aligned lines into cells.
func alignedRows(lines []string) [][]string {
	grid := toGrid(lines)
	bounds := columnBoundaries(grid)
	rows := make([][]string, 0, len(grid))
	for _, row := range grid {
		var cells []string
		if len(bounds) == 0 {
			cells = splitNearMiddle(row)
		} else {
			cells = sliceRow(row, bounds)
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// gapCount returns the number of 2+ space (or tab) runs between tokens.
func gapCount(trimmed string) int {
	return len(reGap.FindAllStringIndex(trimmed, -1))
}
