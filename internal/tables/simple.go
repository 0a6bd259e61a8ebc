package tables

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

const simpleMinRows = 3

var reSimpleRow = regexp.MustCompile(`\S(?: {2,}|\t+)\S`)

// DetectSimpleTables wraps runs of three or more lines that contain a
// two-space column gap. It is independent of Detector and only looks at
// lines outside existing blocks.
func DetectSimpleTables(text string) string {
	lines := textutil.SplitLines(text)
	protected := textutil.ProtectedMask(lines)
	out := make([]string, 0, len(lines))

	i := 0
	for i < len(lines) {
		j := i
		for j < len(lines) && !protected[j] && reSimpleRow.MatchString(lines[j]) {
			j++
		}
		if j-i >= simpleMinRows {
			rows := make([][]string, 0, j-i)
			for _, line := range lines[i:j] {
				rows = append(rows, trimCells(reGap.Split(strings.TrimSpace(line), -1)))
			}
			out = append(out, formatBlock(rows)...)
			i = j
			continue
		}
		if j == i {
			j++
		}
		out = append(out, lines[i:j]...)
		i = j
	}
	return textutil.JoinLines(out)
}
