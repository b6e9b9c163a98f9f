package csvbatch

import (
	"regexp"
	"strings"
)

var textColumnRe = regexp.MustCompile(`(?i)comment|text`)

// SplitRows removes carriage returns, splits on newlines and drops empty
// lines. Whitespace-only lines are kept here and skipped later as data rows.
func SplitRows(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r", ""), "\n")
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			rows = append(rows, l)
		}
	}
	return rows
}

// ParseHeader splits the header line on commas and trims each name.
func ParseHeader(line string) []string {
	headers := strings.Split(line, ",")
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	return headers
}

// FindTextColumn returns the index of the first header containing "comment"
// or "text" in any case, or -1.
func FindTextColumn(headers []string) int {
	for i, h := range headers {
		if textColumnRe.MatchString(h) {
			return i
		}
	}
	return -1
}

// SplitCells splits a data line on commas without any quote handling and
// right-pads it with empty cells up to width. Longer rows keep every cell.
func SplitCells(line string, width int) []string {
	cells := strings.Split(line, ",")
	for len(cells) < width {
		cells = append(cells, "")
	}
	return cells
}
