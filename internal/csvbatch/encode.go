package csvbatch

import "strings"

// EncodeCell quotes v only when it contains a comma, double quote or
// newline, doubling any embedded double quotes.
func EncodeCell(v string) string {
	if !strings.ContainsAny(v, ",\"\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// EncodeRow encodes cells and joins them with commas.
func EncodeRow(cells []string) string {
	encoded := make([]string, len(cells))
	for i, c := range cells {
		encoded[i] = EncodeCell(c)
	}
	return strings.Join(encoded, ",")
}
