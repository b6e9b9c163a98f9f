package models

// Segment is one piece of highlighted text. Concatenating every segment's
// Text in order yields the original input.
type Segment struct {
	IsMatch bool   `json:"is_match"`
	Text    string `json:"text"`
}

// Span is a half-open byte range [Start, End) of a match in the original text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}
