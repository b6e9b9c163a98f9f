package csvbatch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"comment-screener/internal/highlight"
	"comment-screener/internal/models"
	"comment-screener/internal/threshold"
)

var (
	ErrEmptyInput    = errors.New("csv appears empty")
	ErrMissingColumn = errors.New("no column named comment/text detected")
)

// ParseError reports an unexpected failure while processing a table.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse csv: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TriggerSeparator joins trigger words in the triggers column.
const TriggerSeparator = " | "

// OutputColumns are appended to the input header, in this order.
var OutputColumns = []string{"verdict", "risk_score", "triggers", "highlighted_text"}

// Evaluator scores and classifies one text.
type Evaluator interface {
	Evaluate(text string, strictness threshold.Strictness) models.Verdict
}

// Pipeline enriches a comment table with verdicts. Input is parsed
// leniently (plain comma split, short rows padded); output is encoded
// strictly with CSV quoting.
type Pipeline struct {
	eval Evaluator
}

// NewPipeline creates a pipeline that scores rows with eval.
func NewPipeline(eval Evaluator) *Pipeline {
	return &Pipeline{eval: eval}
}

// Process enriches raw CSV text. ErrEmptyInput and ErrMissingColumn are the
// only expected failures; anything else surfaces as *ParseError. Row-level
// problems never abort the batch.
func (p *Pipeline) Process(raw string, strictness threshold.Strictness) (result models.BatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = models.BatchResult{}
			err = &ParseError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	rows := SplitRows(raw)
	if len(rows) == 0 {
		return models.BatchResult{}, ErrEmptyInput
	}

	headers := ParseHeader(rows[0])
	col := FindTextColumn(headers)
	if col == -1 {
		return models.BatchResult{}, ErrMissingColumn
	}

	out := make([]string, 0, len(rows))
	out = append(out, EncodeRow(append(append([]string(nil), headers...), OutputColumns...)))

	for _, row := range rows[1:] {
		if strings.TrimSpace(row) == "" {
			continue
		}
		cells := SplitCells(row, len(headers))
		out = append(out, EncodeRow(p.enrich(cells, col, strictness)))
	}

	count := len(out) - 1
	return models.BatchResult{
		CSV:      strings.Join(out, "\n"),
		RowCount: count,
		Status:   StatusLine(count, strictness),
	}, nil
}

func (p *Pipeline) enrich(cells []string, col int, strictness threshold.Strictness) []string {
	content := ""
	if col < len(cells) {
		content = cells[col]
	}

	v := p.eval.Evaluate(content, strictness)
	return append(cells,
		v.Label,
		strconv.Itoa(v.ConfidencePercent())+"%",
		strings.Join(v.Triggers, TriggerSeparator),
		highlight.InlineMark(content, v.Triggers),
	)
}

// StatusLine summarizes a finished batch.
func StatusLine(rows int, strictness threshold.Strictness) string {
	noun := "rows"
	if rows == 1 {
		noun = "row"
	}
	return fmt.Sprintf("Processed %d %s using the %s threshold.", rows, noun, strictness.Description())
}
