package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"comment-screener/internal/highlight"
	"comment-screener/internal/models"
	"comment-screener/internal/threshold"

	"go.uber.org/zap"
)

var (
	// ErrNoVerdict wraps every failure to obtain a remote score.
	ErrNoVerdict = errors.New("no verdict available")
	// ErrSuperseded is returned to an analysis cancelled by a newer one
	// from the same client.
	ErrSuperseded = fmt.Errorf("%w: superseded by a newer analysis", ErrNoVerdict)
	// ErrEmptyText is returned when the comment is blank after trimming.
	ErrEmptyText = errors.New("comment is empty")

	errSupersededCause = errors.New("superseded")
)

// Predictor returns a toxicity probability for a text.
type Predictor interface {
	Predict(ctx context.Context, text string) (*models.Prediction, error)
}

// Analysis is a verdict enriched for display. It echoes the strictness the
// verdict was classified at; the verdict itself does not carry it.
type Analysis struct {
	models.Verdict
	ConfidencePercent int              `json:"confidence_percent"`
	Strictness        int              `json:"strictness"`
	StrictnessLabel   string           `json:"strictness_label"`
	Segments          []models.Segment `json:"segments"`
}

// NewAnalysis decorates v, classified at strictness, with highlight segments
// over text.
func NewAnalysis(text string, v models.Verdict, strictness threshold.Strictness) *Analysis {
	return &Analysis{
		Verdict:           v,
		ConfidencePercent: v.ConfidencePercent(),
		Strictness:        int(strictness),
		StrictnessLabel:   strictness.Description(),
		Segments:          highlight.Annotate(text, v.Triggers),
	}
}

type inflightCall struct {
	cancel context.CancelCauseFunc
}

// Analyzer runs single-comment analyses against the remote model. At most
// one remote call per client id is live; starting a new one cancels the old.
type Analyzer struct {
	builder   *Builder
	predictor Predictor
	logger    *zap.Logger

	mu       sync.Mutex
	inflight map[string]*inflightCall
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(builder *Builder, predictor Predictor, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		builder:   builder,
		predictor: predictor,
		logger:    logger,
		inflight:  make(map[string]*inflightCall),
	}
}

// Analyze scores text with the remote model and highlights it with the
// local lexicon. Any remote failure yields ErrNoVerdict and no verdict.
func (a *Analyzer) Analyze(ctx context.Context, clientID, text string, strictness threshold.Strictness) (*Analysis, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyText
	}

	callCtx, done := a.begin(ctx, clientID)
	defer done()

	pred, err := a.predictor.Predict(callCtx, trimmed)
	if errors.Is(context.Cause(callCtx), errSupersededCause) {
		a.logger.Info("Analysis superseded by a newer request", zap.String("client_id", clientID))
		return nil, ErrSuperseded
	}
	if err != nil {
		a.logger.Error("Remote prediction failed", zap.String("client_id", clientID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrNoVerdict, err)
	}

	v := a.builder.Build(trimmed, strictness, &pred.Prob)
	a.logger.Debug("Comment analyzed",
		zap.String("client_id", clientID),
		zap.Float64("score", v.Score),
		zap.String("level", string(v.Level)),
		zap.Int("triggers", len(v.Triggers)))

	return NewAnalysis(trimmed, v, strictness), nil
}

// Evaluate produces a lexicon-only analysis. It never fails; empty text
// yields a zero-risk verdict.
func (a *Analyzer) Evaluate(text string, strictness threshold.Strictness) *Analysis {
	return NewAnalysis(text, a.builder.Build(text, strictness, nil), strictness)
}

// begin registers a call for clientID, cancelling any previous one. Calls
// without a client id are never superseded.
func (a *Analyzer) begin(ctx context.Context, clientID string) (context.Context, func()) {
	callCtx, cancel := context.WithCancelCause(ctx)
	if clientID == "" {
		return callCtx, func() { cancel(nil) }
	}

	call := &inflightCall{cancel: cancel}

	a.mu.Lock()
	if prev, ok := a.inflight[clientID]; ok {
		prev.cancel(errSupersededCause)
	}
	a.inflight[clientID] = call
	a.mu.Unlock()

	return callCtx, func() {
		a.mu.Lock()
		if a.inflight[clientID] == call {
			delete(a.inflight, clientID)
		}
		a.mu.Unlock()
		cancel(nil)
	}
}
