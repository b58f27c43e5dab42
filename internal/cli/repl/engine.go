package repl

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/yndnr/connectus-go/internal/core/command"
	"github.com/yndnr/connectus-go/internal/core/domain"
	"github.com/yndnr/connectus-go/internal/core/parser"
	"github.com/yndnr/connectus-go/internal/telemetry/logger"
	"github.com/yndnr/connectus-go/internal/telemetry/metric"
)

// Engine parses and executes command lines against a model.
// It is shared by the interactive loop and one-shot execution.
type Engine struct {
	model   command.Model
	metrics *metric.Registry
	logger  logger.Logger
	seq     atomic.Uint64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithMetrics records command outcomes in r.
func WithMetrics(r *metric.Registry) EngineOption {
	return func(e *Engine) { e.metrics = r }
}

// WithEngineLogger sets the logger attached to every command context.
func WithEngineLogger(l logger.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an Engine over model.
func NewEngine(model command.Model, opts ...EngineOption) *Engine {
	e := &Engine{
		model:  model,
		logger: logger.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Model returns the model commands run against.
func (e *Engine) Model() command.Model {
	return e.model
}

// Eval parses line and executes the resulting command. The returned
// command is nil when parsing failed.
func (e *Engine) Eval(ctx context.Context, line string) (command.Command, *command.Result, error) {
	ctx = logger.WithLogger(ctx, e.logger)
	ctx = logger.WithCommandID(ctx, e.seq.Add(1))
	log := logger.L(ctx)

	word := metricWord(line)
	start := time.Now()

	cmd, err := parser.Parse(line)
	if err != nil {
		code := domain.GetErrorCode(err)
		log.Debug("command rejected", "command", word, "code", code)
		if e.metrics != nil {
			e.metrics.ObserveParseFailure(word, code)
		}
		return nil, nil, err
	}

	res, err := cmd.Execute(ctx, e.model)
	elapsed := time.Since(start)

	outcome := metric.OutcomeSuccess
	if err != nil {
		outcome = metric.OutcomeExecError
		if errors.Is(err, domain.ErrStorageError) {
			log.Error("command failed", "command", word, "error", err)
		} else {
			log.Debug("command failed", "command", word, "code", domain.GetErrorCode(err))
		}
	} else {
		log.Debug("command executed", "command", word, "elapsed", elapsed)
	}
	if e.metrics != nil {
		e.metrics.ObserveCommand(word, outcome, elapsed)
	}

	return cmd, res, err
}

// metricWord returns the command word of line, or "" when line does not
// start with a known command. Raw input never becomes a metric label.
func metricWord(line string) string {
	word, _, ok := parser.SplitCommand(line)
	if !ok || !parser.IsCommandWord(word) {
		return ""
	}
	return word
}
