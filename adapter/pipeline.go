package adapter

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/zengjixiang/parcel/engine"
	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/schema"
)

const tracerName = "github.com/zengjixiang/parcel/adapter"

// Codec converts between one host value model and the schema types.
// DecodeConfig must either return a complete Config or an error, never
// a partially filled value.
type Codec[H any] interface {
	DecodeConfig(host H) (schema.Config, error)
	EncodeResult(r schema.Result) (H, error)
}

// Pipeline runs the decode, invoke, encode sequence for host values of
// type H. It keeps no per-call state and is safe for concurrent use when
// its codec and transformer are.
type Pipeline[H any] struct {
	codec       Codec[H]
	transformer engine.Transformer
	logger      *zap.Logger
	tracer      trace.Tracer
}

type options struct {
	logger *zap.Logger
	tracer trace.Tracer
}

// Option configures a Pipeline.
type Option func(*options)

// WithLogger sets the logger. Defaults to engine.Logger().
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTracer sets the tracer. Defaults to the global provider's tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// New creates a pipeline over codec and transformer.
func New[H any](codec Codec[H], transformer engine.Transformer, opts ...Option) *Pipeline[H] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = engine.Logger()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	return &Pipeline[H]{
		codec:       codec,
		transformer: transformer,
		logger:      o.logger,
		tracer:      o.tracer,
	}
}

// Call performs one boundary call. The transformer runs at most once and
// only after the whole host value decoded; panics from it are not
// recovered. Diagnostics are a regular value, only codec failures yield
// StatusAdapterError.
func (p *Pipeline[H]) Call(ctx context.Context, host H) Outcome[H] {
	start := time.Now()

	cfg, err := p.decode(ctx, host)
	if err != nil {
		return p.fail(err, "", start)
	}

	result := p.invoke(ctx, cfg)

	value, err := p.encode(ctx, result)
	if err != nil {
		return p.fail(err, cfg.Filename, start)
	}

	status := StatusSuccess
	if result.Diagnostics != nil {
		status = StatusDiagnostics
	}
	p.logger.Debug("transform call",
		zap.String("filename", cfg.Filename),
		zap.Stringer("status", status),
		zap.Duration("duration", time.Since(start)))

	return Outcome[H]{Status: status, Value: value}
}

func (p *Pipeline[H]) decode(ctx context.Context, host H) (schema.Config, *errors.Error) {
	_, span := p.tracer.Start(ctx, "transform.decode")
	defer span.End()

	cfg, err := p.codec.DecodeConfig(host)
	if err != nil {
		recordError(span, err)
		return schema.Config{}, errors.As(errors.PhaseDecode, err)
	}
	span.SetAttributes(
		attribute.String("transform.filename", cfg.Filename),
		attribute.String("transform.loader", string(cfg.Loader)),
	)
	span.SetStatus(codes.Ok, "")
	return cfg, nil
}

func (p *Pipeline[H]) invoke(ctx context.Context, cfg schema.Config) schema.Result {
	_, span := p.tracer.Start(ctx, "transform.invoke",
		trace.WithAttributes(attribute.String("transform.filename", cfg.Filename)))
	defer span.End()

	result := p.transformer.Transform(cfg)
	if result.Diagnostics != nil {
		span.SetAttributes(attribute.Int("transform.diagnostics", len(result.Diagnostics.Errors)))
	}
	span.SetStatus(codes.Ok, "")
	return result
}

func (p *Pipeline[H]) encode(ctx context.Context, r schema.Result) (H, *errors.Error) {
	_, span := p.tracer.Start(ctx, "transform.encode")
	defer span.End()

	value, err := p.codec.EncodeResult(r)
	if err != nil {
		recordError(span, err)
		var zero H
		return zero, errors.As(errors.PhaseEncode, err)
	}
	span.SetStatus(codes.Ok, "")
	return value, nil
}

func (p *Pipeline[H]) fail(e *errors.Error, filename string, start time.Time) Outcome[H] {
	p.logger.Warn("transform call failed",
		zap.String("filename", filename),
		zap.String("phase", string(e.Phase)),
		zap.String("kind", string(e.Kind)),
		zap.Duration("duration", time.Since(start)),
		zap.Error(e))
	return failed[H](e)
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
