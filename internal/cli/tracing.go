package cli

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/zengjixiang/parcel/engine"
)

// setupTracing installs the global tracer provider and returns its
// shutdown function. With no exporter the global provider is left alone.
func setupTracing(exporter string, w io.Writer) (func(context.Context) error, error) {
	noopShutdown := func(context.Context) error { return nil }

	switch exporter {
	case "":
		return noopShutdown, nil
	case TraceStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		otel.SetTracerProvider(tp)
		return tp.Shutdown, nil
	default:
		return nil, fmt.Errorf("unsupported exporter: %s", exporter)
	}
}

// setupLogging replaces the engine logger. Verbose runs get zap's
// development logger, everything else stays silent.
func setupLogging(verbose bool) (*zap.Logger, error) {
	if !verbose {
		l := zap.NewNop()
		engine.SetLogger(l)
		return l, nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	engine.SetLogger(l)
	return l, nil
}
