package adapter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zengjixiang/parcel/engine"
	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/schema"
	"github.com/zengjixiang/parcel/transcoder"
)

type countingTransformer struct {
	result schema.Result
	seen   []schema.Config
}

func (c *countingTransformer) Transform(cfg schema.Config) schema.Result {
	c.seen = append(c.seen, cfg)
	return c.result
}

func okTransformer() *countingTransformer {
	return &countingTransformer{result: schema.Succeeded(schema.Output{Code: "const x = 1;\n"})}
}

func validInput() map[string]any {
	return map[string]any{"code": "const x = 1", "filename": "a.js"}
}

func TestPipeline_Success(t *testing.T) {
	tr := okTransformer()
	p := NewTree(tr)

	out := p.Call(context.Background(), validInput())

	require.Equal(t, StatusSuccess, out.Status)
	assert.Nil(t, out.Err)
	require.Len(t, tr.seen, 1, "transform runs exactly once")
	assert.Equal(t, "a.js", tr.seen[0].Filename)
	assert.Equal(t, schema.LoaderJS, tr.seen[0].Loader)

	tree := out.Value.(map[string]any)
	assert.Equal(t, "const x = 1;\n", tree["code"])
	assert.NotContains(t, tree, transcoder.DiagnosticsKey)
}

func TestPipeline_DiagnosticsAreSuccessValues(t *testing.T) {
	tr := &countingTransformer{result: schema.Failed(schema.Diagnostics{
		Errors: []schema.Diagnostic{{Message: `Unexpected ";"`, Severity: schema.SeverityError}},
	})}

	out := NewTree(tr).Call(context.Background(), validInput())

	require.Equal(t, StatusDiagnostics, out.Status)
	assert.Nil(t, out.Err)
	value, err := out.Unpack()
	require.NoError(t, err)

	result, err := transcoder.DecodeResult(value)
	require.NoError(t, err)
	require.NotNil(t, result.Diagnostics)
	assert.Equal(t, `Unexpected ";"`, result.Diagnostics.Errors[0].Message)
}

func TestPipeline_DecodeErrorSkipsTransform(t *testing.T) {
	tests := []struct {
		name  string
		input any
		kind  errors.Kind
	}{
		{"missing code", map[string]any{"filename": "a.js"}, errors.KindFieldMissing},
		{"wrong type", map[string]any{"code": true, "filename": "a.js"}, errors.KindTypeMismatch},
		{"not an object", []any{"code"}, errors.KindTypeMismatch},
		{"bad enum", map[string]any{"code": "", "filename": "a.js", "format": "amd"}, errors.KindInvalidEnum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := okTransformer()
			out := NewTree(tr).Call(context.Background(), tt.input)

			require.Equal(t, StatusAdapterError, out.Status)
			require.NotNil(t, out.Err)
			assert.Equal(t, errors.PhaseDecode, out.Err.Phase)
			assert.Equal(t, tt.kind, out.Err.Kind)
			assert.Nil(t, out.Value)
			assert.Empty(t, tr.seen, "transform must not run on a decode error")

			_, err := out.Unpack()
			assert.True(t, errors.IsDecode(err))
		})
	}
}

func TestPipeline_EncodeErrors(t *testing.T) {
	t.Run("result without arm", func(t *testing.T) {
		tr := &countingTransformer{}
		out := NewTree(tr).Call(context.Background(), validInput())

		require.Equal(t, StatusAdapterError, out.Status)
		assert.Equal(t, errors.PhaseEncode, out.Err.Phase)
		assert.Len(t, tr.seen, 1)
	})

	t.Run("unrepresentable integer", func(t *testing.T) {
		tr := &countingTransformer{result: schema.Succeeded(schema.Output{
			Warnings: []schema.Diagnostic{{
				CodeHighlights: []schema.CodeHighlight{{Loc: schema.SourceLocation{StartLine: 1 << 62}}},
			}},
		})}
		out := NewTree(tr).Call(context.Background(), validInput())

		require.Equal(t, StatusAdapterError, out.Status)
		assert.Equal(t, errors.PhaseEncode, out.Err.Phase)
		assert.Equal(t, errors.KindOverflow, out.Err.Kind)
	})
}

func TestPipeline_PanicsPropagate(t *testing.T) {
	p := NewTree(engine.TransformFunc(func(schema.Config) schema.Result {
		panic("boom")
	}))
	assert.PanicsWithValue(t, "boom", func() {
		p.Call(context.Background(), validInput())
	})
}

func TestPipeline_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	p := NewTree(okTransformer(), WithTracer(tp.Tracer("test")))
	p.Call(context.Background(), validInput())
	p.Call(context.Background(), map[string]any{"filename": "a.js"})

	var names []string
	var statuses []codes.Code
	for _, s := range recorder.Ended() {
		names = append(names, s.Name())
		statuses = append(statuses, s.Status().Code)
	}
	assert.Equal(t, []string{"transform.decode", "transform.invoke", "transform.encode", "transform.decode"}, names)
	assert.Equal(t, []codes.Code{codes.Ok, codes.Ok, codes.Ok, codes.Error}, statuses)
}

func TestPipeline_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewTree(okTransformer(), WithLogger(zap.New(core)))

	p.Call(context.Background(), validInput())
	p.Call(context.Background(), map[string]any{"code": "x"})

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "transform call", entries[0].Message)
	assert.Equal(t, "success", entries[0].ContextMap()["status"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "decode", entries[1].ContextMap()["phase"])
	assert.Equal(t, "field_missing", entries[1].ContextMap()["kind"])
}

// jsonCodec exercises the generic pipeline with a byte-oriented host.
type jsonCodec struct{}

func (jsonCodec) DecodeConfig(host []byte) (schema.Config, error) {
	var tree any
	if err := json.Unmarshal(host, &tree); err != nil {
		return schema.Config{}, err
	}
	return transcoder.DecodeConfig(tree)
}

func (jsonCodec) EncodeResult(r schema.Result) ([]byte, error) {
	tree, err := transcoder.EncodeResult(r)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

func TestPipeline_GenericCodec(t *testing.T) {
	p := New[[]byte](jsonCodec{}, okTransformer())

	out := p.Call(context.Background(), []byte(`{"code":"const x = 1","filename":"a.js"}`))
	require.Equal(t, StatusSuccess, out.Status)
	assert.JSONEq(t, `{"code":"const x = 1;\n","map":"","legal_comments":"","warnings":[]}`, string(out.Value))

	bad := p.Call(context.Background(), []byte(`{`))
	require.Equal(t, StatusAdapterError, bad.Status)
	assert.Equal(t, errors.PhaseDecode, bad.Err.Phase)
	assert.Equal(t, errors.KindInvalidData, bad.Err.Kind)
	assert.Nil(t, bad.Value)
}

func TestPipeline_ESBuild(t *testing.T) {
	p := NewTree(engine.NewESBuild())

	first, err := p.Call(context.Background(), validInput()).Unpack()
	require.NoError(t, err)
	second, err := p.Call(context.Background(), validInput()).Unpack()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "const x = 1;\n", first.(map[string]any)["code"])

	out := p.Call(context.Background(), map[string]any{"code": "const x = ;", "filename": "a.js"})
	assert.Equal(t, StatusDiagnostics, out.Status)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "diagnostics", StatusDiagnostics.String())
	assert.Equal(t, "adapter_error", StatusAdapterError.String())
	assert.Equal(t, "unknown", Status(42).String())
}
