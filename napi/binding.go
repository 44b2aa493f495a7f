package napi

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/zengjixiang/parcel/adapter"
	"github.com/zengjixiang/parcel/engine"
	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/schema"
	"github.com/zengjixiang/parcel/transcoder"
)

// Codec is the adapter codec for JS values of one environment.
type Codec[V comparable] struct {
	Env Env[V]
}

func (c Codec[V]) DecodeConfig(v V) (schema.Config, error) {
	tree, err := ReadConfig(c.Env, v)
	if err != nil {
		return schema.Config{}, err
	}
	return transcoder.DecodeConfig(tree)
}

func (c Codec[V]) EncodeResult(r schema.Result) (V, error) {
	tree, err := transcoder.EncodeResult(r)
	if err != nil {
		var zero V
		return zero, err
	}
	return Write(c.Env, tree)
}

// Binding is the body of the exported transform function. Environments
// and handles are per call, so a pipeline is built for each invocation.
type Binding[V comparable] struct {
	transformer engine.Transformer
	opts        []adapter.Option
}

func NewBinding[V comparable](transformer engine.Transformer, opts ...adapter.Option) *Binding[V] {
	return &Binding[V]{transformer: transformer, opts: opts}
}

// Transform runs one call with arg as the config object. On an adapter
// error it throws a JS Error (see Throw) and returns false; the caller
// then returns NULL to the engine.
func (b *Binding[V]) Transform(ctx context.Context, env Env[V], arg V) (V, bool) {
	p := adapter.New[V](Codec[V]{Env: env}, b.transformer, b.opts...)
	out := p.Call(ctx, arg)
	if out.Status != adapter.StatusAdapterError {
		return out.Value, true
	}

	if err := Throw(env, out.Err); err != nil {
		engine.Logger().Error("napi: throw failed",
			zap.String("code", ErrorCode(out.Err.Phase)),
			zap.Error(err))
	}
	var zero V
	return zero, false
}

// ErrorCode is the `code` property of errors thrown for phase.
func ErrorCode(phase errors.Phase) string {
	return "ERR_TRANSFORM_" + strings.ToUpper(string(phase))
}

// Throw raises e as a JS Error carrying code, phase, kind, path and
// detail properties.
func Throw[V comparable](env Env[V], e *errors.Error) error {
	jsErr, err := env.CreateError(ErrorCode(e.Phase), e.Error())
	if err != nil {
		return err
	}

	path := make([]any, len(e.Path))
	for i, p := range e.Path {
		path[i] = p
	}
	props := map[string]any{
		"phase":  string(e.Phase),
		"kind":   string(e.Kind),
		"path":   path,
		"detail": e.Detail,
	}
	for _, key := range []string{"phase", "kind", "path", "detail"} {
		v, err := Write(env, props[key])
		if err != nil {
			return err
		}
		if err := env.SetProperty(jsErr, key, v); err != nil {
			return err
		}
	}
	return env.Throw(jsErr)
}
