package engine

import "github.com/zengjixiang/parcel/schema"

// Transformer is the opaque source transformation behind every export.
// Transform must be deterministic for a given Config and must report
// source problems through the Diagnostics arm, never by panicking.
type Transformer interface {
	Transform(cfg schema.Config) schema.Result
}

// TransformFunc adapts an ordinary function to Transformer.
type TransformFunc func(cfg schema.Config) schema.Result

func (f TransformFunc) Transform(cfg schema.Config) schema.Result {
	return f(cfg)
}

var _ Transformer = TransformFunc(nil)
var _ Transformer = (*ESBuild)(nil)
