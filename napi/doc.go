// Package napi is the native (Node-API) embedding of the transform
// adapter.
//
// The package is split along the cgo line. Everything that converts
// values, maps errors or drives the pipeline is written against the Env
// interface and builds without cgo:
//
//	Read        JS value  -> neutral value tree (keys snapshotted, depth 64)
//	ReadConfig  Read over the Config keys of the root object only
//	Write       neutral value tree -> JS value
//	Codec       adapter.Codec over ReadConfig/Write and package transcoder
//	Binding     one transform call; throws on adapter errors
//
// Files built with the napi tag implement Env over node_api.h and
// register the addon:
//
//	exports.transform = function transform(config) { ... }
//
// Build the addon from cmd/transform-napi:
//
//	CGO_CFLAGS="-I$(node -p 'require("path").resolve(process.execPath, "../../include/node")')" \
//	  go build -tags napi -buildmode=c-shared -o transform.node ./cmd/transform-napi
//
// Adapter errors are thrown as Error objects:
//
//	code    ERR_TRANSFORM_DECODE or ERR_TRANSFORM_ENCODE
//	phase   "decode" | "encode"
//	kind    error kind, e.g. "field_missing"
//	path    field path as an array of strings
//	detail  human-readable detail
//
// Output and Diagnostics are both returned as plain objects.
package napi
