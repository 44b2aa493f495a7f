// Package adapter implements the boundary call shared by every embedding.
//
// A call is three stages around one transform invocation:
//
//	host value ──Codec.DecodeConfig──▶ schema.Config
//	                                        │
//	                              Transformer.Transform (exactly once)
//	                                        │
//	host value ◀──Codec.EncodeResult── schema.Result
//
// The stages produce an Outcome tagged with one of three statuses:
//
//	StatusSuccess       Value holds the encoded Output
//	StatusDiagnostics   Value holds the encoded Diagnostics
//	StatusAdapterError  Err holds a decode- or encode-phase *errors.Error
//
// Each embedding maps the Outcome onto its own signalling at the last
// step: Node-API throws for adapter errors, the WebAssembly export sets
// the error arm of its packed return.
//
// # Codecs
//
// TreeCodec works on neutral value trees and is what in-process Go
// callers use. The napi and guest packages plug their own host readers and
// writers in front of the transcoder.
//
// # Observability
//
// Every stage runs in its own OpenTelemetry span (transform.decode,
// transform.invoke, transform.encode). A debug line is logged per call and
// a warning per adapter error; the error is still returned to the caller.
package adapter
