//go:build napi

// Command transform-napi is the Node-API embedding of the transform.
//
// Build it as a shared library and load it from Node.js as a native addon:
//
//	go build -tags napi -buildmode=c-shared -o transform.node ./cmd/transform-napi
//
// The addon exports a single function, transform(config), returning the
// result object or throwing an Error whose code is ERR_TRANSFORM_<PHASE>.
package main

import _ "github.com/zengjixiang/parcel/napi"

func main() {}
