//go:build napi

package napi

/*
#cgo CFLAGS: -DNAPI_VERSION=8
#cgo linux LDFLAGS: -Wl,--unresolved-symbols=ignore-all
#cgo darwin LDFLAGS: -undefined dynamic_lookup
#include <node_api.h>

extern napi_value goTransform(napi_env env, napi_callback_info info);

static napi_value transform_callback(napi_env env, napi_callback_info info) {
	return goTransform(env, info);
}

NAPI_MODULE_INIT() {
	napi_value fn;
	if (napi_create_function(env, "transform", NAPI_AUTO_LENGTH, transform_callback, NULL, &fn) != napi_ok) {
		return NULL;
	}
	if (napi_set_named_property(env, exports, "transform", fn) != napi_ok) {
		return NULL;
	}
	return exports;
}
*/
import "C"

// The C preamble above registers the addon. It must stay in a file
// without //export directives.
