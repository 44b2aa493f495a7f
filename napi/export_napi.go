//go:build napi

package napi

/*
#include <node_api.h>
*/
import "C"

import (
	"context"

	"github.com/zengjixiang/parcel/engine"
	"github.com/zengjixiang/parcel/errors"
)

var binding = NewBinding[C.napi_value](engine.NewESBuild())

//export goTransform
func goTransform(env C.napi_env, info C.napi_callback_info) C.napi_value {
	e := &cEnv{env: env}

	// Missing arguments are filled with undefined.
	argc := C.size_t(1)
	var argv [1]C.napi_value
	if err := e.check(C.napi_get_cb_info(env, info, &argc, &argv[0], nil, nil)); err != nil {
		_ = Throw[C.napi_value](e, errors.Wrap(errors.PhaseDecode, errors.KindInvalidInput, err, "read call arguments"))
		return nil
	}

	out, ok := binding.Transform(context.Background(), e, argv[0])
	if !ok {
		return nil
	}
	return out
}
