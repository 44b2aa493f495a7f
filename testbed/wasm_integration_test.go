package testbed_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zengjixiang/parcel/engine"
	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/runtime"
	"github.com/zengjixiang/parcel/schema"
	"github.com/zengjixiang/parcel/testbed"
	"github.com/zengjixiang/parcel/transcoder"
)

// transformWASM returns the compiled guest module. Build it with
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o testbed/transform.wasm ./cmd/transform-wasm
//
// or point TRANSFORM_WASM at an existing build.
func transformWASM(t *testing.T) []byte {
	t.Helper()
	path := os.Getenv("TRANSFORM_WASM")
	if path == "" {
		path = "transform.wasm"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Skipf("transform.wasm not found: %v", err)
	}
	return data
}

func loadModule(t *testing.T) *runtime.Module {
	t.Helper()
	wasm := transformWASM(t)
	ctx := context.Background()

	rt, err := runtime.New(ctx, runtime.WithStderr(os.Stderr))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close(ctx) })

	mod, err := rt.Load(ctx, wasm)
	require.NoError(t, err)
	return mod
}

func TestWASM_MatchesInProcessGuest(t *testing.T) {
	ctx := context.Background()
	mod := loadModule(t)

	inst, err := mod.Instantiate(ctx)
	require.NoError(t, err)
	defer inst.Close(ctx)

	reference := runtime.NewInstance(testbed.NewGuest(engine.NewESBuild()))

	for _, tc := range transformCases {
		t.Run(tc.name, func(t *testing.T) {
			want, err := reference.Transform(ctx, tc.cfg)
			require.NoError(t, err)
			got, err := inst.Transform(ctx, tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestWASM_DecodeErrors(t *testing.T) {
	ctx := context.Background()
	mod := loadModule(t)

	inst, err := mod.Instantiate(ctx)
	require.NoError(t, err)
	defer inst.Close(ctx)

	for _, tc := range failureCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inst.Transform(ctx, tc.cfg)
			require.Error(t, err)
			assert.True(t, errors.IsDecode(err))
		})
	}

	// The instance stays usable after an error-arm return.
	res, err := inst.TransformConfig(ctx, schema.Config{Code: "const x = 1", Filename: "a.js"})
	require.NoError(t, err)
	require.NotNil(t, res.Output)
	assert.Equal(t, "const x = 1;\n", res.Output.Code)
}

func TestWASM_ConcurrentInstances(t *testing.T) {
	ctx := context.Background()
	mod := loadModule(t)

	const workers = 4
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inst, err := mod.Instantiate(ctx)
			if !assert.NoError(t, err) {
				return
			}
			defer inst.Close(ctx)

			for i := 0; i < 5; i++ {
				out, err := inst.Transform(ctx, map[string]any{"code": "let a: number = 1", "filename": "a.ts"})
				if !assert.NoError(t, err) {
					return
				}
				res, err := transcoder.DecodeResult(out)
				assert.NoError(t, err)
				if assert.NotNil(t, res.Output) {
					assert.Equal(t, "let a = 1;\n", res.Output.Code)
				}
			}
		}()
	}
	wg.Wait()
}
