// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"k8s.io/klog/v2"
)

// The device emulation recycles flat buffers per (dtype, length): sampling
// workloads tend to request the same shapes over and over, and reusing the
// slices keeps the allocator out of the hot path.

type bufferPoolKey struct {
	dtype  dtypes.DType
	length int
}

var bufferPools sync.Map // bufferPoolKey -> *sync.Pool

func getBufferPool[T Supported](dtype dtypes.DType, length int) *sync.Pool {
	key := bufferPoolKey{dtype: dtype, length: length}
	poolInterface, ok := bufferPools.Load(key)
	if !ok {
		poolInterface, _ = bufferPools.LoadOrStore(key, &sync.Pool{
			New: func() any {
				if klog.V(2).Enabled() {
					klog.Infof("tensors: allocating %s buffer (%s x %d)",
						humanize.IBytes(uint64(dtype.Memory())*uint64(length)), dtype, length)
				}
				return make([]T, length)
			},
		})
	}
	return poolInterface.(*sync.Pool)
}

func getFlat[T Supported](dtype dtypes.DType, length int) []T {
	flat := getBufferPool[T](dtype, length).Get().([]T)
	clear(flat)
	return flat
}

// newFlat allocates (or recycles) zeroed flat storage for the given dtype.
func newFlat(dtype dtypes.DType, length int) any {
	switch dtype {
	case dtypes.Float32:
		return getFlat[float32](dtype, length)
	case dtypes.Float64:
		return getFlat[float64](dtype, length)
	case dtypes.Int32:
		return getFlat[int32](dtype, length)
	case dtypes.Int64:
		return getFlat[int64](dtype, length)
	}
	exceptions.Panicf("tensors: dtype %s not supported by the device", dtype)
	return nil
}

// releaseFlat returns flat storage to its pool.
func releaseFlat(dtype dtypes.DType, flat any) {
	var length int
	switch v := flat.(type) {
	case []float32:
		length = len(v)
	case []float64:
		length = len(v)
	case []int32:
		length = len(v)
	case []int64:
		length = len(v)
	default:
		return
	}
	key := bufferPoolKey{dtype: dtype, length: length}
	if poolInterface, ok := bufferPools.Load(key); ok {
		poolInterface.(*sync.Pool).Put(flat)
	}
}
