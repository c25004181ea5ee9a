// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

// Package tensors implements Tensor, the destination array the samplers
// write into.
//
// A Tensor pairs a shapes.Shape with flat storage on the process's compute
// device -- here the pure-Go device emulation, where "device memory" is a
// typed Go slice served from a per-dtype buffer pool, and kernels run on the
// workerspool. Elements are stored in the array's natural iteration order
// (row-major, last axis fastest).
package tensors

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"

	"github.com/accelrand/accelrand/types/shapes"
)

// Tensor is a device-resident array of one of the supported dtypes
// (Float32, Float64, Int32, Int64).
//
// Create one with FromShape (zero-initialized) or FromFlatDataAndDimensions.
// A Tensor is not safe for concurrent mutation; sampling kernels write
// disjoint ranges of the flat data, which is fine.
type Tensor struct {
	shape shapes.Shape

	// flat is a slice of the Go type for shape.DType, of length shape.Size().
	flat any
}

// FromShape returns a zero-initialized Tensor of the given shape.
//
// The shape's dtype must be one of the supported dtypes; anything else is a
// programming error and panics -- samplers validate dtypes (returning
// errors) before allocating.
func FromShape(shape shapes.Shape) *Tensor {
	if !shape.Ok() {
		exceptions.Panicf("tensors.FromShape: invalid shape %s", shape)
	}
	return &Tensor{shape: shape, flat: newFlat(shape.DType, shape.Size())}
}

// FromFlatDataAndDimensions creates a Tensor from a flat slice and
// dimensions. The dtype is inferred from T and the data length must match
// the product of the dimensions. The data is used directly, not copied.
func FromFlatDataAndDimensions[T Supported](data []T, dimensions ...int) *Tensor {
	shape := shapes.Make(dtypes.FromGenericsType[T](), dimensions...)
	if len(data) != shape.Size() {
		exceptions.Panicf("tensors.FromFlatDataAndDimensions: shape %s needs %d values, got %d",
			shape, shape.Size(), len(data))
	}
	return &Tensor{shape: shape, flat: data}
}

// FromScalar creates a rank-0 Tensor holding the given value.
func FromScalar[T Supported](value T) *Tensor {
	return FromFlatDataAndDimensions([]T{value})
}

// Supported are the Go element types a Tensor can hold.
type Supported interface {
	float32 | float64 | int32 | int64
}

// Shape of the tensor.
func (t *Tensor) Shape() shapes.Shape { return t.shape }

// DType of the tensor's elements.
func (t *Tensor) DType() dtypes.DType { return t.shape.DType }

// Rank of the tensor. Scalars have rank 0.
func (t *Tensor) Rank() int { return t.shape.Rank() }

// Size is the number of elements.
func (t *Tensor) Size() int { return t.shape.Size() }

// IsFinalized returns whether the tensor's storage was already released.
func (t *Tensor) IsFinalized() bool { return t == nil || t.flat == nil }

// Finalize releases the tensor's storage back to the device pool. The tensor
// must not be used afterwards. It is optional -- the GC collects abandoned
// tensors as usual -- but recycling large sample buffers is much cheaper.
func (t *Tensor) Finalize() {
	if t.IsFinalized() {
		return
	}
	releaseFlat(t.shape.DType, t.flat)
	t.flat = nil
}

// Data returns the tensor's flat data as a []T. T must match the tensor's
// dtype, otherwise it panics; use Tensor.DType to dispatch first.
func Data[T Supported](t *Tensor) []T {
	if t.IsFinalized() {
		exceptions.Panicf("tensors.Data: tensor already finalized")
	}
	flat, ok := t.flat.([]T)
	if !ok {
		exceptions.Panicf("tensors.Data[%s]: tensor holds %s", dtypes.FromGenericsType[T](), t.shape.DType)
	}
	return flat
}

// CopyFlatData returns a copy of the flat data as a []T. T must match the
// tensor's dtype.
func CopyFlatData[T Supported](t *Tensor) []T {
	flat := Data[T](t)
	out := make([]T, len(flat))
	copy(out, flat)
	return out
}

// ToScalar returns the value of a rank-0 (or size-1) tensor.
func ToScalar[T Supported](t *Tensor) T {
	flat := Data[T](t)
	if len(flat) != 1 {
		exceptions.Panicf("tensors.ToScalar: tensor shaped %s has %d elements", t.shape, len(flat))
	}
	return flat[0]
}

// ConvertToFloat64 returns the flat data widened to []float64, whatever the
// tensor's dtype. Used to feed array-valued distribution parameters to the
// float64 sampler cores.
func ConvertToFloat64(t *Tensor) []float64 {
	switch t.DType() {
	case dtypes.Float64:
		return CopyFlatData[float64](t)
	case dtypes.Float32:
		flat := Data[float32](t)
		out := make([]float64, len(flat))
		for ii, v := range flat {
			out[ii] = float64(v)
		}
		return out
	case dtypes.Int32:
		flat := Data[int32](t)
		out := make([]float64, len(flat))
		for ii, v := range flat {
			out[ii] = float64(v)
		}
		return out
	case dtypes.Int64:
		flat := Data[int64](t)
		out := make([]float64, len(flat))
		for ii, v := range flat {
			out[ii] = float64(v)
		}
		return out
	}
	exceptions.Panicf("tensors.ConvertToFloat64: unsupported dtype %s", t.DType())
	return nil
}

// ConvertToInt64 returns the flat data as []int64. Only defined for the
// integer dtypes; it errors on float tensors instead of truncating them.
func ConvertToInt64(t *Tensor) ([]int64, error) {
	switch t.DType() {
	case dtypes.Int64:
		return CopyFlatData[int64](t), nil
	case dtypes.Int32:
		flat := Data[int32](t)
		out := make([]int64, len(flat))
		for ii, v := range flat {
			out[ii] = int64(v)
		}
		return out, nil
	}
	return nil, errors.Errorf("cannot use %s tensor as an integer parameter", t.DType())
}

// String pretty-prints small tensors whole and large ones abridged.
func (t *Tensor) String() string {
	if t.IsFinalized() {
		return "Tensor(finalized)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Tensor%s: ", t.shape)
	const maxElements = 16
	switch flat := t.flat.(type) {
	case []float32:
		writeFlat(&b, flat, maxElements)
	case []float64:
		writeFlat(&b, flat, maxElements)
	case []int32:
		writeFlat(&b, flat, maxElements)
	case []int64:
		writeFlat(&b, flat, maxElements)
	}
	return b.String()
}

func writeFlat[T Supported](b *strings.Builder, flat []T, limit int) {
	if len(flat) <= limit {
		fmt.Fprintf(b, "%v", flat)
		return
	}
	fmt.Fprintf(b, "%v... (%d elements)", flat[:limit], len(flat))
}
