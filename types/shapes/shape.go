// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes defines Shape, the combination of a DType and dimensions that
// describes a sample array, either already materialized (see the tensors
// package) or about to be filled by a sampler.
//
// DType is the gopjrt dtypes.DType enum. Only a small closed subset of it is
// meaningful to the samplers: Float32 and Float64 for the continuous
// distribution families, Int32 and Int64 for the discrete ones. Which dtypes
// a given distribution accepts is decided by the random package.
//
// Glossary:
//
//   - Rank: number of axes of an array.
//   - Axis: the index of a dimension. Axis 0 is the outermost.
//   - Dimension: the extent of an axis. Zero-sized dimensions are legal and
//     yield empty arrays.
//   - Scalar: a shape of rank 0, holding a single value.
package shapes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
	. "github.com/gomlx/gopjrt/dtypes"
)

// Shape represents the shape of a sample array: its element DType and the
// ordered dimension extents.
//
// Use Make to create one. The zero value is invalid (Ok() == false).
type Shape struct {
	DType      DType
	Dimensions []int
}

// Make returns a Shape with the given dtype and dimensions.
//
// Dimensions must be non-negative -- a zero extent is valid and denotes an
// empty array. Negative dimensions are a programming error and panic.
func Make(dtype DType, dimensions ...int) Shape {
	s := Shape{DType: dtype, Dimensions: slices.Clone(dimensions)}
	for _, dim := range dimensions {
		if dim < 0 {
			exceptions.Panicf("shapes.Make(%s): cannot create a shape with a negative dimension", s)
		}
	}
	return s
}

// Scalar returns a rank-0 shape for the given dtype.
func Scalar(dtype DType) Shape {
	return Shape{DType: dtype}
}

// Invalid returns an invalid shape: Invalid().Ok() == false.
func Invalid() Shape {
	return Shape{DType: InvalidDType}
}

// Ok returns whether this is a valid Shape. The zero value Shape{} is invalid.
func (s Shape) Ok() bool { return s.DType != InvalidDType }

// Rank of the shape, that is, the number of axes.
func (s Shape) Rank() int { return len(s.Dimensions) }

// IsScalar returns whether the shape represents a scalar: a valid shape of
// rank 0.
func (s Shape) IsScalar() bool { return s.Ok() && s.Rank() == 0 }

// Dim returns the dimension of the given axis. Negative axis values count
// from the end, so Dim(-1) is the last axis. Out-of-bound axes panic, like
// slice indexing.
func (s Shape) Dim(axis int) int {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		exceptions.Panicf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.Rank(), s)
	}
	return s.Dimensions[adjustedAxis]
}

// Shape returns a shallow copy of itself. It implements the HasShape interface.
func (s Shape) Shape() Shape { return s }

// String implements fmt.Stringer, pretty-printing the shape.
func (s Shape) String() string {
	if s.Rank() == 0 {
		return fmt.Sprintf("(%s)", s.DType)
	}
	return fmt.Sprintf("(%s)%v", s.DType, s.Dimensions)
}

// Size returns the number of elements of DType needed for this shape: the
// product of all dimensions. A scalar has size 1; any zero-sized dimension
// makes the size 0.
func (s Shape) Size() (size int) {
	size = 1
	for _, d := range s.Dimensions {
		size *= d
	}
	return
}

// Memory returns the number of bytes needed to store an array of this shape.
func (s Shape) Memory() uintptr {
	return s.DType.Memory() * uintptr(s.Size())
}

// Equal compares two shapes for equality: dtype and dimensions.
func (s Shape) Equal(s2 Shape) bool {
	if s.DType != s2.DType || s.Rank() != s2.Rank() {
		return false
	}
	return slices.Equal(s.Dimensions, s2.Dimensions)
}

// EqualDimensions compares two shapes for equality of dimensions only; the
// dtypes may differ.
func (s Shape) EqualDimensions(s2 Shape) bool {
	if s.Rank() != s2.Rank() {
		return false
	}
	return slices.Equal(s.Dimensions, s2.Dimensions)
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	return Shape{DType: s.DType, Dimensions: slices.Clone(s.Dimensions)}
}

// HasShape is an interface for objects that have an associated Shape.
// Shape itself implements it.
type HasShape interface {
	Shape() Shape
}

// dimsToString formats dimensions for error messages.
func dimsToString(dims []int) string {
	parts := make([]string, len(dims))
	for ii, d := range dims {
		parts[ii] = fmt.Sprintf("%d", d)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
