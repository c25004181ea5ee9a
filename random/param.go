// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package random

import (
	"math"

	"github.com/accelrand/accelrand/tensors"
	"github.com/accelrand/accelrand/types/shapes"
)

// Param is a distribution parameter: either a scalar or an element-wise
// array broadcast against the output shape. Build one with Const or
// FromTensor; the zero value is Const(0).
type Param struct {
	value float64
	arr   *tensors.Tensor
}

// Const returns a scalar-valued parameter.
func Const(value float64) Param {
	return Param{value: value}
}

// FromTensor returns an array-valued parameter. The tensor's dimensions must
// be broadcast-compatible with the requested output shape (checked at the
// sampling call), and its values must lie in the distribution's domain, the
// same as scalar parameters.
func FromTensor(t *tensors.Tensor) Param {
	return Param{arr: t}
}

// IsArray returns whether the parameter is array-valued.
func (p Param) IsArray() bool { return p.arr != nil }

// paramView resolves a Param against a concrete output shape: a flat float64
// buffer plus the broadcast strides mapping output elements to it. It is
// built once per call, before any entropy is consumed.
type paramView struct {
	data    []float64
	dims    []int // Output dimensions; nil for scalar parameters.
	strides []int // Broadcast strides into data, aligned with dims.
}

// resolve builds the view. Array parameters that do not broadcast to
// outDims produce an ErrShapeMismatch named after the parameter.
func (p Param) resolve(name string, outDims []int) (paramView, error) {
	if !p.IsArray() {
		return paramView{data: []float64{p.value}}, nil
	}
	strides, err := shapes.BroadcastStrides(p.arr.Shape().Dimensions, outDims)
	if err != nil {
		return paramView{}, shapeMismatchf(name, err)
	}
	return paramView{
		data:    tensors.ConvertToFloat64(p.arr),
		dims:    outDims,
		strides: strides,
	}, nil
}

// at returns the parameter value for the given flat output index.
func (v paramView) at(flat int) float64 {
	if v.strides == nil {
		return v.data[0]
	}
	rem, off := flat, 0
	for ax := len(v.dims) - 1; ax >= 0; ax-- {
		coord := rem % v.dims[ax]
		rem /= v.dims[ax]
		off += coord * v.strides[ax]
	}
	return v.data[off]
}

// isConstant returns whether the view holds a single value for all elements.
func (v paramView) isConstant() bool { return v.strides == nil }

// validate runs check over every distinct parameter value, eagerly, and
// returns the first violation as an ErrInvalidParameter. check returns a
// non-empty constraint description to reject a value.
func (v paramView) validate(name string, check func(value float64) string) error {
	for _, value := range v.data {
		if constraint := check(value); constraint != "" {
			return invalidParamf(name, value, constraint)
		}
	}
	return nil
}

// Common domain checks shared by the distributions.

func checkFinite(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "a finite value"
	}
	return ""
}

func checkPositive(value float64) string {
	if c := checkFinite(value); c != "" {
		return c
	}
	if value <= 0 {
		return "> 0"
	}
	return ""
}

func checkNonNegative(value float64) string {
	if c := checkFinite(value); c != "" {
		return c
	}
	if value < 0 {
		return ">= 0"
	}
	return ""
}

func checkProbability(value float64) string {
	if c := checkFinite(value); c != "" {
		return c
	}
	if value < 0 || value > 1 {
		return "0 <= p <= 1"
	}
	return ""
}

func checkCount(value float64) string {
	if c := checkNonNegative(value); c != "" {
		return c
	}
	if value != math.Trunc(value) {
		return "an integer"
	}
	return ""
}
