// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"github.com/pkg/errors"
)

// BroadcastableTo reports whether an array with dimensions `from` can be
// broadcast to the target dimensions `to`, using the usual trailing-axes
// alignment rule: axes are matched from the last one backwards, and each
// pair must either be equal or the `from` side must be 1. `from` may have
// lower rank than `to`, never higher.
func BroadcastableTo(from, to []int) bool {
	if len(from) > len(to) {
		return false
	}
	offset := len(to) - len(from)
	for ii, dim := range from {
		if dim != 1 && dim != to[offset+ii] {
			return false
		}
	}
	return true
}

// BroadcastStrides returns the element strides that map a flat index over the
// target dimensions `to` into a flat index over `from`, where `from` is
// broadcast against `to`. Broadcast axes (and axes missing on the `from`
// side) get stride 0.
//
// The returned slice has len(to) entries, outermost axis first.
func BroadcastStrides(from, to []int) ([]int, error) {
	if !BroadcastableTo(from, to) {
		return nil, errors.Errorf("dimensions %s cannot be broadcast to %s",
			dimsToString(from), dimsToString(to))
	}
	strides := make([]int, len(to))
	offset := len(to) - len(from)
	stride := 1
	for ii := len(from) - 1; ii >= 0; ii-- {
		if from[ii] == 1 && to[offset+ii] != 1 {
			strides[offset+ii] = 0
		} else {
			strides[offset+ii] = stride
		}
		stride *= from[ii]
	}
	return strides, nil
}
