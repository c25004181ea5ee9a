// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

// Package random draws pseudorandom arrays from well-known probability
// distributions -- uniform, normal, lognormal, gumbel, laplace, gamma, beta,
// binomial and dirichlet -- filling device-resident tensors in parallel.
//
// The entry point is State, which owns a counter-based Philox bit generator
// (package rng) and exposes one method per distribution:
//
//	rs := random.New(42)
//	normals, err := rs.StandardNormal([]int{1000}, dtypes.Float64)
//	probs, err := rs.Dirichlet([]float64{1, 1, 1}, []int{100}, dtypes.Float32)
//
// Passing a nil size produces a scalar (rank-0) tensor; passing
// dtypes.InvalidDType selects the family's default precision (Float64 for
// the float families, Int64 for binomial). Distribution parameters are
// scalars (random.Const) or element-wise arrays (random.FromTensor)
// broadcast against the output shape.
//
// Every output element maps deterministically to its own substream of the
// generator, so elements are sampled independently in parallel and a fixed
// seed reproduces the same values for the same requested shapes. The
// counter advance per call is exactly one unit per output element, even for
// the rejection samplers that consume a variable number of draws inside an
// element's substream.
//
// For quick, zero-configuration use there is a process-wide default state:
//
//	u, err := random.Default().Uniform(random.Const(0), random.Const(1), nil, 0)
//
// Errors follow a small taxonomy (ErrInvalidParameter, ErrUnsupportedDtype,
// ErrShapeMismatch, ErrSamplingFailure, ErrExhaustedStream) and are all
// detected before any entropy is consumed, except ErrSamplingFailure which
// aborts the call without returning a partially filled array.
package random
