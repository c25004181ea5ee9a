// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package random

import (
	"github.com/pkg/errors"

	"github.com/accelrand/accelrand/rng"
)

// The error taxonomy of the sampling API. Every failure returned by a State
// method wraps exactly one of these sentinels, so callers can classify with
// errors.Is; the wrapped message always names the offending parameter and
// its value.
//
// All parameter, dtype and shape validation happens before any entropy is
// consumed and before the kernel launches: a failed call leaves the
// generator counter untouched and never returns a partially filled array.
var (
	// ErrInvalidParameter flags a distribution parameter outside its valid
	// domain (negative scale, p outside [0,1], non-positive alpha, ...).
	// Out-of-domain values are never silently clamped into range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedDtype flags a requested dtype that is not one of the two
	// precisions valid for the distribution family.
	ErrUnsupportedDtype = errors.New("unsupported dtype")

	// ErrShapeMismatch flags an array-valued parameter that cannot be
	// broadcast to the requested output shape.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrSamplingFailure flags a rejection loop that exceeded its retry cap.
	// It only happens under pathological floating-point conditions, never
	// for parameters inside their documented domains.
	ErrSamplingFailure = errors.New("sampling failure")

	// ErrExhaustedStream is the bit generator's hard-cap error, re-exported
	// for convenience. See rng.State.SetMaxAdvance.
	ErrExhaustedStream = rng.ErrExhaustedStream
)

// invalidParamf builds an ErrInvalidParameter naming the parameter and value.
func invalidParamf(name string, value any, constraint string) error {
	return errors.Wrapf(ErrInvalidParameter, "%s=%v violates %s", name, value, constraint)
}

// unsupportedDTypef builds an ErrUnsupportedDtype for the given family.
func unsupportedDTypef(dtype any, family string) error {
	return errors.Wrapf(ErrUnsupportedDtype, "dtype=%v not valid for the %s family", dtype, family)
}

// shapeMismatchf builds an ErrShapeMismatch naming the parameter.
func shapeMismatchf(name string, err error) error {
	return errors.Wrapf(ErrShapeMismatch, "parameter %s: %v", name, err)
}
