// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package random

import (
	"math"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"

	"github.com/accelrand/accelrand/rng"
	"github.com/accelrand/accelrand/tensors"
)

const (
	// binomialInversionCutoff: below n*min(p,1-p) of this, sequential CDF
	// inversion beats the rejection setup cost; above it, BTPE keeps the
	// expected number of draws O(1) independent of n.
	binomialInversionCutoff = 30.0

	binomialMaxRetries = 1024
)

// binomialSample draws binomial(n, p) for one element. p == 0 and p == 1
// short-circuit to 0 and n without touching the general algorithms.
func binomialSample(st *rng.Stream, n int64, p float64) (int64, error) {
	if n == 0 || p == 0 {
		return 0, nil
	}
	if p == 1 {
		return n, nil
	}
	r := math.Min(p, 1-p)
	var k int64
	var err error
	if float64(n)*r <= binomialInversionCutoff {
		k, err = binomialInversion(st, n, r)
	} else {
		k, err = binomialBTPE(st, n, r)
	}
	if err != nil {
		return 0, err
	}
	if p > 0.5 {
		k = n - k
	}
	return k, nil
}

// binomialInversion accumulates the CDF of binomial(n, p) term by term until
// it passes a uniform draw. Only used for small n*p, where the walk is
// short. p must already be <= 0.5.
func binomialInversion(st *rng.Stream, n int64, p float64) (int64, error) {
	q := 1.0 - p
	qn := math.Exp(float64(n) * math.Log(q))
	np := float64(n) * p
	bound := int64(math.Min(float64(n), np+10.0*math.Sqrt(np*q+1)))

	for retry := 0; retry < binomialMaxRetries; retry++ {
		var x int64
		px := qn
		u := unitFloat64(st)
		for u > px {
			x++
			if x > bound {
				// Walked past the numerically meaningful mass; restart.
				x = -1
				break
			}
			u -= px
			px = (float64(n-x+1) * p * px) / (float64(x) * q)
		}
		if x >= 0 {
			return x, nil
		}
	}
	return 0, errors.Wrapf(ErrSamplingFailure,
		"binomial inversion exceeded %d restarts for n=%d p=%v", binomialMaxRetries, n, p)
}

// binomialBTPE implements the BTPE rejection sampler (Kachitvichyanukul &
// Schmeiser, 1988): a triangle/parallelogram/exponential-tails envelope over
// the binomial histogram, with a squeeze test and a Stirling-series final
// test. p must already be <= 0.5 and n*p above the inversion cutoff.
func binomialBTPE(st *rng.Stream, n int64, p float64) (int64, error) {
	r := p
	q := 1.0 - r
	fm := float64(n)*r + r
	m := int64(fm)
	nrq := float64(n) * r * q

	// Envelope geometry.
	p1 := math.Floor(2.195*math.Sqrt(nrq)-4.6*q) + 0.5
	xm := float64(m) + 0.5
	xl := xm - p1
	xr := xm + p1
	c := 0.134 + 20.5/(15.3+float64(m))
	a := (fm - xl) / (fm - xl*r)
	lamL := a * (1.0 + a/2.0)
	a = (xr - fm) / (xr * q)
	lamR := a * (1.0 + a/2.0)
	p2 := p1 * (1.0 + 2.0*c)
	p3 := p2 + c/lamL
	p4 := p3 + c/lamR

	for retry := 0; retry < binomialMaxRetries; retry++ {
		u := unitFloat64(st) * p4
		v := unitFloat64(st)
		var y int64

		switch {
		case u <= p1:
			// Triangular central region: accept immediately.
			y = int64(math.Floor(xm - p1*v + u))
			return y, nil

		case u <= p2:
			// Parallelogram.
			x := xl + (u-p1)/c
			v = v*c + 1.0 - math.Abs(float64(m)-x+0.5)/p1
			if v > 1.0 {
				continue
			}
			y = int64(math.Floor(x))

		case u <= p3:
			// Left exponential tail.
			y = int64(math.Floor(xl + math.Log(v)/lamL))
			if y < 0 {
				continue
			}
			v = v * (u - p2) * lamL

		default:
			// Right exponential tail.
			y = int64(math.Floor(xr - math.Log(v)/lamR))
			if y > n {
				continue
			}
			v = v * (u - p3) * lamR
		}

		// Acceptance test for the non-triangular regions.
		k := y - m
		if k < 0 {
			k = -k
		}
		if float64(k) <= 20 || float64(k) >= nrq/2.0-1 {
			// Evaluate f(y)/f(m) directly by the recurrence.
			s := r / q
			aa := s * float64(n+1)
			f := 1.0
			if m < y {
				for i := m + 1; i <= y; i++ {
					f *= aa/float64(i) - s
				}
			} else if m > y {
				for i := y + 1; i <= m; i++ {
					f /= aa/float64(i) - s
				}
			}
			if v <= f {
				return y, nil
			}
			continue
		}

		// Squeeze on log(v) before the expensive Stirling test.
		kf := float64(k)
		rho := (kf / nrq) * ((kf*(kf/3.0+0.625)+1.0/6.0)/nrq + 0.5)
		t := -kf * kf / (2.0 * nrq)
		logV := math.Log(v)
		if logV < t-rho {
			return y, nil
		}
		if logV > t+rho {
			continue
		}

		// Final test with Stirling-series corrections.
		x1 := float64(y + 1)
		f1 := float64(m + 1)
		z := float64(n + 1 - m)
		w := float64(n - y + 1)
		x2 := x1 * x1
		f2 := f1 * f1
		z2 := z * z
		w2 := w * w
		if logV <= xm*math.Log(f1/x1)+
			(float64(n-m)+0.5)*math.Log(z/w)+
			float64(y-m)*math.Log(w*r/(x1*q))+
			stirlingCorrection(f1, f2)+
			stirlingCorrection(z, z2)+
			stirlingCorrection(x1, x2)+
			stirlingCorrection(w, w2) {
			return y, nil
		}
	}
	return 0, errors.Wrapf(ErrSamplingFailure,
		"binomial BTPE exceeded %d retries for n=%d p=%v", binomialMaxRetries, n, p)
}

// stirlingCorrection evaluates the truncated Stirling series
// 1/(12f) - 1/(360f^3) + 1/(1260f^5) - 1/(1680f^7) + 1/(1188f^9)
// over the common denominator 166320.
func stirlingCorrection(f, f2 float64) float64 {
	return (13860.0 - (462.0-(132.0-(99.0-140.0/f2)/f2)/f2)/f2) / f / 166320.0
}

// Binomial samples the number of successes out of n Bernoulli trials of
// probability p (n >= 0 integer, 0 <= p <= 1, scalar or broadcastable
// arrays).
//
// The output dtype must be Int32 or Int64 (InvalidDType selects Int64).
// p == 0 always yields 0 and p == 1 always yields n, bypassing the general
// samplers.
func (s *State) Binomial(n, p Param, size []int, dtype dtypes.DType) (*tensors.Tensor, error) {
	dims, err := resolveDims(size)
	if err != nil {
		return nil, err
	}
	dtype, err = intDType(dtype, "binomial")
	if err != nil {
		return nil, err
	}
	nV, err := n.resolve("n", dims)
	if err != nil {
		return nil, err
	}
	pV, err := p.resolve("p", dims)
	if err != nil {
		return nil, err
	}
	if err = nV.validate("n", checkCount); err != nil {
		return nil, err
	}
	// Counts beyond 2^53 are no longer exact in the float64 parameter path
	// and would overflow the int64 conversion further down; Int32 outputs
	// are capped tighter.
	maxN := float64(int64(1) << 53)
	if dtype == dtypes.Int32 {
		maxN = math.MaxInt32
	}
	if err = nV.validate("n", func(value float64) string {
		if value > maxN {
			return "a count exactly representable in the output dtype"
		}
		return ""
	}); err != nil {
		return nil, err
	}
	if err = pV.validate("p", checkProbability); err != nil {
		return nil, err
	}
	return s.sampleInt(dims, dtype, func(st *rng.Stream, i int) (int64, error) {
		return binomialSample(st, int64(nV.at(i)), pV.at(i))
	})
}
