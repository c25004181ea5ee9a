// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package random

import (
	"sync"

	"k8s.io/klog/v2"
)

// The process-wide default State: a zero-configuration entry point, lazily
// constructed (time-seeded) on first use. It follows the same exclusivity
// discipline as any other State instance.

var (
	defaultMu    sync.Mutex
	defaultState *State
)

// Default returns the process-wide default State, creating it time-seeded on
// first use.
func Default() *State {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultState == nil {
		defaultState = NewFromTime()
		klog.V(1).Infof("random: initialized process-wide default State %s", defaultState.id)
	}
	return defaultState
}

// SetDefault replaces the process-wide default State and returns the
// previous one (possibly nil). Tests inject a freshly seeded instance here
// to avoid cross-test seed contamination.
func SetDefault(s *State) (previous *State) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	previous = defaultState
	defaultState = s
	return previous
}
