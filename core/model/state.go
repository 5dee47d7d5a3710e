// Package model provides the shared estimator state management composed
// into the regression fitters.
//
// Every fitter carries a StateManager instead of ad-hoc booleans so that
// fitted-state checks behave identically across models:
//
//	type OLS struct {
//		state *model.StateManager
//		...
//	}
//
//	func (m *OLS) Fit(...) error {
//		...
//		m.state.SetFitted()
//		m.state.SetDimensions(nFeatures, nSamples)
//		return nil
//	}
package model

import "sync"

// StateManager tracks whether an estimator has been fitted and the
// dimensions of its training data. Safe for concurrent reads.
type StateManager struct {
	mu        sync.RWMutex
	fitted    bool
	nFeatures int
	nSamples  int
}

// NewStateManager returns an unfitted state manager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted reports whether the estimator has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the estimator as fitted. Called by Fit implementations
// after successful training.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
}

// Reset returns the estimator to the unfitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// SetDimensions records the training data shape.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Dimensions returns the recorded (nFeatures, nSamples).
func (s *StateManager) Dimensions() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}
