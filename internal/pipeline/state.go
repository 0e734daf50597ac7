package pipeline

import (
	"sync"

	"github.com/graphscale/graphscale/pkg/property"
)

// Splits holds the dataset-splitting phase's output: disjoint node-index
// sets for training, validation, and test. Indices are positions into the
// graph store's dense id space (0..NodeCount), not original node ids.
type Splits struct {
	Train      []int
	Validation []int
	Test       []int
}

// SplitRatios configures the DatasetSplitting phase. Ratios need not sum
// to exactly 1.0; any remainder after Train and Validation falls to Test.
type SplitRatios struct {
	Train      float64
	Validation float64
}

// State is the pipeline executor's mutable working state: the
// intermediate property and feature values accumulated so far, the
// dataset split once computed, the current phase, and a step counter
// incremented once per stored node property, stored feature value, and
// stored dataset split (phase transitions do not count). Every
// field is guarded by mu so State can be inspected (e.g. for a progress
// task's status) while the executor is still running on another
// goroutine.
type State struct {
	mu sync.RWMutex

	nodeProperties map[string]property.Values
	featureValues  map[string]property.Values
	splits         *Splits
	phase          Phase
	step           int
}

func newState() *State {
	return &State{
		nodeProperties: make(map[string]property.Values),
		featureValues:  make(map[string]property.Values),
		phase:          PhaseNodePropertySteps,
	}
}

func (s *State) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *State) Step() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.step
}

func (s *State) NodeProperty(name string) (property.Values, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.nodeProperties[name]
	return v, ok
}

func (s *State) FeatureValue(name string) (property.Values, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.featureValues[name]
	return v, ok
}

// Splits returns the dataset split, or nil before DatasetSplitting runs.
func (s *State) Splits() *Splits {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.splits
}

func (s *State) setNodeProperty(name string, values property.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodeProperties[name] = values
	s.step++
}

func (s *State) nodePropertiesSnapshot() map[string]property.Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]property.Values, len(s.nodeProperties))
	for k, v := range s.nodeProperties {
		out[k] = v
	}
	return out
}

func (s *State) setFeatureValue(name string, values property.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.featureValues[name] = values
	s.step++
}

func (s *State) setSplits(splits *Splits) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.splits = splits
	s.step++
}

func (s *State) setPhase(phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = phase
}
