package pipeline

import (
	"context"
	"fmt"

	"github.com/graphscale/graphscale/internal/graphstore"
	apperrors "github.com/graphscale/graphscale/pkg/errors"
)

// Executor drives one Descriptor to completion over one graph store: it
// owns the descriptor, the mutable State it accumulates into, and the
// ProcedureRegistry its NodePropertySteps phase looks algorithms up in.
// It halts at PhaseTraining - training itself is a Non-goal here.
type Executor struct {
	descriptor *Descriptor
	graph      *graphstore.GraphStore
	registry   *ProcedureRegistry
	state      *State
}

func NewExecutor(descriptor *Descriptor, graph *graphstore.GraphStore, registry *ProcedureRegistry) *Executor {
	return &Executor{
		descriptor: descriptor,
		graph:      graph,
		registry:   registry,
		state:      newState(),
	}
}

func (e *Executor) Descriptor() *Descriptor { return e.descriptor }
func (e *Executor) State() *State           { return e.state }
func (e *Executor) Phase() Phase            { return e.state.Phase() }

// Run advances the executor one phase at a time until it reaches
// PhaseTraining, then returns. It is not restartable past that point:
// callers that need to retry a failed phase should build a fresh
// Executor over the same Descriptor and graph.
func (e *Executor) Run(ctx context.Context, ratios SplitRatios) error {
	for e.state.Phase() != PhaseTraining {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.runPhase(ctx, ratios); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) runPhase(ctx context.Context, ratios SplitRatios) error {
	switch e.state.Phase() {
	case PhaseNodePropertySteps:
		return e.runNodePropertySteps(ctx)
	case PhaseFeatureSteps:
		return e.runFeatureSteps()
	case PhaseDatasetSplitting:
		return e.runDatasetSplitting(ratios)
	default:
		return nil
	}
}

func (e *Executor) runNodePropertySteps(ctx context.Context) error {
	for _, pd := range e.descriptor.Properties() {
		proc, ok := e.registry.Lookup(pd.Procedure)
		if !ok {
			return apperrors.Newf(apperrors.CodeInvariantViolation,
				"pipeline %q: no procedure registered for %q", e.descriptor.Name(), pd.Procedure)
		}
		values, err := proc(ctx, e.graph, pd.Config)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeTaskError,
				fmt.Sprintf("procedure %q failed producing property %q", pd.Procedure, pd.Name), err)
		}
		e.state.setNodeProperty(pd.Name, values)
	}
	e.state.setPhase(PhaseFeatureSteps)
	return nil
}

// runFeatureSteps assembles the feature set from the computed node
// properties. The current transformation is the identity: every node
// property becomes a feature under its own name. A richer
// feature-engineering DSL (normalization, one-hot encoding, concatenation
// into dense vectors) is future work, not modeled by the descriptor yet.
func (e *Executor) runFeatureSteps() error {
	for name, values := range e.state.nodePropertiesSnapshot() {
		e.state.setFeatureValue(name, values)
	}
	e.state.setPhase(PhaseDatasetSplitting)
	return nil
}

func (e *Executor) runDatasetSplitting(ratios SplitRatios) error {
	if ratios.Train < 0 || ratios.Validation < 0 || ratios.Train+ratios.Validation > 1 {
		return apperrors.Newf(apperrors.CodeConfigError,
			"pipeline %q: invalid split ratios train=%v validation=%v", e.descriptor.Name(), ratios.Train, ratios.Validation)
	}
	e.state.setSplits(splitIndices(e.graph.NodeCount(), ratios))
	e.state.setPhase(PhaseTraining)
	return nil
}

func splitIndices(n int, ratios SplitRatios) *Splits {
	trainEnd := int(float64(n) * ratios.Train)
	valEnd := trainEnd + int(float64(n)*ratios.Validation)
	if valEnd > n {
		valEnd = n
	}

	train := make([]int, 0, trainEnd)
	val := make([]int, 0, valEnd-trainEnd)
	test := make([]int, 0, n-valEnd)
	for i := 0; i < n; i++ {
		switch {
		case i < trainEnd:
			train = append(train, i)
		case i < valEnd:
			val = append(val, i)
		default:
			test = append(test, i)
		}
	}
	return &Splits{Train: train, Validation: val, Test: test}
}
