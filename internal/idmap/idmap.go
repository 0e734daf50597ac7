// Package idmap implements §4.5's id map: the bijection between original
// node ids (external, arbitrary u64) and mapped node ids (dense, 0..N),
// grounded on the teacher's IndexedObjectStore (objToIdx map + idxToObj
// dense slice), generalized with a per-mapped-id label set and an
// explicit build-time determinism choice.
package idmap

import (
	"fmt"
	"sort"
	"sync"
)

// IdMap is immutable once built: forward lookup by hashed original id,
// reverse lookup by dense array index, both O(1) amortized.
type IdMap struct {
	toMapped   map[uint64]int
	toOriginal []uint64
	labels     [][]string
}

// ToMapped looks up the mapped id for an original id.
func (m *IdMap) ToMapped(original uint64) (int, bool) {
	mapped, ok := m.toMapped[original]
	return mapped, ok
}

// ToOriginal returns the original id for a mapped id. Panics if mapped is
// out of range: every mapped id an algorithm holds was handed out by this
// same id map, so an out-of-range value is a caller invariant violation,
// not a recoverable lookup miss.
func (m *IdMap) ToOriginal(mapped int) uint64 {
	if mapped < 0 || mapped >= len(m.toOriginal) {
		panic(fmt.Sprintf("idmap.ToOriginal: mapped id %d out of range [0, %d)", mapped, len(m.toOriginal)))
	}
	return m.toOriginal[mapped]
}

// Labels returns the label set assigned to mapped, sorted for stable
// iteration.
func (m *IdMap) Labels(mapped int) []string {
	if mapped < 0 || mapped >= len(m.labels) {
		panic(fmt.Sprintf("idmap.Labels: mapped id %d out of range [0, %d)", mapped, len(m.labels)))
	}
	return m.labels[mapped]
}

// NodeCount returns the number of mapped ids, i.e. 0..NodeCount() is the
// mapped id space.
func (m *IdMap) NodeCount() int { return len(m.toOriginal) }

// Builder accumulates (original_id, labels) pairs from many concurrent
// import tasks before a single seal-time Build, mirroring the teacher's
// AddObject/Finalize split.
type Builder struct {
	mu     sync.Mutex
	seen   map[uint64]struct{}
	order  []uint64
	labels map[uint64]map[string]struct{}
}

func NewBuilder(estimatedNodes int) *Builder {
	if estimatedNodes < 0 {
		estimatedNodes = 0
	}
	return &Builder{
		seen:   make(map[uint64]struct{}, estimatedNodes),
		order:  make([]uint64, 0, estimatedNodes),
		labels: make(map[uint64]map[string]struct{}, estimatedNodes),
	}
}

// Add records original as seen (first-seen order is the append order,
// under the builder's mutex) and unions labels into its label set. Safe
// to call concurrently from many import task goroutines.
func (b *Builder) Add(original uint64, labels []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.seen[original]; !ok {
		b.seen[original] = struct{}{}
		b.order = append(b.order, original)
		b.labels[original] = make(map[string]struct{}, len(labels))
	}
	set := b.labels[original]
	for _, l := range labels {
		set[l] = struct{}{}
	}
}

// Build seals the builder into an immutable IdMap. When deterministic is
// false, mapped ids are assigned in first-seen order, which is only
// reproducible across runs at concurrency 1. When true, original ids are
// sorted into canonical (ascending) order first, trading an O(N log N)
// sort for run-to-run reproducibility regardless of import concurrency.
func (b *Builder) Build(deterministic bool) *IdMap {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids := make([]uint64, len(b.order))
	copy(ids, b.order)
	if deterministic {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}

	toMapped := make(map[uint64]int, len(ids))
	toOriginal := make([]uint64, len(ids))
	labelLists := make([][]string, len(ids))
	for mapped, original := range ids {
		toMapped[original] = mapped
		toOriginal[mapped] = original

		set := b.labels[original]
		list := make([]string, 0, len(set))
		for l := range set {
			list = append(list, l)
		}
		sort.Strings(list)
		labelLists[mapped] = list
	}

	return &IdMap{toMapped: toMapped, toOriginal: toOriginal, labels: labelLists}
}
