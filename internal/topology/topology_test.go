package topology

import "testing"

func TestBuildOutgoingAdjacency(t *testing.T) {
	b := NewBuilder(3, false)
	if err := b.AddEdge(0, 1); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if err := b.AddEdge(0, 2); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if err := b.AddEdge(1, 2); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}

	top := b.Build()
	if top.RelationshipCount() != 3 {
		t.Fatalf("RelationshipCount() = %d, want 3", top.RelationshipCount())
	}
	if got := top.Outgoing(0); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("Outgoing(0) = %v, want [1 2]", got)
	}
	if got := top.Outgoing(2); len(got) != 0 {
		t.Fatalf("Outgoing(2) = %v, want empty", got)
	}
	if top.HasIncoming() {
		t.Fatal("expected HasIncoming() = false")
	}
}

func TestBuildIncomingAdjacencyWhenRequested(t *testing.T) {
	b := NewBuilder(3, true)
	_ = b.AddEdge(0, 2)
	_ = b.AddEdge(1, 2)

	top := b.Build()
	if !top.HasIncoming() {
		t.Fatal("expected HasIncoming() = true")
	}
	got := top.Incoming(2)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("Incoming(2) = %v, want [0 1]", got)
	}
}

func TestAddEdgeRejectsOutOfRangeIds(t *testing.T) {
	b := NewBuilder(2, false)
	if err := b.AddEdge(0, 5); err == nil {
		t.Fatal("expected AddEdge to reject out-of-range target")
	}
	if err := b.AddEdge(-1, 0); err == nil {
		t.Fatal("expected AddEdge to reject negative source")
	}
}

func TestParallelEdgesRetainedByDefault(t *testing.T) {
	b := NewBuilder(2, false)
	_ = b.AddEdge(0, 1)
	_ = b.AddEdge(0, 1)

	top := b.Build()
	if got := top.Outgoing(0); len(got) != 2 {
		t.Fatalf("Outgoing(0) = %v, want 2 parallel edges retained", got)
	}
}

func TestIncomingPanicsWhenNotBuilt(t *testing.T) {
	b := NewBuilder(2, false)
	top := b.Build()
	defer func() {
		if recover() == nil {
			t.Fatal("expected Incoming() to panic when incoming adjacency was not built")
		}
	}()
	top.Incoming(0)
}
