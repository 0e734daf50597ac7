package progress

import "testing"

func TestRegistryRegisterAndLookup(t *testing.T) {
	store := NewMemoryStore()
	reg := NewRegistry("alice", "import-1", store)

	task := NewTask("import-1")
	reg.Register(task)

	got, ok := reg.Lookup()
	if !ok || got != task {
		t.Fatalf("Lookup() = %v, %v, want original task, true", got, ok)
	}
}

func TestRegistryRelease(t *testing.T) {
	store := NewMemoryStore()
	reg := NewRegistry("alice", "import-1", store)
	reg.Register(NewTask("import-1"))
	reg.Release()

	if _, ok := reg.Lookup(); ok {
		t.Fatal("Lookup() after Release() should report not found")
	}
}

func TestRegistryWithJobIDClonesSessionOverSameStore(t *testing.T) {
	store := NewMemoryStore()
	reg := NewRegistry("alice", "import-1", store)
	reg.Register(NewTask("import-1"))

	reg2 := reg.WithJobID("import-2")
	if reg2.Username() != "alice" {
		t.Fatalf("WithJobID() changed username to %q, want alice", reg2.Username())
	}
	reg2.Register(NewTask("import-2"))

	if _, ok := reg.Lookup(); !ok {
		t.Fatal("original registry's task should be unaffected by the clone")
	}
	if _, ok := reg2.Lookup(); !ok {
		t.Fatal("cloned registry should see its own registered task")
	}
}
