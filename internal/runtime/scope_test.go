package runtime

import (
	"testing"

	"github.com/ardsim/engine/internal/value"
)

func TestDeclareRejectsDuplicateInSameScope(t *testing.T) {
	s := NewScope()
	if !s.Declare("x", &Variable{Value: value.Int32(1)}) {
		t.Fatal("first Declare should succeed")
	}
	if s.Declare("x", &Variable{Value: value.Int32(2)}) {
		t.Fatal("second Declare of same name in same scope should fail")
	}
}

func TestLookupWalksParentChain(t *testing.T) {
	root := NewScope()
	root.Declare("g", &Variable{Value: value.Int32(1)})
	child := root.Push()
	grandchild := child.Push()

	v, ok := grandchild.Lookup("g")
	if !ok {
		t.Fatal("Lookup should find a binding in the root scope")
	}
	if v.Read().ToInt32() != 1 {
		t.Fatalf("got %v, want 1", v.Read())
	}

	if _, ok := grandchild.LookupLocal("g"); ok {
		t.Fatal("LookupLocal should not see a parent binding")
	}
}

func TestCaseSensitive(t *testing.T) {
	s := NewScope()
	s.Declare("Foo", &Variable{Value: value.Int32(1)})
	if _, ok := s.Lookup("foo"); ok {
		t.Fatal("scope lookup must be case-sensitive for the Arduino dialect")
	}
}

func TestHasInParent(t *testing.T) {
	root := NewScope()
	root.Declare("g", &Variable{Value: value.Int32(1)})
	child := root.Push()

	if child.HasInParent("g") != true {
		t.Error("HasInParent should see the root binding from a child scope")
	}
	if root.HasInParent("g") != false {
		t.Error("root has no parent, HasInParent should be false")
	}

	child.Declare("g", &Variable{Value: value.Int32(2)})
	if !child.HasInParent("g") {
		t.Error("shadowing a name does not change whether it exists in a parent")
	}
}

func TestReferenceWriteGoesThrough(t *testing.T) {
	root := NewScope()
	target := &Variable{Value: value.Int32(1)}
	root.ForceDeclare("x", target)

	ref := NewReference("y", "int", target)
	root.ForceDeclare("y", ref)

	ref.Write(value.Int32(42))
	if target.Read().ToInt32() != 42 {
		t.Fatal("writing through a reference variable should mutate its target")
	}
}

func TestSnapshotAndRestore(t *testing.T) {
	s := NewScope()
	s.Declare("a", &Variable{Value: value.Int32(1)})
	snap := s.Snapshot()

	s.Declare("b", &Variable{Value: value.Int32(2)})
	if _, ok := s.LookupLocal("b"); !ok {
		t.Fatal("b should be declared before restore")
	}

	s.Restore(snap)
	if _, ok := s.LookupLocal("b"); ok {
		t.Fatal("Restore should roll back declarations made after the snapshot")
	}
	if _, ok := s.LookupLocal("a"); !ok {
		t.Fatal("Restore should keep bindings present at snapshot time")
	}
}

func TestForceDeclareOverwrites(t *testing.T) {
	s := NewScope()
	s.Declare("x", &Variable{Value: value.Int32(1)})
	s.ForceDeclare("x", &Variable{Value: value.Int32(2)})

	v, _ := s.LookupLocal("x")
	if v.Read().ToInt32() != 2 {
		t.Fatal("ForceDeclare should overwrite an existing binding")
	}
}
