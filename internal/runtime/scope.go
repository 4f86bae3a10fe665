// Package runtime implements the Scope Manager (spec §3.2, §3.3, §4.3):
// a stack of named Variable bindings with parent-ward lookup, grounded on
// the teacher's internal/interp/runtime.Environment. Arduino C++ is
// case-sensitive (unlike the teacher's DWScript dialect), so bindings use
// a plain map rather than the teacher's case-folding ident.Map.
package runtime

import "github.com/ardsim/engine/internal/value"

// Variable is one named binding (spec §3.2).
type Variable struct {
	Value        *value.Value
	Type         string // declared base type, e.g. "int", "String", "int[]"
	TemplateType string // e.g. "vector<int>"; empty if not templated
	IsConst      bool
	IsReference  bool
	IsStatic     bool
	IsGlobal     bool

	refTarget *Variable // set when IsReference: indirection target
}

// Read returns the effective value, following a reference indirection.
func (v *Variable) Read() *value.Value {
	if v.IsReference && v.refTarget != nil {
		return v.refTarget.Read()
	}
	return v.Value
}

// Write stores val, following a reference indirection so assignment
// through a reference variable mutates the referent (spec §3.2).
func (v *Variable) Write(val *value.Value) {
	if v.IsReference && v.refTarget != nil {
		v.refTarget.Write(val)
		return
	}
	v.Value = val
}

// NewReference returns a Variable that forwards reads/writes to target.
func NewReference(name, typ string, target *Variable) *Variable {
	return &Variable{Type: typ, IsReference: true, refTarget: target}
}

// Scope holds a mapping from name to Variable (spec §3.3). Scopes form a
// stack via Parent; lookup walks parent-ward to the root.
type Scope struct {
	vars   map[string]*Variable
	Parent *Scope
}

// NewScope returns a root scope with no parent.
func NewScope() *Scope {
	return &Scope{vars: make(map[string]*Variable)}
}

// Push returns a new scope enclosed by s (spec §4.3 push/pop contract).
func (s *Scope) Push() *Scope {
	return &Scope{vars: make(map[string]*Variable), Parent: s}
}

// Declare binds name in the current scope. It returns false if name is
// already bound in this scope (spec §4.3: "fails if the current scope
// already binds name").
func (s *Scope) Declare(name string, v *Variable) bool {
	if _, exists := s.vars[name]; exists {
		return false
	}
	s.vars[name] = v
	return true
}

// ForceDeclare binds name in the current scope, overwriting any existing
// binding. Used for shadowing declarations where the caller has already
// checked hasInParent and wants isExtern semantics rather than a
// duplicate-declaration error (spec §4.8).
func (s *Scope) ForceDeclare(name string, v *Variable) {
	s.vars[name] = v
}

// Lookup searches the current scope, then parent-ward, for name.
func (s *Scope) Lookup(name string) (*Variable, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// LookupLocal searches only the current scope, not parents.
func (s *Scope) LookupLocal(name string) (*Variable, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// HasInParent reports whether name is bound in a strictly enclosing scope
// (spec §4.3, used to set isExtern on shadowing declarations).
func (s *Scope) HasInParent(name string) bool {
	if s.Parent == nil {
		return false
	}
	_, ok := s.Parent.Lookup(name)
	return ok
}

// Root walks up to the outermost scope.
func (s *Scope) Root() *Scope {
	cur := s
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// Snapshot returns a shallow copy of this scope's own bindings map, used by
// the function invoker's nested-call RAII guard (spec §4.6) to save and
// later restore a caller scope's contents around a nested call.
func (s *Scope) Snapshot() map[string]*Variable {
	cp := make(map[string]*Variable, len(s.vars))
	for k, v := range s.vars {
		cp[k] = v
	}
	return cp
}

// Restore replaces this scope's own bindings with a prior Snapshot.
func (s *Scope) Restore(snapshot map[string]*Variable) {
	s.vars = snapshot
}

// Range calls f for every binding in this scope only (not parents).
func (s *Scope) Range(f func(name string, v *Variable) bool) {
	for k, v := range s.vars {
		if !f(k, v) {
			return
		}
	}
}
