package evaluator

import "github.com/go-sass/sassc/internal/value"

// scope is one lexical level of the variable/function/mixin environment:
// a plain rule body, a function/mixin call frame, or a control-flow block.
// Lookup walks outward to the enclosing scope, the same chain-of-maps
// shape as a typical interpreter's environment, with the module's
// top-level scope as the root rather than a global singleton — so two
// modules loaded in the same compilation never see each other's locals
// without going through an explicit namespace.
type scope struct {
	parent    *scope
	variables map[string]value.Value
	functions map[string]value.Value
	mixins    map[string]value.Value
	// isCallFrame is not set or consulted anywhere: call frames are plain
	// scopes whose parent is the callee's closure scope.
	isCallFrame bool
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, variables: map[string]value.Value{}, functions: map[string]value.Value{}, mixins: map[string]value.Value{}}
}

func (s *scope) lookupVariable(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.variables[name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

func (s *scope) lookupFunction(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.functions[name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

func (s *scope) lookupMixin(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.mixins[name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// setVariable assigns name in the innermost scope that already declares it
// (Sass variable assignment is mutation of the nearest existing binding,
// not always a fresh declaration), or in s itself if no enclosing scope
// has it yet.
func (s *scope) setVariable(name string, v value.Value) {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.variables[name]; ok {
			cur.variables[name] = v
			return
		}
	}
	s.variables[name] = v
}

// setGlobal implements "!global": the binding is written to the module's
// top-level scope, but only if it already exists there — a "!global"
// assignment can never introduce a new global, it can only mutate one
// that an unqualified top-level "$name: value" already declared.
func (s *scope) setGlobal(name string, v value.Value) bool {
	root := s
	for root.parent != nil {
		root = root.parent
	}
	if _, ok := root.variables[name]; !ok {
		return false
	}
	root.variables[name] = v
	return true
}

func (s *scope) declareLocal(name string, v value.Value) {
	s.variables[name] = v
}
