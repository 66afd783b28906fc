package eval

import (
	"qkangaroo/internal/identitydb"
	"qkangaroo/internal/symtab"
	"qkangaroo/internal/value"
)

// DefaultIterationLimit is the safety ceiling spec §4.12 requires on
// add/mul/seq, while, and q-Zeilberger's order search.
const DefaultIterationLimit = 1_000_000

// Environment is the evaluator's session state (spec §9: "owned by
// Environment, which is threaded through every call" -- no true
// process-wide mutable state). It owns the symbol registry, the
// variable table, the default truncation order new series are built
// at, the loaded identity database, and the last displayed result for
// `ditto`.
type Environment struct {
	Registry       *symtab.Registry
	Variable       symtab.ID // the pre-interned "q" (spec §6: preinterned on session start)
	Vars           map[string]value.Value
	DefaultOrder   int
	IterationLimit int
	Identities     *identitydb.DB
	LastResult     value.Value
}

// New returns a fresh session environment with "q" pre-interned and an
// empty (but present) identity database, per spec §6's init contract.
func New(defaultOrder int) *Environment {
	reg := symtab.New()
	return &Environment{
		Registry:       reg,
		Variable:       reg.MustIntern("q"),
		Vars:           make(map[string]value.Value),
		DefaultOrder:   defaultOrder,
		IterationLimit: DefaultIterationLimit,
		Identities:     identitydb.New(),
	}
}

// Lookup implements the "undefined name evaluates to Symbol(name)"
// fallback rule (spec §4.12/§8).
func (e *Environment) Lookup(name string) value.Value {
	if v, ok := e.Vars[name]; ok {
		return v
	}
	return value.Symbol(name)
}

// Assign implements `x := expr`.
func (e *Environment) Assign(name string, v value.Value) {
	e.Vars[name] = v
}

// Unassign removes a binding, restoring the symbol-fallback behaviour.
func (e *Environment) Unassign(name string) {
	delete(e.Vars, name)
}

// Restart clears all variable bindings but keeps the symbol registry
// and identity database (spec §6's `restart` command).
func (e *Environment) Restart() {
	e.Vars = make(map[string]value.Value)
	e.LastResult = value.Value{}
}
