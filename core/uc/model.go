// Package uc formulates unit-commitment scheduling problems as mixed-integer
// mathematical programs. A Formulator turns a fleet of thermal units, an
// optional transmission network and a load profile into a Model: a plain
// specification of variables, linear constraints and an objective that is
// handed whole to a solver engine and never mutated afterwards.
package uc

import "fmt"

// VarKind distinguishes continuous from binary decision variables.
type VarKind int

const (
	Continuous VarKind = iota
	Binary
)

// Var is a decision variable with bounds. Binary variables are bounded to
// {0,1} by kind; Hi may be +Inf for unbounded continuous variables.
type Var struct {
	Name string
	Kind VarKind
	Lo   float64
	Hi   float64
}

// Sense is the relation of a linear constraint.
type Sense int

const (
	LessEq Sense = iota
	GreaterEq
	Equal
)

func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "=="
	default:
		return "?"
	}
}

// Constraint is a sparse linear constraint sum(Coefs[v]*v) Sense RHS.
type Constraint struct {
	Name  string
	Coefs map[string]float64
	Sense Sense
	RHS   float64
}

// Objective is minimized. Quad holds coefficients on squared variables for
// the quadratic-cost formulation; linear engines reject models with a
// non-empty Quad.
type Objective struct {
	Linear map[string]float64
	Quad   map[string]float64
	Offset float64
}

// Model is an assembled optimization problem. It is built fresh on every
// (Force)Build call and treated as immutable once handed to an engine.
type Model struct {
	// ID correlates a build with its log records and solver results.
	ID string

	Vars      []Var
	Cons      []Constraint
	Objective Objective

	varIndex map[string]int
	conIndex map[string]int
}

// Var looks a variable up by name.
func (m *Model) Var(name string) (Var, bool) {
	i, ok := m.varIndex[name]
	if !ok {
		return Var{}, false
	}
	return m.Vars[i], true
}

// HasVar reports whether the model declares the named variable.
func (m *Model) HasVar(name string) bool {
	_, ok := m.varIndex[name]
	return ok
}

// Constraint looks a constraint up by name.
func (m *Model) Constraint(name string) (Constraint, bool) {
	i, ok := m.conIndex[name]
	if !ok {
		return Constraint{}, false
	}
	return m.Cons[i], true
}

// NumBinaries counts the binary variables of the model.
func (m *Model) NumBinaries() int {
	n := 0
	for _, v := range m.Vars {
		if v.Kind == Binary {
			n++
		}
	}
	return n
}

// Quadratic reports whether the objective carries quadratic terms.
func (m *Model) Quadratic() bool { return len(m.Objective.Quad) > 0 }

func (m *Model) addVar(v Var) error {
	if _, dup := m.varIndex[v.Name]; dup {
		return fmt.Errorf("duplicate variable %q", v.Name)
	}
	m.varIndex[v.Name] = len(m.Vars)
	m.Vars = append(m.Vars, v)
	return nil
}

func (m *Model) addCon(c Constraint) error {
	if _, dup := m.conIndex[c.Name]; dup {
		return fmt.Errorf("duplicate constraint %q", c.Name)
	}
	for v := range c.Coefs {
		if _, ok := m.varIndex[v]; !ok {
			return fmt.Errorf("constraint %q references undeclared variable %q", c.Name, v)
		}
	}
	m.conIndex[c.Name] = len(m.Cons)
	m.Cons = append(m.Cons, c)
	return nil
}
