package symbolic

import (
	"fmt"
	"strings"
)

type Assignment struct {
	LHS Symbol
	RHS Expr
}

func (a Assignment) String() string { return fmt.Sprintf("%s := %s", a.LHS, a.RHS) }

// AssignmentCollection is an ordered equation system. Subexpressions are
// evaluated in order before the main assignments and may refer to earlier ones.
type AssignmentCollection struct {
	MainAssignments []Assignment
	Subexpressions  []Assignment
}

func (ac AssignmentCollection) BoundSymbols() (syms []Symbol) {
	set := make(map[Symbol]struct{})
	for _, a := range ac.Subexpressions {
		set[a.LHS] = struct{}{}
	}
	for _, a := range ac.MainAssignments {
		set[a.LHS] = struct{}{}
	}
	return sortedSymbols(set)
}

// FreeSymbols are the right hand side symbols not defined by an earlier
// assignment. Subexpressions come first, then main assignments in order.
func (ac AssignmentCollection) FreeSymbols() (syms []Symbol) {
	var (
		bound = make(map[Symbol]struct{})
		set   = make(map[Symbol]struct{})
	)
	collect := func(a Assignment) {
		for _, s := range a.RHS.FreeSymbols() {
			if _, ok := bound[s]; !ok {
				set[s] = struct{}{}
			}
		}
	}
	for _, a := range ac.Subexpressions {
		collect(a)
		bound[a.LHS] = struct{}{}
	}
	for _, a := range ac.MainAssignments {
		collect(a)
		bound[a.LHS] = struct{}{}
	}
	return sortedSymbols(set)
}

func (ac AssignmentCollection) Subs(values map[Symbol]Expr) (R AssignmentCollection) {
	R.Subexpressions = make([]Assignment, len(ac.Subexpressions))
	for i, a := range ac.Subexpressions {
		R.Subexpressions[i] = Assignment{a.LHS, a.RHS.Subs(values)}
	}
	R.MainAssignments = make([]Assignment, len(ac.MainAssignments))
	for i, a := range ac.MainAssignments {
		R.MainAssignments[i] = Assignment{a.LHS, a.RHS.Subs(values)}
	}
	return
}

// InsertSubexpressions substitutes every subexpression into the main
// assignments and returns a collection without subexpressions.
func (ac AssignmentCollection) InsertSubexpressions() (R AssignmentCollection) {
	values := make(map[Symbol]Expr, len(ac.Subexpressions))
	for _, a := range ac.Subexpressions {
		values[a.LHS] = a.RHS.Subs(values)
	}
	R.MainAssignments = make([]Assignment, len(ac.MainAssignments))
	for i, a := range ac.MainAssignments {
		R.MainAssignments[i] = Assignment{a.LHS, a.RHS.Subs(values)}
	}
	return
}

// MainAssignmentMap indexes the main right hand sides by their left hand side.
func (ac AssignmentCollection) MainAssignmentMap() (m map[Symbol]Expr) {
	m = make(map[Symbol]Expr, len(ac.MainAssignments))
	for _, a := range ac.MainAssignments {
		m[a.LHS] = a.RHS
	}
	return
}

// Evaluate runs the collection numerically. The returned map holds every
// subexpression and main assignment value plus the inputs.
func (ac AssignmentCollection) Evaluate(inputs map[Symbol]float64) (values map[Symbol]float64, err error) {
	values = make(map[Symbol]float64, len(inputs)+len(ac.Subexpressions)+len(ac.MainAssignments))
	for s, v := range inputs {
		values[s] = v
	}
	for _, list := range [][]Assignment{ac.Subexpressions, ac.MainAssignments} {
		for _, a := range list {
			var v float64
			if v, err = a.RHS.Eval(values); err != nil {
				return nil, fmt.Errorf("evaluating %s: %w", a.LHS, err)
			}
			values[a.LHS] = v
		}
	}
	return
}

func (ac AssignmentCollection) String() string {
	var sb strings.Builder
	if len(ac.Subexpressions) != 0 {
		sb.WriteString("Subexpressions:\n")
		for _, a := range ac.Subexpressions {
			sb.WriteString("\t" + a.String() + "\n")
		}
	}
	sb.WriteString("Main Assignments:\n")
	for _, a := range ac.MainAssignments {
		sb.WriteString("\t" + a.String() + "\n")
	}
	return sb.String()
}
