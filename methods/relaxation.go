package methods

import (
	"fmt"

	"github.com/notargets/golbm/symbolic"
)

// RelaxationInfo is the equilibrium value and relaxation rate of one moment.
type RelaxationInfo struct {
	EquilibriumValue symbolic.Expr
	RelaxationRate   symbolic.Expr
}

type RelaxationEntry struct {
	Moment symbolic.Expr
	RelaxationInfo
}

// MomentRate assigns a relaxation rate to a moment. Ordered lists of these
// fix the row order of the moment matrix.
type MomentRate struct {
	Moment, Rate symbolic.Expr
}

// RelaxationTable is an insertion ordered moment to RelaxationInfo map.
type RelaxationTable struct {
	entries []RelaxationEntry
	index   map[string]int
}

func NewRelaxationTable(entries []RelaxationEntry) (rt *RelaxationTable, err error) {
	rt = &RelaxationTable{
		entries: make([]RelaxationEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		key := e.Moment.String()
		if _, dup := rt.index[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMoment, key)
		}
		rt.index[key] = len(rt.entries)
		rt.entries = append(rt.entries, e)
	}
	return
}

func (rt *RelaxationTable) Len() int { return len(rt.entries) }

func (rt *RelaxationTable) Get(moment symbolic.Expr) (info RelaxationInfo, ok bool) {
	var i int
	if i, ok = rt.index[moment.String()]; ok {
		info = rt.entries[i].RelaxationInfo
	}
	return
}

func (rt *RelaxationTable) Entries() []RelaxationEntry {
	return append([]RelaxationEntry{}, rt.entries...)
}

func (rt *RelaxationTable) setRate(moment symbolic.Expr, rate symbolic.Expr) bool {
	i, ok := rt.index[moment.String()]
	if ok {
		rt.entries[i].RelaxationRate = rate
	}
	return ok
}

func checkUniqueMoments(ms []symbolic.Expr) error {
	seen := make(map[string]bool, len(ms))
	for _, m := range ms {
		key := m.String()
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateMoment, key)
		}
		seen[key] = true
	}
	return nil
}
