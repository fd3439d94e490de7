package stencils

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Direction is one discrete lattice velocity.
type Direction []int

// Stencil is an ordered set of lattice velocities; index 0 is the rest velocity.
type Stencil []Direction

// Family enumerates the stencils with tabulated weights and moment bases.
type Family uint8

const (
	Unknown Family = iota
	D2Q9
	D3Q15
	D3Q19
	D3Q27
)

var FamilyNameMap = map[string]Family{
	"D2Q9":  D2Q9,
	"D3Q15": D3Q15,
	"D3Q19": D3Q19,
	"D3Q27": D3Q27,
}

func (f Family) String() string {
	for name, fam := range FamilyNameMap {
		if fam == f {
			return name
		}
	}
	return "Unknown"
}

const DefaultOrdering = "walberla"

var ErrUnknownStencil = errors.New("stencils: no such stencil available")

type UnknownStencilError struct {
	Name, Ordering string
}

func (e *UnknownStencilError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %q ordering %q. Available stencils: <stencil_name>( <ordering_names> )\n",
		ErrUnknownStencil, e.Name, e.Ordering)
	for _, label := range Labels() {
		fmt.Fprintf(&sb, "  %s: %s\n", label, strings.Join(Orderings(label), ", "))
	}
	return sb.String()
}

func (e *UnknownStencilError) Unwrap() error { return ErrUnknownStencil }

// Get returns a fresh copy of the named stencil, ordering defaults to walberla.
func Get(name string, ordering ...string) (s Stencil, err error) {
	var (
		ord = DefaultOrdering
	)
	if len(ordering) != 0 && ordering[0] != "" {
		ord = ordering[0]
	}
	byOrdering, ok := stencilData[strings.ToUpper(name)]
	if ok {
		var table [][]int
		if table, ok = byOrdering[strings.ToLower(ord)]; ok {
			s = make(Stencil, len(table))
			for i, d := range table {
				s[i] = append(Direction{}, d...)
			}
			return
		}
	}
	err = &UnknownStencilError{name, ord}
	return
}

func MustGet(name string, ordering ...string) Stencil {
	s, err := Get(name, ordering...)
	if err != nil {
		panic(err)
	}
	return s
}

func Labels() (labels []string) {
	for label := range stencilData {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if len(labels[i]) != len(labels[j]) {
			return len(labels[i]) < len(labels[j])
		}
		return labels[i] < labels[j]
	})
	return
}

func Orderings(label string) (names []string) {
	for name := range stencilData[strings.ToUpper(label)] {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func Inverse(d Direction) (inv Direction) {
	inv = make(Direction, len(d))
	for i, c := range d {
		inv[i] = -c
	}
	return
}

func (d Direction) Equal(o Direction) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if d[i] != o[i] {
			return false
		}
	}
	return true
}

// SquaredLength is |c|^2.
func (d Direction) SquaredLength() (l int) {
	for _, c := range d {
		l += c * c
	}
	return
}

func (d Direction) key() string { return fmt.Sprint([]int(d)) }

func (s Stencil) Dim() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

func (s Stencil) Q() int { return len(s) }

// Index returns the position of d in the stencil or -1.
func (s Stencil) Index(d Direction) int {
	for i, e := range s {
		if e.Equal(d) {
			return i
		}
	}
	return -1
}

// InverseIndex maps each direction index to the index of its inverse, -1 when absent.
func (s Stencil) InverseIndex() (inv []int) {
	inv = make([]int, len(s))
	for i, d := range s {
		inv[i] = s.Index(Inverse(d))
	}
	return
}

func (s Stencil) String() string {
	dirs := make([]string, len(s))
	for i, d := range s {
		dirs[i] = d.key()
	}
	return strings.Join(dirs, " ")
}

// IsValid checks that all directions share one dimension and, for
// maxNeighborhood > 0, that no component magnitude exceeds it.
func IsValid(s Stencil, maxNeighborhood int) bool {
	if len(s) == 0 {
		return false
	}
	dim := len(s[0])
	for _, d := range s {
		if len(d) != dim {
			return false
		}
		if maxNeighborhood <= 0 {
			continue
		}
		for _, c := range d {
			if c > maxNeighborhood || -c > maxNeighborhood {
				return false
			}
		}
	}
	return true
}

func IsSymmetric(s Stencil) bool {
	for _, d := range s {
		if s.Index(Inverse(d)) < 0 {
			return false
		}
	}
	return true
}

// SameEntries reports set equality, ignoring order.
func SameEntries(s1, s2 Stencil) bool {
	if len(s1) != len(s2) {
		return false
	}
	set := make(map[string]struct{}, len(s1))
	for _, d := range s1 {
		set[d.key()] = struct{}{}
	}
	for _, d := range s2 {
		if _, ok := set[d.key()]; !ok {
			return false
		}
	}
	return true
}

// Identify finds the family of a stencil under any permutation of its directions.
func Identify(s Stencil) Family {
	label := fmt.Sprintf("D%dQ%d", s.Dim(), len(s))
	fam, ok := FamilyNameMap[label]
	if !ok || !SameEntries(s, MustGet(label)) {
		return Unknown
	}
	return fam
}
