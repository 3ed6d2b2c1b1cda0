package pdb

// Role names a class of atoms within a structure.
type Role int

const (
	// RoleProtein matches every ATOM record.
	RoleProtein Role = iota
	// RoleBackbone matches the main-chain atoms N, CA, C and O.
	RoleBackbone
	// RoleCalpha matches carbon-alpha atoms only.
	RoleCalpha
)

func (r Role) String() string {
	switch r {
	case RoleProtein:
		return "protein"
	case RoleBackbone:
		return "backbone"
	case RoleCalpha:
		return "calpha"
	}
	return "unknown"
}

var backboneNames = map[string]bool{
	"N": true, "CA": true, "C": true, "O": true,
}

// ResidueRange is an inclusive range of residue sequence numbers.
type ResidueRange struct {
	Start, End int
}

// Contains reports whether the residue index i falls in the range.
func (r ResidueRange) Contains(i int) bool { return i >= r.Start && i <= r.End }

// Selection is a declarative atom filter: an atom role, an optional chain
// identifier (0 matches any chain) and an optional set of residue ranges
// (empty matches any residue).
type Selection struct {
	Role   Role
	Chain  byte
	Ranges []ResidueRange
}

func (sel Selection) matches(a Atom) bool {
	switch sel.Role {
	case RoleBackbone:
		if !backboneNames[a.Name] {
			return false
		}
	case RoleCalpha:
		if a.Name != "CA" {
			return false
		}
	}
	if sel.Chain != 0 && a.Chain != sel.Chain {
		return false
	}
	if len(sel.Ranges) == 0 {
		return true
	}
	for _, r := range sel.Ranges {
		if r.Contains(a.ResidueInd) {
			return true
		}
	}
	return false
}

// Select returns the atoms matching the selection, in file order. A selection
// matching nothing yields an empty slice, not an error.
func (s *Structure) Select(sel Selection) Atoms {
	matched := make(Atoms, 0, len(s.Atoms))
	for _, a := range s.Atoms {
		if sel.matches(a) {
			matched = append(matched, a)
		}
	}
	return matched
}
