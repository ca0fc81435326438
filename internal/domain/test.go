package domain

// Role tags a sample file as the before or after half of a pair
type Role int

const (
	RoleBefore Role = iota
	RoleAfter
)

// On-disk markers: the last character of a sample file name
const (
	BeforeMarker = 'a'
	AfterMarker  = 'b'
)

func (r Role) String() string {
	if r == RoleAfter {
		return "after"
	}
	return "before"
}

// RoleOf classifies a file name by its trailing marker character.
// ok is false when the name carries neither marker.
func RoleOf(name string) (role Role, ok bool) {
	if name == "" {
		return 0, false
	}
	switch name[len(name)-1] {
	case BeforeMarker:
		return RoleBefore, true
	case AfterMarker:
		return RoleAfter, true
	}
	return 0, false
}

// SampleFile is one discovered fixture file
type SampleFile struct {
	Path string
	Role Role
}

// TestCase is a validated (before, after) pair from one directory
type TestCase struct {
	Name   string // Shared base name without marker, e.g. "foo" for foo.a/foo.b
	Before SampleFile
	After  SampleFile
}

// TestGroup is a fixture directory and its cases in sorted filename order
type TestGroup struct {
	Dir   string // Directory path as walked
	Name  string // Sanitized path relative to the fixture root
	Cases []TestCase
}

// Inventory is the complete result of discovery, groups sorted by directory
type Inventory struct {
	Root   string
	Groups []TestGroup
}

// CaseCount returns the number of test cases across all groups
func (inv *Inventory) CaseCount() int {
	total := 0
	for _, g := range inv.Groups {
		total += len(g.Cases)
	}
	return total
}
