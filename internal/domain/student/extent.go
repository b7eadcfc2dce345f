package student

import (
	"github.com/pjatk/academic-registry/internal/domain/person"
	"github.com/pjatk/academic-registry/internal/domain/shared"
)

// extent holds every registered Student in construction order. It is
// separate from the Person extent.
var extent = shared.NewExtent[*Student](domain)

// Register validates an instance built through Empty and registers it in the
// Person extent and the Student extent. A Student that is already in the
// Student extent is rejected and both extents are left unchanged.
func Register(s *Student) error {
	if s == nil {
		return extent.Add(s)
	}
	if Extent().Contains(func(member *Student) bool { return member == s }) {
		return shared.NewValidationError(domain, "Register", "", shared.ErrAlreadyExists,
			"student is already in the extent")
	}
	if err := s.Validate(); err != nil {
		return err
	}
	return register(s)
}

func register(s *Student) error {
	if err := person.Register(s); err != nil {
		return err
	}
	return extent.AddUnique(s, func(member *Student) bool { return member == s })
}

// Extent returns a read-only view over the Student extent.
func Extent() shared.View[*Student] {
	return extent.View()
}

// ResetExtent empties the Student extent. The Person extent is left alone.
func ResetExtent() {
	extent.Reset()
}

// FindByStudentNumber scans the extent for the first Student with number n.
func FindByStudentNumber(n int) (*Student, bool) {
	for _, s := range extent.Snapshot() {
		if s.studentNumber == n {
			return s, true
		}
	}
	return nil, false
}
