package person

import "github.com/pjatk/academic-registry/internal/domain/shared"

// extent holds every Persona built through the Person construction path,
// including the Person part of every Student.
var extent = shared.NewExtent[Persona](domain)

// Register appends p to the Person extent. nil and a Persona whose Person is
// already in the extent are rejected.
func Register(p Persona) error {
	return extent.AddUnique(p, func(member Persona) bool {
		return member.Base() == p.Base()
	})
}

// Extent returns a read-only view over the Person extent.
func Extent() shared.View[Persona] {
	return extent.View()
}

// ResetExtent empties the Person extent.
func ResetExtent() {
	extent.Reset()
}
