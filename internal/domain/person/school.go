package person

import (
	"sync"

	"github.com/pjatk/academic-registry/internal/validate"
)

// DefaultSchoolName is the school every persona belongs to unless changed.
const DefaultSchoolName = "pjatk"

var (
	schoolMu   sync.RWMutex
	schoolName = DefaultSchoolName
)

// SchoolName returns the class-wide school name shared by all personas.
func SchoolName() string {
	schoolMu.RLock()
	defer schoolMu.RUnlock()
	return schoolName
}

// SetSchoolName replaces the shared school name. Blank names are rejected.
func SetSchoolName(name string) error {
	if err := validate.Field(domain, "SetSchoolName", "schoolName", name, validate.NotBlank); err != nil {
		return err
	}
	schoolMu.Lock()
	defer schoolMu.Unlock()
	schoolName = name
	return nil
}

// ResetSchoolName restores DefaultSchoolName.
func ResetSchoolName() {
	schoolMu.Lock()
	defer schoolMu.Unlock()
	schoolName = DefaultSchoolName
}
