// Package person contains the base persona of the academic registry.
//
// Person is never used on its own by the registry: concrete types embed it,
// initialise it with Init and register themselves with Register. New exists
// for callers that need a bare Person in the Person extent.
package person

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pjatk/academic-registry/internal/validate"
	"github.com/pjatk/academic-registry/pkg/timeutil"
)

const domain = "person"

// Persona is implemented by Person and by every type embedding it.
type Persona interface {
	// Base returns the embedded Person.
	Base() *Person
	FullName() string
	Email() string
	Age() int
}

// Person holds identity and contact attributes. Every setter validates its
// argument and leaves the previous value in place on failure.
type Person struct {
	id         uuid.UUID
	name       string
	middleName *string
	surname    string
	email      string
	birthDate  time.Time
}

// New validates the arguments, then registers the Person in the Person extent.
func New(name, surname string, birthDate time.Time, email string) (*Person, error) {
	p := &Person{}
	if err := p.Init(name, surname, birthDate, email); err != nil {
		return nil, err
	}
	if err := Register(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Blank returns a Person with an identity and no attributes. It is the
// default construction path used before populating an instance field by field.
func Blank() Person {
	return Person{id: uuid.New()}
}

// Init assigns the mandatory attributes through their setters, stopping at
// the first invalid one. It does not register the receiver anywhere.
func (p *Person) Init(name, surname string, birthDate time.Time, email string) error {
	if err := p.SetName(name); err != nil {
		return err
	}
	if err := p.SetSurname(surname); err != nil {
		return err
	}
	if err := p.SetBirthDate(birthDate); err != nil {
		return err
	}
	if err := p.SetEmail(email); err != nil {
		return err
	}
	if p.id == uuid.Nil {
		p.id = uuid.New()
	}
	return nil
}

// Base returns p. It lets embedding types satisfy Persona.
func (p *Person) Base() *Person { return p }

// ID identifies the in-memory instance. It is not persisted.
func (p *Person) ID() uuid.UUID { return p.id }

// Name returns the given name.
func (p *Person) Name() string { return p.name }

// SetName replaces the name. Blank names are rejected.
func (p *Person) SetName(name string) error {
	if err := validate.Field(domain, "SetName", "name", name, validate.NotBlank); err != nil {
		return err
	}
	p.name = name
	return nil
}

// MiddleName returns nil when the person has no middle name.
func (p *Person) MiddleName() *string {
	if p.middleName == nil {
		return nil
	}
	m := *p.middleName
	return &m
}

// SetMiddleName replaces the middle name. nil clears it; a present but blank
// value is rejected.
func (p *Person) SetMiddleName(middleName *string) error {
	if middleName == nil {
		p.middleName = nil
		return nil
	}
	if err := validate.Field(domain, "SetMiddleName", "middleName", *middleName, validate.NotBlank); err != nil {
		return err
	}
	m := *middleName
	p.middleName = &m
	return nil
}

// Surname returns the family name.
func (p *Person) Surname() string { return p.surname }

// SetSurname replaces the surname. Blank surnames are rejected.
func (p *Person) SetSurname(surname string) error {
	if err := validate.Field(domain, "SetSurname", "surname", surname, validate.NotBlank); err != nil {
		return err
	}
	p.surname = surname
	return nil
}

// Email returns the stored email address.
func (p *Person) Email() string { return p.email }

// SetEmail replaces the email. Blank values are rejected; the format is not checked.
func (p *Person) SetEmail(email string) error {
	if err := validate.Field(domain, "SetEmail", "email", email, validate.NotBlank); err != nil {
		return err
	}
	p.email = email
	return nil
}

// BirthDate returns the date of birth.
func (p *Person) BirthDate() time.Time { return p.birthDate }

// SetBirthDate replaces the birth date. Dates later than now are rejected.
func (p *Person) SetBirthDate(birthDate time.Time) error {
	if err := validate.Field(domain, "SetBirthDate", "birthDate", birthDate, validate.NotFuture); err != nil {
		return err
	}
	p.birthDate = birthDate
	return nil
}

// Age is derived from the birth date and today's date.
func (p *Person) Age() int {
	return timeutil.YearsSince(p.birthDate)
}

// FullName returns "name surname", or "name middleName surname" when a
// middle name is present.
func (p *Person) FullName() string {
	if p.middleName == nil {
		return fmt.Sprintf("%s %s", p.name, p.surname)
	}
	return fmt.Sprintf("%s %s %s", p.name, *p.middleName, p.surname)
}

// String returns a short representation for logging.
func (p *Person) String() string {
	return fmt.Sprintf("Person{ID: %s, Name: %s, Email: %s}", p.id, p.FullName(), p.email)
}

// Validate re-checks every attribute. It is used on instances that were
// populated without setters.
func (p *Person) Validate() error {
	var scratch Person
	if err := scratch.Init(p.name, p.surname, p.birthDate, p.email); err != nil {
		return err
	}
	return scratch.SetMiddleName(p.middleName)
}

