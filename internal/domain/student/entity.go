package student

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pjatk/academic-registry/internal/domain/person"
	"github.com/pjatk/academic-registry/internal/validate"
)

const domain = "student"

// Attribute ranges.
const (
	MinYearOfStudy     = 1
	MaxYearOfStudy     = 5
	MinGPA             = 0.0
	MaxGPA             = 4.0
	MinCurrentSemester = 1
	MaxCurrentSemester = 10
	MinAttendance      = 0
	MaxAttendance      = 100
)

// Student is a Person with an academic profile.
type Student struct {
	person.Person

	studentNumber   int
	accountBalance  decimal.Decimal
	yearOfStudy     int
	gpa             float64
	currentSemester int
	attendance      int
}

// Params contains the arguments of the full Student construction path.
type Params struct {
	Name            string
	Surname         string
	BirthDate       time.Time
	Email           string
	StudentNumber   int
	AccountBalance  decimal.Decimal
	YearOfStudy     int
	GPA             float64
	CurrentSemester int
	Attendance      int
	MiddleName      *string
}

// New validates every attribute, then registers the Student in the Person
// extent and in the Student extent. A failure registers nothing.
func New(params Params) (*Student, error) {
	s := &Student{}
	if err := s.Person.Init(params.Name, params.Surname, params.BirthDate, params.Email); err != nil {
		return nil, err
	}
	if err := s.SetMiddleName(params.MiddleName); err != nil {
		return nil, err
	}
	if err := s.SetStudentNumber(params.StudentNumber); err != nil {
		return nil, err
	}
	s.SetAccountBalance(params.AccountBalance)
	if err := s.SetYearOfStudy(params.YearOfStudy); err != nil {
		return nil, err
	}
	if err := s.SetGPA(params.GPA); err != nil {
		return nil, err
	}
	if err := s.SetCurrentSemester(params.CurrentSemester); err != nil {
		return nil, err
	}
	if err := s.SetAttendance(params.Attendance); err != nil {
		return nil, err
	}

	if err := register(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Empty is the default construction path for deserialization: no
// validation, no registration. Populate it through the setters, then call
// Register.
func Empty() *Student {
	return &Student{Person: person.Blank()}
}

// StudentNumber returns the positive student number.
func (s *Student) StudentNumber() int { return s.studentNumber }

// SetStudentNumber replaces the student number. It must be positive.
func (s *Student) SetStudentNumber(n int) error {
	if err := validate.Field(domain, "SetStudentNumber", "studentNumber", n, "gt=0"); err != nil {
		return err
	}
	s.studentNumber = n
	return nil
}

// AccountBalance returns the balance of the student's account. It may be negative.
func (s *Student) AccountBalance() decimal.Decimal { return s.accountBalance }

// SetAccountBalance replaces the balance. Any value, negative included, is accepted.
func (s *Student) SetAccountBalance(balance decimal.Decimal) {
	s.accountBalance = balance
}

// YearOfStudy returns the current year of study.
func (s *Student) YearOfStudy() int { return s.yearOfStudy }

// SetYearOfStudy replaces the year of study, in [1,5].
func (s *Student) SetYearOfStudy(year int) error {
	tag := fmt.Sprintf("gte=%d,lte=%d", MinYearOfStudy, MaxYearOfStudy)
	if err := validate.Field(domain, "SetYearOfStudy", "yearOfStudy", year, tag); err != nil {
		return err
	}
	s.yearOfStudy = year
	return nil
}

// GPA returns the grade point average.
func (s *Student) GPA() float64 { return s.gpa }

// SetGPA replaces the grade point average, in [0.0,4.0].
func (s *Student) SetGPA(gpa float64) error {
	tag := fmt.Sprintf("gte=%g,lte=%g", MinGPA, MaxGPA)
	if err := validate.Field(domain, "SetGPA", "gpa", gpa, tag); err != nil {
		return err
	}
	s.gpa = gpa
	return nil
}

// CurrentSemester returns the semester the student is enrolled in.
func (s *Student) CurrentSemester() int { return s.currentSemester }

// SetCurrentSemester replaces the current semester, in [1,10].
func (s *Student) SetCurrentSemester(semester int) error {
	tag := fmt.Sprintf("gte=%d,lte=%d", MinCurrentSemester, MaxCurrentSemester)
	if err := validate.Field(domain, "SetCurrentSemester", "currentSemester", semester, tag); err != nil {
		return err
	}
	s.currentSemester = semester
	return nil
}

// Attendance returns the attendance percentage.
func (s *Student) Attendance() int { return s.attendance }

// SetAttendance replaces the attendance percentage, in [0,100].
func (s *Student) SetAttendance(attendance int) error {
	tag := fmt.Sprintf("gte=%d,lte=%d", MinAttendance, MaxAttendance)
	if err := validate.Field(domain, "SetAttendance", "attendance", attendance, tag); err != nil {
		return err
	}
	s.attendance = attendance
	return nil
}

// Validate re-checks every attribute, including the Person ones.
func (s *Student) Validate() error {
	if err := s.Person.Validate(); err != nil {
		return err
	}
	var scratch Student
	if err := scratch.SetStudentNumber(s.studentNumber); err != nil {
		return err
	}
	if err := scratch.SetYearOfStudy(s.yearOfStudy); err != nil {
		return err
	}
	if err := scratch.SetGPA(s.gpa); err != nil {
		return err
	}
	if err := scratch.SetCurrentSemester(s.currentSemester); err != nil {
		return err
	}
	return scratch.SetAttendance(s.attendance)
}

// String returns a short representation for logging.
func (s *Student) String() string {
	return fmt.Sprintf(
		"Student{ID: %s, Number: %d, Name: %s, Year: %d, GPA: %g}",
		s.ID(), s.studentNumber, s.FullName(), s.yearOfStudy, s.gpa,
	)
}
