package student

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pjatk/academic-registry/internal/domain/person"
	"github.com/pjatk/academic-registry/internal/domain/shared"
)

// Columns is the number of columns of a students.txt line.
const Columns = person.Columns + 6

// Record is the persisted form of a Student:
// name;middleName;surname;email;birthDate;studentNumber;accountBalance;
// yearOfStudy;gpa;currentSemester;attendance.
type Record struct {
	person.Record

	StudentNumber   int
	AccountBalance  decimal.Decimal
	YearOfStudy     int
	GPA             float64
	CurrentSemester int
	Attendance      int
}

// Record returns the persisted form of s.
func (s *Student) Record() Record {
	return Record{
		Record:          s.Person.Record(),
		StudentNumber:   s.studentNumber,
		AccountBalance:  s.accountBalance,
		YearOfStudy:     s.yearOfStudy,
		GPA:             s.gpa,
		CurrentSemester: s.currentSemester,
		Attendance:      s.attendance,
	}
}

// Params converts the record into constructor arguments.
func (r Record) Params() Params {
	return Params{
		Name:            r.Name,
		Surname:         r.Surname,
		BirthDate:       r.BirthDate,
		Email:           r.Email,
		StudentNumber:   r.StudentNumber,
		AccountBalance:  r.AccountBalance,
		YearOfStudy:     r.YearOfStudy,
		GPA:             r.GPA,
		CurrentSemester: r.CurrentSemester,
		Attendance:      r.Attendance,
		MiddleName:      r.MiddleName,
	}
}

// FromRecord rebuilds a Student through the full construction path, so every
// attribute is validated again and the result is registered.
func FromRecord(r Record) (*Student, error) {
	return New(r.Params())
}

// FormatRecord renders r as a single students.txt line without a newline.
func FormatRecord(r Record) string {
	cols := append(r.Record.Columns(),
		strconv.Itoa(r.StudentNumber),
		r.AccountBalance.String(),
		strconv.Itoa(r.YearOfStudy),
		strconv.FormatFloat(r.GPA, 'f', -1, 64),
		strconv.Itoa(r.CurrentSemester),
		strconv.Itoa(r.Attendance),
	)
	return strings.Join(cols, person.Separator)
}

// ParseRecord parses a single students.txt line. Values are decoded but not
// validated; FromRecord does that.
func ParseRecord(line string) (Record, error) {
	cols := strings.Split(line, person.Separator)
	if len(cols) != Columns {
		return Record{}, shared.NewParseError(domain, "ParseRecord", "",
			fmt.Sprintf("expected %d columns, got %d", Columns, len(cols)), shared.ErrInvalidFormat)
	}

	base, err := person.ParseColumns(cols[:person.Columns])
	if err != nil {
		return Record{}, err
	}
	r := Record{Record: base}

	d := decoder{cols: cols[person.Columns:]}
	r.StudentNumber = d.parseInt(0, "studentNumber")
	r.AccountBalance = d.parseDecimal(1, "accountBalance")
	r.YearOfStudy = d.parseInt(2, "yearOfStudy")
	r.GPA = d.parseFloat(3, "gpa")
	r.CurrentSemester = d.parseInt(4, "currentSemester")
	r.Attendance = d.parseInt(5, "attendance")
	if d.err != nil {
		return Record{}, d.err
	}
	return r, nil
}

// decoder parses typed columns and keeps the first failure.
type decoder struct {
	cols []string
	err  error
}

func (d *decoder) fail(field, value string, err error) {
	if d.err == nil {
		d.err = shared.NewParseError(domain, "ParseRecord", field,
			fmt.Sprintf("invalid %s %q", field, value), err)
	}
}

func (d *decoder) parseInt(i int, field string) int {
	n, err := strconv.Atoi(d.cols[i])
	if err != nil {
		d.fail(field, d.cols[i], err)
	}
	return n
}

func (d *decoder) parseFloat(i int, field string) float64 {
	f, err := strconv.ParseFloat(d.cols[i], 64)
	if err != nil {
		d.fail(field, d.cols[i], err)
	}
	return f
}

func (d *decoder) parseDecimal(i int, field string) decimal.Decimal {
	v, err := decimal.NewFromString(d.cols[i])
	if err != nil {
		d.fail(field, d.cols[i], err)
	}
	return v
}
