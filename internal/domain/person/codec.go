package person

import (
	"fmt"
	"strings"
	"time"

	"github.com/pjatk/academic-registry/internal/domain/shared"
	"github.com/pjatk/academic-registry/pkg/timeutil"
)

// Separator delimits columns in the flat files. Values are not escaped, so a
// ';' inside a value corrupts the line.
const Separator = ";"

// Columns is the number of columns of a persons.txt line.
const Columns = 5

// Record is the persisted form of a Person:
// name;middleName;surname;email;birthDate(YYYY-MM-DD).
type Record struct {
	Name       string
	MiddleName *string
	Surname    string
	Email      string
	BirthDate  time.Time
}

// Record returns the persisted form of p.
func (p *Person) Record() Record {
	return Record{
		Name:       p.name,
		MiddleName: p.MiddleName(),
		Surname:    p.surname,
		Email:      p.email,
		BirthDate:  p.birthDate,
	}
}

// Columns returns the record as ordered column values. An absent middle name
// is an empty column.
func (r Record) Columns() []string {
	middle := ""
	if r.MiddleName != nil {
		middle = *r.MiddleName
	}
	return []string{r.Name, middle, r.Surname, r.Email, timeutil.FormatDateStr(r.BirthDate)}
}

// FormatRecord renders r as a single persons.txt line without a newline.
func FormatRecord(r Record) string {
	return strings.Join(r.Columns(), Separator)
}

// ParseRecord parses a single persons.txt line. Values are not validated;
// only the shape of the line and the date are checked.
func ParseRecord(line string) (Record, error) {
	cols := strings.Split(line, Separator)
	if len(cols) != Columns {
		return Record{}, shared.NewParseError(domain, "ParseRecord", "",
			fmt.Sprintf("expected %d columns, got %d", Columns, len(cols)), shared.ErrInvalidFormat)
	}
	return ParseColumns(cols)
}

// ParseColumns parses the first Columns values of cols into a Record.
func ParseColumns(cols []string) (Record, error) {
	if len(cols) < Columns {
		return Record{}, shared.NewParseError(domain, "ParseColumns", "",
			fmt.Sprintf("expected at least %d columns, got %d", Columns, len(cols)), shared.ErrInvalidFormat)
	}

	birth, err := timeutil.ParseDate(cols[4])
	if err != nil {
		return Record{}, shared.NewParseError(domain, "ParseColumns", "birthDate",
			fmt.Sprintf("invalid birth date %q", cols[4]), err)
	}

	return Record{
		Name:       cols[0],
		MiddleName: OptionalString(cols[1]),
		Surname:    cols[2],
		Email:      cols[3],
		BirthDate:  birth,
	}, nil
}

// OptionalString maps the empty string to nil (absent) and anything else to a
// pointer to a copy.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
