package person

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pjatk/academic-registry/internal/domain/shared"
	"github.com/pjatk/academic-registry/pkg/timeutil"
)

func resetState(t *testing.T) {
	t.Helper()
	ResetExtent()
	ResetSchoolName()
	t.Cleanup(func() {
		ResetExtent()
		ResetSchoolName()
	})
}

func ptr(s string) *string { return &s }

func TestNew_Valid(t *testing.T) {
	resetState(t)

	p, err := New("John", "Doe", timeutil.Date(2000, time.January, 1), "john@example.com")

	require.NoError(t, err)
	assert.Equal(t, "John", p.Name())
	assert.Equal(t, "Doe", p.Surname())
	assert.Equal(t, "john@example.com", p.Email())
	assert.Nil(t, p.MiddleName())
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", p.ID().String())
	assert.Equal(t, 1, Extent().Len())
}

func TestNew_InvalidFieldsRegisterNothing(t *testing.T) {
	birth := timeutil.Date(2000, time.January, 1)
	tests := []struct {
		name    string
		first   string
		surname string
		birth   time.Time
		email   string
		reason  error
	}{
		{name: "empty name", first: "", surname: "Doe", birth: birth, email: "a@b.com", reason: shared.ErrEmptyValue},
		{name: "blank name", first: "   ", surname: "Doe", birth: birth, email: "a@b.com", reason: shared.ErrEmptyValue},
		{name: "empty surname", first: "John", surname: "", birth: birth, email: "a@b.com", reason: shared.ErrEmptyValue},
		{name: "blank email", first: "John", surname: "Doe", birth: birth, email: " \t", reason: shared.ErrEmptyValue},
		{name: "future birth date", first: "John", surname: "Doe", birth: time.Now().AddDate(0, 0, 3), email: "a@b.com", reason: shared.ErrFutureTimestamp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetState(t)

			p, err := New(tt.first, tt.surname, tt.birth, tt.email)

			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, shared.IsValidation(err))
			assert.True(t, errors.Is(err, tt.reason))
			assert.Equal(t, 0, Extent().Len())
		})
	}
}

func TestSetBirthDate_Boundary(t *testing.T) {
	resetState(t)
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)
	defer timeutil.SetClock(timeutil.FixedClock(now))()

	_, err := New("John", "Doe", now, "john@example.com")
	assert.NoError(t, err, "birth date equal to now is accepted")

	_, err = New("John", "Doe", now.AddDate(0, 0, 1), "john@example.com")
	assert.True(t, shared.IsValidation(err), "one day in the future is rejected")
}

func TestSetters_KeepPreviousValueOnFailure(t *testing.T) {
	resetState(t)
	p, err := New("John", "Doe", timeutil.Date(2000, time.January, 1), "john@example.com")
	require.NoError(t, err)

	assert.Error(t, p.SetName(" "))
	assert.Error(t, p.SetSurname(""))
	assert.Error(t, p.SetEmail(""))
	assert.Error(t, p.SetMiddleName(ptr("  ")))
	assert.Error(t, p.SetBirthDate(time.Now().Add(48*time.Hour)))

	assert.Equal(t, "John", p.Name())
	assert.Equal(t, "Doe", p.Surname())
	assert.Equal(t, "john@example.com", p.Email())
	assert.Nil(t, p.MiddleName())
	assert.Equal(t, timeutil.Date(2000, time.January, 1), p.BirthDate())

	require.NoError(t, p.SetName("Jane"))
	assert.Equal(t, "Jane", p.Name())
	assert.Equal(t, 1, Extent().Len(), "setters never touch the extent")
}

func TestFullName(t *testing.T) {
	resetState(t)
	p, err := New("John", "Doe", timeutil.Date(2000, time.January, 1), "john@example.com")
	require.NoError(t, err)

	assert.Equal(t, "John Doe", p.FullName())

	require.NoError(t, p.SetMiddleName(ptr("Q")))
	assert.Equal(t, "John Q Doe", p.FullName())

	require.NoError(t, p.SetMiddleName(nil))
	assert.Equal(t, "John Doe", p.FullName())
}

func TestMiddleName_ReturnsCopy(t *testing.T) {
	var p Person
	require.NoError(t, p.SetMiddleName(ptr("Q")))

	m := p.MiddleName()
	*m = "changed"

	assert.Equal(t, "Q", *p.MiddleName())
}

func TestAge(t *testing.T) {
	today := time.Date(2024, time.June, 15, 9, 30, 0, 0, time.Local)
	defer timeutil.SetClock(timeutil.FixedClock(today))()

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{name: "exactly 20 years", birth: timeutil.Date(2004, time.June, 15), want: 20},
		{name: "one day short of 20 years", birth: timeutil.Date(2004, time.June, 16), want: 19},
		{name: "born today", birth: timeutil.Date(2024, time.June, 15), want: 0},
		{name: "birthday earlier this year", birth: timeutil.Date(1990, time.January, 1), want: 34},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Person
			require.NoError(t, p.SetBirthDate(tt.birth))
			assert.Equal(t, tt.want, p.Age())
		})
	}
}

func TestSchoolName(t *testing.T) {
	resetState(t)

	assert.Equal(t, "pjatk", SchoolName())

	err := SetSchoolName("   ")
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, "pjatk", SchoolName())

	require.NoError(t, SetSchoolName("Polish-Japanese Academy"))
	assert.Equal(t, "Polish-Japanese Academy", SchoolName())

	ResetSchoolName()
	assert.Equal(t, DefaultSchoolName, SchoolName())
}

func TestExtent_ReadOnlyView(t *testing.T) {
	resetState(t)
	p, err := New("John", "Doe", timeutil.Date(2000, time.January, 1), "john@example.com")
	require.NoError(t, err)

	view := Extent()
	other := &Person{}

	assert.True(t, shared.IsReadOnly(view.Add(other)))
	assert.True(t, shared.IsReadOnly(view.RemoveAt(0)))
	assert.Equal(t, 1, Extent().Len())

	first, ok := view.At(0)
	require.True(t, ok)
	assert.Same(t, p, first.Base())
}

func TestRegister_Nil(t *testing.T) {
	resetState(t)

	var p *Person
	err := Register(p)

	assert.True(t, shared.IsValidation(err))
	assert.True(t, errors.Is(err, shared.ErrNilValue))
	assert.Equal(t, 0, Extent().Len())
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	resetState(t)
	p, err := New("John", "Doe", timeutil.Date(2000, time.January, 1), "john@example.com")
	require.NoError(t, err)

	err = Register(p)

	assert.True(t, shared.IsValidation(err))
	assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
	assert.Equal(t, 1, Extent().Len())

	ResetExtent()
	require.NoError(t, Register(p), "a reset extent accepts the instance again")
	assert.Equal(t, 1, Extent().Len())
}

func TestSaveLoad(t *testing.T) {
	resetState(t)
	path := filepath.Join(t.TempDir(), DefaultFile)

	_, err := New("John", "Doe", timeutil.Date(2000, time.January, 1), "john@example.com")
	require.NoError(t, err)
	q, err := New("Anna", "Nowak", timeutil.Date(1999, time.December, 31), "anna@example.com")
	require.NoError(t, err)
	require.NoError(t, q.SetMiddleName(ptr("Maria")))

	require.NoError(t, Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"John;;Doe;john@example.com;2000-01-01\nAnna;Maria;Nowak;anna@example.com;1999-12-31\n",
		string(raw))

	records, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, Extent().Len(), "Person cannot rebuild instances on its own")
	require.Len(t, records, 2)
	assert.Equal(t, "John", records[0].Name)
	assert.Nil(t, records[0].MiddleName)
	require.NotNil(t, records[1].MiddleName)
	assert.Equal(t, "Maria", *records[1].MiddleName)
	assert.Equal(t, timeutil.Date(1999, time.December, 31), records[1].BirthDate)
}

func TestSave_Overwrites(t *testing.T) {
	resetState(t)
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale;line\n", 10)), 0o644))

	require.NoError(t, Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestLoad_MissingFile(t *testing.T) {
	resetState(t)
	_, err := New("John", "Doe", timeutil.Date(2000, time.January, 1), "john@example.com")
	require.NoError(t, err)

	records, err := Load(filepath.Join(t.TempDir(), "missing.txt"))

	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, Extent().Len())
}

func TestLoad_MalformedDate(t *testing.T) {
	resetState(t)
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("John;;Doe;john@example.com;01/01/2000\n"), 0o644))

	_, err := Load(path)

	require.Error(t, err)
	assert.True(t, shared.IsParse(err))
}

func TestParseRecord_ColumnCount(t *testing.T) {
	_, err := ParseRecord("John;Doe;john@example.com")

	require.Error(t, err)
	assert.True(t, shared.IsParse(err))
	assert.True(t, errors.Is(err, shared.ErrInvalidFormat))
}

func TestFormatRecord_RoundTrip(t *testing.T) {
	r := Record{
		Name:       "John",
		MiddleName: ptr("Q"),
		Surname:    "Doe",
		Email:      "john@example.com",
		BirthDate:  timeutil.Date(2000, time.January, 1),
	}

	line := FormatRecord(r)
	assert.Equal(t, "John;Q;Doe;john@example.com;2000-01-01", line)

	parsed, err := ParseRecord(line)
	require.NoError(t, err)
	assert.Equal(t, r, parsed)
}

func TestLoad_LongLine(t *testing.T) {
	resetState(t)
	path := filepath.Join(t.TempDir(), DefaultFile)
	name := strings.Repeat("n", 70*1024)
	content := name + ";;Doe;john@example.com;2000-01-01\r\n\nAnna;;Nowak;anna@example.com;1999-12-31"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := Load(path)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, name, records[0].Name)
	assert.Equal(t, "Anna", records[1].Name, "a last line without newline is read")
}
