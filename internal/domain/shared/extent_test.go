package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct{ name string }

func TestExtent_AddKeepsInsertionOrder(t *testing.T) {
	ext := NewExtent[*record]("record")

	require.NoError(t, ext.Add(&record{name: "a"}))
	require.NoError(t, ext.Add(&record{name: "b"}))
	require.NoError(t, ext.Add(&record{name: "c"}))

	view := ext.View()
	require.Equal(t, 3, view.Len())
	names := make([]string, 0, 3)
	for _, r := range view.Items() {
		names = append(names, r.name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestExtent_AddNilFails(t *testing.T) {
	ext := NewExtent[*record]("record")

	err := ext.Add(nil)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.True(t, errors.Is(err, ErrNilValue))
	assert.Equal(t, 0, ext.Len())
}

func TestExtent_Reset(t *testing.T) {
	ext := NewExtent[*record]("record")
	require.NoError(t, ext.Add(&record{name: "a"}))
	view := ext.View()

	ext.Reset()

	assert.Equal(t, 0, view.Len())
	_, ok := view.At(0)
	assert.False(t, ok)
}

func TestView_RejectsMutation(t *testing.T) {
	ext := NewExtent[*record]("record")
	require.NoError(t, ext.Add(&record{name: "a"}))
	view := ext.View()

	mutations := map[string]func() error{
		"add":    func() error { return view.Add(&record{name: "b"}) },
		"remove": func() error { return view.RemoveAt(0) },
		"set":    func() error { return view.Set(0, &record{name: "z"}) },
		"clear":  func() error { return view.Clear() },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			err := mutate()
			require.Error(t, err)
			assert.True(t, IsReadOnly(err))
			assert.False(t, IsValidation(err))
		})
	}

	require.Equal(t, 1, ext.Len())
	first, ok := view.At(0)
	require.True(t, ok)
	assert.Equal(t, "a", first.name)
}

func TestView_ItemsIsACopy(t *testing.T) {
	ext := NewExtent[*record]("record")
	require.NoError(t, ext.Add(&record{name: "a"}))

	items := ext.View().Items()
	items[0] = &record{name: "hijacked"}
	_ = append(items, &record{name: "extra"})

	first, _ := ext.View().At(0)
	assert.Equal(t, "a", first.name)
	assert.Equal(t, 1, ext.Len())
}

func TestView_ZeroValue(t *testing.T) {
	var view View[*record]

	assert.Equal(t, 0, view.Len())
	assert.Nil(t, view.Items())
	assert.True(t, IsReadOnly(view.Add(&record{})))
}

func TestNewValidationError_MatchesBothKinds(t *testing.T) {
	err := NewValidationError("person", "SetName", "name", ErrEmptyValue, "name cannot be empty")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(err, ErrEmptyValue))
	assert.False(t, errors.Is(err, ErrValueOutOfRange))
	assert.Equal(t, "person.SetName: name cannot be empty", err.Error())
}

func TestNewParseError_WrapsCause(t *testing.T) {
	cause := errors.New("strconv.Atoi: parsing \"x\": invalid syntax")
	err := NewParseError("student", "Load", "studentNumber", "invalid student number", cause)

	assert.True(t, IsParse(err))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, IsValidation(err))
}

func TestExtent_AddUniqueRejectsDuplicate(t *testing.T) {
	ext := NewExtent[*record]("record")
	a := &record{name: "a"}
	same := func(r *record) bool { return r == a }
	require.NoError(t, ext.AddUnique(a, same))

	err := ext.AddUnique(a, same)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assert.Equal(t, 1, ext.Len())

	ext.Reset()
	assert.NoError(t, ext.AddUnique(a, same), "a reset extent accepts the member again")
}

func TestView_Contains(t *testing.T) {
	ext := NewExtent[*record]("record")
	require.NoError(t, ext.Add(&record{name: "a"}))
	view := ext.View()

	assert.True(t, view.Contains(func(r *record) bool { return r.name == "a" }))
	assert.False(t, view.Contains(func(r *record) bool { return r.name == "b" }))
}
