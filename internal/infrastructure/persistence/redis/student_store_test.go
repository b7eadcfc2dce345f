package redis

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pjatk/academic-registry/internal/domain/person"
	"github.com/pjatk/academic-registry/internal/domain/shared"
	"github.com/pjatk/academic-registry/internal/domain/student"
	"github.com/pjatk/academic-registry/pkg/logger"
	"github.com/pjatk/academic-registry/pkg/timeutil"
)

func setupStore(t *testing.T) (*StudentStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	cfg, err := ConfigFromURL("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	client, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	student.ResetExtent()
	person.ResetExtent()
	t.Cleanup(func() {
		student.ResetExtent()
		person.ResetExtent()
	})

	return NewStudentStore(client), mr
}

func newJohn(t *testing.T) {
	t.Helper()
	_, err := student.New(student.Params{
		Name:            "John",
		Surname:         "Doe",
		BirthDate:       timeutil.Date(2000, time.January, 1),
		Email:           "john@example.com",
		StudentNumber:   123,
		AccountBalance:  decimal.NewFromInt(200),
		YearOfStudy:     3,
		GPA:             2.5,
		CurrentSemester: 2,
		Attendance:      90,
	})
	require.NoError(t, err)
}

func TestStudentStore_SaveLoad(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()
	newJohn(t)

	require.NoError(t, student.SaveTo(ctx, store))

	list, err := mr.List(KeyStudents)
	require.NoError(t, err)
	assert.Equal(t, []string{"John;;Doe;john@example.com;2000-01-01;123;200;3;2.5;2;90"}, list)

	n, err := student.LoadFrom(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, student.Extent().Len())
	// The Person extent still holds the original John next to the reloaded one.
	assert.Equal(t, 2, person.Extent().Len())
}

func TestStudentStore_SaveEmptyClearsKey(t *testing.T) {
	store, mr := setupStore(t)
	_, _ = mr.Push(KeyStudents, "stale")

	require.NoError(t, student.SaveTo(context.Background(), store))

	assert.False(t, mr.Exists(KeyStudents))
}

func TestStudentStore_LoadMissingKey(t *testing.T) {
	store, _ := setupStore(t)

	records, err := store.LoadAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStudentStore_LoadMalformedElement(t *testing.T) {
	store, mr := setupStore(t)
	_, _ = mr.Push(KeyStudents,
		"John;;Doe;john@example.com;2000-01-01;123;200;3;2.5;2;90",
		"broken",
	)

	records, err := store.LoadAll(context.Background())

	require.Error(t, err)
	assert.True(t, shared.IsParse(err))
	assert.Len(t, records, 1)
}

func TestNewClient_Unreachable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:1"
	cfg.DialTimeout = 200 * time.Millisecond

	_, err := NewClient(context.Background(), cfg)

	assert.ErrorIs(t, err, ErrConnection)
}


func TestStudentStore_LogsThroughContext(t *testing.T) {
	store, _ := setupStore(t)
	newJohn(t)
	var buf bytes.Buffer
	ctx := logger.WithContext(context.Background(),
		logger.New(logger.Options{Output: &buf, Level: logger.LevelDebug, Format: logger.FormatJSON}))

	require.NoError(t, student.SaveTo(ctx, store))

	assert.Contains(t, buf.String(), "students saved")
	assert.Contains(t, buf.String(), `"store":"redis"`)
	assert.Contains(t, buf.String(), `"count":1`)
}
