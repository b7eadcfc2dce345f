package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pjatk/academic-registry/internal/domain/student"
	"github.com/pjatk/academic-registry/pkg/logger"
)

// StudentStore implements student.Store with a Redis list. Each element is
// a students.txt line, so the file and the list hold the same text. It logs
// through the logger attached to the call context.
type StudentStore struct {
	client redis.Cmdable
	key    string
}

var _ student.Store = (*StudentStore)(nil)

// NewStudentStore creates a StudentStore on KeyStudents.
func NewStudentStore(client redis.Cmdable) *StudentStore {
	return &StudentStore{client: client, key: KeyStudents}
}

// SaveAll replaces the list with records in a single MULTI/EXEC.
func (s *StudentStore) SaveAll(ctx context.Context, records []student.Record) error {
	lines := make([]any, 0, len(records))
	for _, r := range records {
		lines = append(lines, student.FormatRecord(r))
	}

	log := logger.FromContext(ctx).With(logger.Store("redis"))
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(lines) > 0 {
			pipe.RPush(ctx, s.key, lines...)
		}
		return nil
	})
	if err != nil {
		log.Error("save students failed", logger.Err(err))
		return fmt.Errorf("redis: save students: %w", err)
	}

	log.Debug("students saved", logger.Count(len(records)))
	return nil
}

// LoadAll parses the list in order. A missing key yields no records. On a
// malformed element the records parsed before it are returned with the error.
func (s *StudentStore) LoadAll(ctx context.Context) ([]student.Record, error) {
	lines, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: load students: %w", err)
	}

	records := make([]student.Record, 0, len(lines))
	for _, line := range lines {
		r, err := student.ParseRecord(line)
		if err != nil {
			return records, err
		}
		records = append(records, r)
	}

	logger.FromContext(ctx).Debug("students loaded", logger.Store("redis"), logger.Count(len(records)))
	return records, nil
}
