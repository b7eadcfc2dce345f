package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pjatk/academic-registry/internal/domain/shared"
	"github.com/pjatk/academic-registry/internal/domain/student"
	"github.com/pjatk/academic-registry/pkg/logger"
	"github.com/pjatk/academic-registry/pkg/timeutil"
)

var studentColumns = []string{
	"position", "name", "middle_name", "surname", "email", "birth_date",
	"student_number", "account_balance", "year_of_study", "gpa",
	"current_semester", "attendance",
}

const selectStudents = `
	SELECT name, middle_name, surname, email, birth_date,
	       student_number, account_balance, year_of_study, gpa,
	       current_semester, attendance
	FROM students
	ORDER BY position`

const domain = "postgres"

// StudentStore implements student.Store over the students table. It logs
// through the logger attached to the call context.
type StudentStore struct {
	conn *Connection
}

var _ student.Store = (*StudentStore)(nil)

// NewStudentStore creates a StudentStore. The schema must be migrated.
func NewStudentStore(conn *Connection) *StudentStore {
	return &StudentStore{conn: conn}
}

// SaveAll replaces the table content with records in one transaction.
func (s *StudentStore) SaveAll(ctx context.Context, records []student.Record) error {
	log := logger.FromContext(ctx).With(logger.Store(domain))
	start := time.Now()

	err := s.conn.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "TRUNCATE students"); err != nil {
			return fmt.Errorf("truncate students: %w", err)
		}
		rows := make([][]any, 0, len(records))
		for i, r := range records {
			rows = append(rows, studentRow(i, r))
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"students"}, studentColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy students: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("save students failed", logger.Err(err))
		return err
	}

	log.Debug("students saved", logger.Count(len(records)), logger.Latency(time.Since(start)))
	return nil
}

// LoadAll reads the table in position order. A row that cannot be decoded
// is a shared.ErrParse error; the records read before it are returned with
// the error.
func (s *StudentStore) LoadAll(ctx context.Context) ([]student.Record, error) {
	rows, err := s.conn.Query(ctx, selectStudents)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var records []student.Record
	for rows.Next() {
		r, err := scanStudent(rows)
		if err != nil {
			return records, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return records, fmt.Errorf("read students: %w", err)
	}

	logger.FromContext(ctx).Debug("students loaded", logger.Store(domain), logger.Count(len(records)))
	return records, nil
}

func studentRow(position int, r student.Record) []any {
	return []any{
		position,
		r.Name,
		r.MiddleName,
		r.Surname,
		r.Email,
		r.BirthDate,
		r.StudentNumber,
		toNumeric(r.AccountBalance),
		r.YearOfStudy,
		r.GPA,
		r.CurrentSemester,
		r.Attendance,
	}
}

func scanStudent(row pgx.Row) (student.Record, error) {
	var (
		r       student.Record
		birth   time.Time
		balance pgtype.Numeric
	)
	err := row.Scan(
		&r.Name, &r.MiddleName, &r.Surname, &r.Email, &birth,
		&r.StudentNumber, &balance, &r.YearOfStudy, &r.GPA,
		&r.CurrentSemester, &r.Attendance,
	)
	if err != nil {
		return student.Record{}, shared.NewParseError(domain, "LoadAll", "",
			"cannot decode students row", err)
	}
	r.BirthDate = fromDate(birth)
	r.AccountBalance, err = fromNumeric(balance)
	if err != nil {
		return student.Record{}, err
	}
	return r, nil
}

func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func fromNumeric(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return decimal.Decimal{}, shared.NewParseError(domain, "LoadAll", "accountBalance",
			"account_balance is not a finite number", shared.ErrInvalidFormat)
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}

// fromDate moves a DATE column, decoded at UTC midnight, to local midnight
// like every other birth date in the registry.
func fromDate(t time.Time) time.Time {
	return timeutil.Date(t.Year(), t.Month(), t.Day())
}
