// Package main is the roster CLI. It loads the Student extent from the
// configured store, prints or edits it, and writes it back.
//
// Usage:
//
//	roster list                 print every student
//	roster add <students line>  validate, register and save one student
//	roster persons              print the persons.txt records
//	roster export               copy students.txt into the configured store
//	roster import               copy the configured store into students.txt
//	roster migrate              apply the postgres migrations
//	roster status               list the postgres migrations and when they ran
//	roster rollback             roll back the last postgres migration
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pjatk/academic-registry/config"
	"github.com/pjatk/academic-registry/internal/domain/person"
	"github.com/pjatk/academic-registry/internal/domain/student"
	"github.com/pjatk/academic-registry/internal/infrastructure/persistence/postgres"
	"github.com/pjatk/academic-registry/internal/infrastructure/persistence/redis"
	"github.com/pjatk/academic-registry/pkg/logger"
)

var errUsage = errors.New("usage: roster list|add <line>|persons|export|import|migrate|status|rollback")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "roster: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Output: os.Stderr,
		Level:  logger.ParseLevel(cfg.Observability.LogLevel),
		Format: logger.Format(cfg.Observability.LogFormat),
	}).With(logger.Component("roster"), logger.Operation(args[0]))
	ctx = logger.WithContext(ctx, log)

	if err := person.SetSchoolName(cfg.Data.SchoolName); err != nil {
		return err
	}

	app := &roster{cfg: cfg, log: log, out: out}
	defer app.close()

	switch args[0] {
	case "list":
		return app.list(ctx)
	case "add":
		if len(args) != 2 {
			return errUsage
		}
		return app.add(ctx, args[1])
	case "persons":
		return app.persons()
	case "export":
		return app.export(ctx)
	case "import":
		return app.importStudents(ctx)
	case "migrate":
		return app.migrate(ctx)
	case "status":
		return app.status(ctx)
	case "rollback":
		return app.rollback(ctx)
	default:
		return errUsage
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

type roster struct {
	cfg     *config.Config
	log     *logger.Logger
	out     io.Writer
	closers []func()
}

func (r *roster) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

func (r *roster) list(ctx context.Context) error {
	store, err := r.store(ctx)
	if err != nil {
		return err
	}
	n, err := student.LoadFrom(ctx, store)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%s: %d student(s)\n", person.SchoolName(), n)
	for _, s := range student.Extent().Items() {
		fmt.Fprintf(r.out, "%6d  %-30s  age %3d  year %d  semester %2d  gpa %.2f  attendance %3d%%  balance %s\n",
			s.StudentNumber(), s.FullName(), s.Age(), s.YearOfStudy(), s.CurrentSemester(),
			s.GPA(), s.Attendance(), s.AccountBalance().StringFixed(2))
	}
	return nil
}

func (r *roster) add(ctx context.Context, line string) error {
	store, err := r.store(ctx)
	if err != nil {
		return err
	}
	if _, err := student.LoadFrom(ctx, store); err != nil {
		return err
	}

	rec, err := student.ParseRecord(line)
	if err != nil {
		return err
	}
	if existing, taken := student.FindByStudentNumber(rec.StudentNumber); taken {
		return fmt.Errorf("student number %d is already registered to %s", rec.StudentNumber, existing.FullName())
	}
	s, err := student.FromRecord(rec)
	if err != nil {
		return err
	}

	if err := student.SaveTo(ctx, store); err != nil {
		return err
	}
	if err := person.Save(r.cfg.Data.PersonsPath()); err != nil {
		return err
	}

	r.log.Info("student added",
		logger.StudentNumber(s.StudentNumber()),
		logger.PersonID(s.ID().String()),
		logger.Count(student.Extent().Len()),
	)
	fmt.Fprintln(r.out, s.FullName())
	return nil
}

func (r *roster) persons() error {
	path := r.cfg.Data.PersonsPath()
	records, err := person.Load(path)
	if err != nil {
		return err
	}

	r.log.Debug("persons parsed", logger.Path(path), logger.Count(len(records)))
	for _, rec := range records {
		fmt.Fprintln(r.out, person.FormatRecord(rec))
	}
	return nil
}

func (r *roster) export(ctx context.Context) error {
	if r.cfg.Store == config.StoreFile {
		return errors.New("export needs REGISTRY_STORE=postgres or redis")
	}
	target, err := r.store(ctx)
	if err != nil {
		return err
	}

	path := r.cfg.Data.StudentsPath()
	if err := student.Load(path); err != nil {
		return err
	}
	if err := student.SaveTo(ctx, target); err != nil {
		return err
	}

	r.log.Info("students exported", logger.Path(path), logger.Store(string(r.cfg.Store)),
		logger.Count(student.Extent().Len()))
	return nil
}

func (r *roster) importStudents(ctx context.Context) error {
	if r.cfg.Store == config.StoreFile {
		return errors.New("import needs REGISTRY_STORE=postgres or redis")
	}
	source, err := r.store(ctx)
	if err != nil {
		return err
	}

	n, err := student.LoadFrom(ctx, source)
	if err != nil {
		return err
	}
	path := r.cfg.Data.StudentsPath()
	if err := student.Save(path); err != nil {
		return err
	}

	r.log.Info("students imported", logger.Path(path), logger.Store(string(r.cfg.Store)), logger.Count(n))
	return nil
}

func (r *roster) migrate(ctx context.Context) error {
	migrator, err := r.migrator(ctx)
	if err != nil {
		return err
	}
	if err := migrator.Migrate(ctx); err != nil {
		return err
	}
	r.log.Info("migrations applied")
	return nil
}

func (r *roster) status(ctx context.Context) error {
	migrator, err := r.migrator(ctx)
	if err != nil {
		return err
	}
	migrations, err := migrator.Status(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		applied := "pending"
		if m.IsApplied {
			applied = m.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(r.out, "%03d  %-20s  %s\n", m.Version, m.Name, applied)
	}
	return nil
}

func (r *roster) rollback(ctx context.Context) error {
	migrator, err := r.migrator(ctx)
	if err != nil {
		return err
	}
	if err := migrator.Rollback(ctx); err != nil {
		return err
	}
	r.log.Info("last migration rolled back")
	return nil
}

func (r *roster) migrator(ctx context.Context) (*postgres.Migrator, error) {
	if r.cfg.Store != config.StorePostgres {
		return nil, errors.New("migrations need REGISTRY_STORE=postgres")
	}
	conn, err := r.postgres(ctx)
	if err != nil {
		return nil, err
	}
	return postgres.NewMigrator(conn), nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STORES
// ══════════════════════════════════════════════════════════════════════════════

func (r *roster) store(ctx context.Context) (student.Store, error) {
	switch r.cfg.Store {
	case config.StorePostgres:
		conn, err := r.postgres(ctx)
		if err != nil {
			return nil, err
		}
		return postgres.NewStudentStore(conn), nil

	case config.StoreRedis:
		redisCfg, err := redis.ConfigFromURL(r.cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		client, err := redis.NewClient(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, func() { closeRedis(client, r.log) })
		return redis.NewStudentStore(client), nil

	default:
		return student.NewFileStore(r.cfg.Data.StudentsPath()), nil
	}
}

func (r *roster) postgres(ctx context.Context) (*postgres.Connection, error) {
	conn, err := postgres.NewConnectionFromURL(ctx, r.cfg.Database.URL, postgres.DefaultPoolOptions())
	if err != nil {
		return nil, err
	}
	r.closers = append(r.closers, conn.Close)
	return conn, nil
}

func closeRedis(client *goredis.Client, log *logger.Logger) {
	if err := client.Close(); err != nil {
		log.Warn("close redis", logger.Err(err))
	}
}
