// Package orgdb reads class arrangements and registrations from the org
// database. It is read-only.
package orgdb

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"  // pgx driver
	_ "github.com/microsoft/go-mssqldb" // sqlserver driver
	_ "modernc.org/sqlite"              // sqlite driver

	"github.com/hxeb/hxebclass/pkg/constants"
	"github.com/hxeb/hxebclass/pkg/errors"
	"github.com/hxeb/hxebclass/pkg/logging"
	"github.com/hxeb/hxebclass/pkg/roster"
)

// DB is a roster.Source backed by database/sql.
type DB struct {
	db      *sql.DB
	driver  string
	timeout time.Duration
}

var _ roster.Source = (*DB)(nil)

// Open connects to the org database and verifies the connection.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	dsn, err := cfg.DataSource()
	if err != nil {
		return nil, err
	}
	driver := cfg.DriverName()

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.NewConfigError("db", "cannot open "+driver+" database", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, constants.DefaultDBTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("connect", "database", cfg.Name, err)
	}

	logging.FromContext(ctx).Debug().
		Str("driver", driver).
		Str("database", cfg.Name).
		Msg("Connected to org database")
	return New(db, driver), nil
}

// New wraps an open database handle.
func New(db *sql.DB, driver string) *DB {
	return &DB{db: db, driver: driver, timeout: constants.DefaultDBTimeout}
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Arrangements implements roster.Source.
func (d *DB) Arrangements(ctx context.Context, q roster.Query) ([]roster.Arrangement, error) {
	if q.SeasonID == 0 {
		return nil, errors.NewValidationError("season_id", q.SeasonID, "is required")
	}

	query := arrangementsQuery
	args := []any{q.SeasonID}
	if q.ClassID != 0 {
		query += classFilter
		args = append(args, q.ClassID)
	}
	query += arrangementsOrder

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, rebind(d.driver, query), args...)
	if err != nil {
		return nil, errors.WrapResource("query", "arrangements", seasonKey(q.SeasonID), err)
	}
	defer func() { _ = rows.Close() }()

	var out []roster.Arrangement
	for rows.Next() {
		a, err := scanArrangement(rows)
		if err != nil {
			return nil, errors.WrapResource("scan", "arrangements", seasonKey(q.SeasonID), err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapResource("query", "arrangements", seasonKey(q.SeasonID), err)
	}
	return out, nil
}

// Registrations implements roster.Source.
func (d *DB) Registrations(ctx context.Context, seasonID int) ([]roster.Registration, error) {
	if seasonID == 0 {
		return nil, errors.NewValidationError("season_id", seasonID, "is required")
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, rebind(d.driver, registrationsQuery), seasonID)
	if err != nil {
		return nil, errors.WrapResource("query", "registrations", seasonKey(seasonID), err)
	}
	defer func() { _ = rows.Close() }()

	var out []roster.Registration
	for rows.Next() {
		var (
			r                          roster.Registration
			nameCn, first, last, email sql.NullString
		)
		if err := rows.Scan(&r.ArrangeID, &r.ClassID, &r.SeasonID, &r.ClassName,
			&r.StudentID, &nameCn, &first, &last, &email); err != nil {
			return nil, errors.WrapResource("scan", "registrations", seasonKey(seasonID), err)
		}
		r.StudentNameCn = nameCn.String
		r.FirstName = first.String
		r.LastName = last.String
		r.FamilyEmail = email.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapResource("query", "registrations", seasonKey(seasonID), err)
	}
	return out, nil
}

func scanArrangement(rows *sql.Rows) (roster.Arrangement, error) {
	var (
		a                                          roster.Arrangement
		nameEn, desc, room, typeName, teacherEmail sql.NullString
		typeID                                     sql.NullInt64
		fees                                       [10]sql.NullFloat64
	)
	err := rows.Scan(
		&a.ArrangeID, &a.ClassID, &a.SeasonID, &a.SeasonName, &a.ClassName,
		&nameEn, &desc, &room, &typeID, &typeName, &teacherEmail,
		&fees[0], &fees[1], &fees[2], &fees[3], &fees[4],
		&fees[5], &fees[6], &fees[7], &fees[8], &fees[9],
	)
	if err != nil {
		return a, err
	}

	a.ClassNameEn = nameEn.String
	a.Description = desc.String
	a.RoomNo = room.String
	a.TypeID = int(typeID.Int64)
	a.TypeName = typeName.String
	a.TeacherEmail = teacherEmail.String
	a.Fees = roster.Fees{
		TuitionWJ:   floatPtr(fees[0]),
		TuitionW:    floatPtr(fees[1]),
		BookFeeWJ:   floatPtr(fees[2]),
		BookFeeW:    floatPtr(fees[3]),
		SpecialFeeW: floatPtr(fees[4]),
		TuitionHJ:   floatPtr(fees[5]),
		TuitionH:    floatPtr(fees[6]),
		BookFeeHJ:   floatPtr(fees[7]),
		BookFeeH:    floatPtr(fees[8]),
		SpecialFeeH: floatPtr(fees[9]),
	}
	return a, nil
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func seasonKey(seasonID int) string {
	return "season " + strconv.Itoa(seasonID)
}
