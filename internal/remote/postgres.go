package remote

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"

	"github.com/aanand-mishra/enrollment-intake/internal/types"
)

// PostgresWriter inserts enrollments straight into the central PostgreSQL
// database. The enrollments table belongs to the remote service; the
// writer only relies on these columns:
//
//	id                 any type castable to text, generated by the database
//	record             JSONB
//	child_national_id  TEXT
//	status             TEXT
//	captured_at        TIMESTAMPTZ
//	submitted_at       TIMESTAMPTZ, stamped by the server with now()
type PostgresWriter struct {
	db *sql.DB
}

// OpenPostgres opens a lib/pq connection pool for dsn.
// sql.Open does not dial; the first write does.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("remote.OpenPostgres: open db: %w", err)
	}
	return db, nil
}

// NewPostgresWriter wraps an open database handle.
func NewPostgresWriter(db *sql.DB) *PostgresWriter {
	return &PostgresWriter{db: db}
}

// WriteRecord inserts rec and returns the generated row id.
func (w *PostgresWriter) WriteRecord(ctx context.Context, rec types.EnrollmentRecord, meta types.Metadata) (string, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", NewError(KindInvalidArgument, "encode record", err)
	}

	var id string
	err = w.db.QueryRowContext(ctx, `
		INSERT INTO enrollments (record, child_national_id, status, captured_at, submitted_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id::text`,
		payload, rec.ChildNationalID, meta.Status, meta.CapturedAt,
	).Scan(&id)
	if err != nil {
		return "", NewError(classifyPostgres(err), "insert enrollment", err)
	}
	return id, nil
}

// Close releases the connection pool.
func (w *PostgresWriter) Close() error {
	return w.db.Close()
}

// classifyPostgres maps driver and server errors onto Kind using the
// SQLSTATE class of *pq.Error.
func classifyPostgres(err error) Kind {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch class := pqErr.Code.Class(); {
		case pqErr.Code == "42501", class == "28":
			return KindPermissionDenied
		case class == "22", class == "23":
			return KindInvalidArgument
		case class == "08", class == "53", class == "57":
			return KindUnavailable
		default:
			return KindOther
		}
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.As(err, &netErr):
		return KindUnavailable
	default:
		return KindOther
	}
}
