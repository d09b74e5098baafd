package remote

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPostgres(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"insufficient privilege", &pq.Error{Code: "42501"}, KindPermissionDenied},
		{"invalid password", &pq.Error{Code: "28P01"}, KindPermissionDenied},
		{"invalid text representation", &pq.Error{Code: "22P02"}, KindInvalidArgument},
		{"not null violation", &pq.Error{Code: "23502"}, KindInvalidArgument},
		{"unique violation wrapped", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), KindInvalidArgument},
		{"connection failure", &pq.Error{Code: "08006"}, KindUnavailable},
		{"too many connections", &pq.Error{Code: "53300"}, KindUnavailable},
		{"admin shutdown", &pq.Error{Code: "57P01"}, KindUnavailable},
		{"undefined table", &pq.Error{Code: "42P01"}, KindOther},
		{"deadline", context.DeadlineExceeded, KindUnavailable},
		{"bad conn", driver.ErrBadConn, KindUnavailable},
		{"conn done", sql.ErrConnDone, KindUnavailable},
		{"dial error", &net.OpError{Op: "dial", Net: "tcp", Err: fmt.Errorf("connection refused")}, KindUnavailable},
		{"anything else", assert.AnError, KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyPostgres(tt.err))
		})
	}
}

func TestOpenPostgres_DoesNotDial(t *testing.T) {
	db, err := OpenPostgres("postgres://intake@127.0.0.1:1/enrollments?sslmode=disable")
	assert.NoError(t, err)
	w := NewPostgresWriter(db)
	assert.NoError(t, w.Close())
}
