package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// roleRows yields a fixed list of role names, one column per row.
type roleRows struct {
	names []string
	idx   int
}

func (r *roleRows) Close()                                       {}
func (r *roleRows) Err() error                                   { return nil }
func (r *roleRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *roleRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *roleRows) Values() ([]any, error)                       { return nil, nil }
func (r *roleRows) RawValues() [][]byte                          { return nil }
func (r *roleRows) Conn() *pgx.Conn                              { return nil }

func (r *roleRows) Next() bool {
	if r.idx >= len(r.names) {
		return false
	}
	r.idx++
	return true
}

func (r *roleRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.names[r.idx-1]
	return nil
}

// fakeTx records transaction lifecycle calls. Its Query returns only the
// role names in validRoles, mimicking the lookup against the roles table.
type fakeTx struct {
	validRoles []string
	execErr    error
	execCalls  int
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execCalls++
	return pgconn.CommandTag{}, t.execErr
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return &roleRows{names: t.validRoles}, nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Conn() *pgx.Conn { return nil }

type fakeBeginner struct {
	tx *fakeTx
}

func (d *fakeBeginner) Begin(ctx context.Context) (pgx.Tx, error) { return d.tx, nil }

func TestSetUserRolesUnknownRoleRollsBack(t *testing.T) {
	tx := &fakeTx{validRoles: []string{"staff"}}

	err := setUserRoles(context.Background(), &fakeBeginner{tx: tx}, uuid.New(), []string{"staff", "bogus"})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if !tx.rolledBack {
		t.Fatal("transaction was not rolled back")
	}
	if tx.committed {
		t.Fatal("transaction must not commit on an unknown role")
	}
	if tx.execCalls != 0 {
		t.Fatalf("expected no writes before validation, got %d", tx.execCalls)
	}
}

func TestSetUserRolesExecFailureRollsBack(t *testing.T) {
	execErr := errors.New("write failed")
	tx := &fakeTx{validRoles: []string{"staff"}, execErr: execErr}

	err := setUserRoles(context.Background(), &fakeBeginner{tx: tx}, uuid.New(), []string{"staff"})
	if !errors.Is(err, execErr) {
		t.Fatalf("expected exec error, got %v", err)
	}
	if !tx.rolledBack {
		t.Fatal("transaction was not rolled back")
	}
	if tx.committed {
		t.Fatal("transaction must not commit after a failed write")
	}
}

func TestSetUserRolesCommits(t *testing.T) {
	tx := &fakeTx{validRoles: []string{"admin", "staff"}}

	err := setUserRoles(context.Background(), &fakeBeginner{tx: tx}, uuid.New(), []string{"admin", "staff"})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !tx.committed {
		t.Fatal("transaction was not committed")
	}
	if tx.rolledBack {
		t.Fatal("rollback after commit must be a no-op")
	}
	if tx.execCalls != 2 {
		t.Fatalf("expected delete plus insert, got %d exec calls", tx.execCalls)
	}
}

func TestSetUserRolesEmptyListRejected(t *testing.T) {
	tx := &fakeTx{}

	err := setUserRoles(context.Background(), &fakeBeginner{tx: tx}, uuid.New(), nil)
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if tx.committed || tx.rolledBack {
		t.Fatal("no transaction should start for an empty role list")
	}
}
