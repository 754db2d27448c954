package memory

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stmtRecorder is a minimal database/sql driver that records executed
// statements, so the store's SQL can be exercised without a server.
type stmtRecorder struct {
	mu    sync.Mutex
	execs []string
}

func (r *stmtRecorder) executed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.execs))
	copy(out, r.execs)
	return out
}

func (r *stmtRecorder) Connect(context.Context) (driver.Conn, error) { return recConn{rec: r}, nil }
func (r *stmtRecorder) Driver() driver.Driver                        { return recDriver{rec: r} }

type recDriver struct{ rec *stmtRecorder }

func (d recDriver) Open(string) (driver.Conn, error) { return recConn{rec: d.rec}, nil }

type recConn struct{ rec *stmtRecorder }

func (c recConn) Prepare(query string) (driver.Stmt, error) {
	return recStmt{rec: c.rec, query: query}, nil
}
func (recConn) Close() error              { return nil }
func (recConn) Begin() (driver.Tx, error) { return nil, driver.ErrSkip }

type recStmt struct {
	rec   *stmtRecorder
	query string
}

func (recStmt) Close() error   { return nil }
func (recStmt) NumInput() int  { return -1 }
func (s recStmt) Exec([]driver.Value) (driver.Result, error) {
	s.rec.mu.Lock()
	s.rec.execs = append(s.rec.execs, s.query)
	s.rec.mu.Unlock()
	return recResult{}, nil
}
func (recStmt) Query([]driver.Value) (driver.Rows, error) { return nil, driver.ErrSkip }

type recResult struct{}

func (recResult) LastInsertId() (int64, error) { return 1, nil }
func (recResult) RowsAffected() (int64, error) { return 1, nil }

func newRecordedStore(t *testing.T) (*SQLStore, *stmtRecorder) {
	t.Helper()
	rec := &stmtRecorder{}
	db := sql.OpenDB(rec)
	t.Cleanup(func() { db.Close() })

	store, err := NewSQLStoreFromDB(context.Background(), db)
	require.NoError(t, err)
	return store, rec
}

func TestSQLStore_SchemaIsOneCreateTable(t *testing.T) {
	_, rec := newRecordedStore(t)

	execs := rec.executed()
	require.Len(t, execs, 1)
	assert.Contains(t, execs[0], "CREATE TABLE IF NOT EXISTS memories")
	assert.Contains(t, execs[0], "INDEX idx_memories_category (category)")
	// MySQL rejects a standalone CREATE INDEX IF NOT EXISTS
	assert.NotContains(t, execs[0], "CREATE INDEX")
}

func TestSQLStore_Save(t *testing.T) {
	store, rec := newRecordedStore(t)

	entry, err := store.Save(context.Background(), "channels deadlock fix", "", []string{"golang"}, "thinker")
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.ID)
	assert.Equal(t, "general", entry.Category)
	assert.Equal(t, []string{"golang"}, entry.Tags)
	assert.Equal(t, "thinker", entry.SourceAgent)

	execs := rec.executed()
	require.Len(t, execs, 2)
	assert.Contains(t, execs[1], "INSERT INTO memories")
}
