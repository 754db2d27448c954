package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/agentcrew/core"

	// MySQL driver registered for database/sql.
	_ "github.com/go-sql-driver/mysql"
)

// SQLStore is a core.MemoryStore backed by a SQL database. Candidates are
// prefiltered in SQL with LIKE clauses, then ranked in Go with the shared
// relevance scoring. Tags are stored as a JSON array column.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore opens a MySQL connection and ensures the schema exists.
func NewSQLStore(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStoreFromDB wraps an existing connection and ensures the schema.
func NewSQLStoreFromDB(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	s := &SQLStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// memoriesSchema declares the table and its index in one statement; MySQL has
// no IF NOT EXISTS form of CREATE INDEX.
const memoriesSchema = `CREATE TABLE IF NOT EXISTS memories (
    id           BIGINT PRIMARY KEY AUTO_INCREMENT,
    content      TEXT NOT NULL,
    category     VARCHAR(64) NOT NULL DEFAULT 'general',
    tags         TEXT NOT NULL,
    source_agent VARCHAR(64),
    access_count INT NOT NULL DEFAULT 0,
    created_at   TIMESTAMP NOT NULL,
    INDEX idx_memories_category (category)
);`

func (s *SQLStore) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, memoriesSchema); err != nil {
		return fmt.Errorf("ensure memory schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error { return s.db.Close() }

// Save implements core.MemoryStore.
func (s *SQLStore) Save(ctx context.Context, content, category string, tags []string, sourceAgent string) (core.MemoryEntry, error) {
	if category == "" {
		category = "general"
	}
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return core.MemoryEntry{}, fmt.Errorf("marshal tags: %w", err)
	}
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO memories (content, category, tags, source_agent, created_at) VALUES (?, ?, ?, ?, ?)`,
		content, category, string(tagsJSON), sourceAgent, now)
	if err != nil {
		return core.MemoryEntry{}, fmt.Errorf("save memory: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.MemoryEntry{}, fmt.Errorf("save memory: %w", err)
	}

	return core.MemoryEntry{
		ID:          id,
		Content:     content,
		Category:    category,
		Tags:        tags,
		SourceAgent: sourceAgent,
		CreatedAt:   now,
	}, nil
}

// Recall implements core.MemoryStore.
func (s *SQLStore) Recall(ctx context.Context, query, category string, maxResults int) ([]core.MemoryEntry, error) {
	if maxResults <= 0 {
		maxResults = 5
	}
	words := queryWords(strings.ToLower(query))
	if len(words) > 10 {
		words = words[:10]
	}

	conditions := []string{"1=1"}
	var args []any
	if category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, category)
	}
	var likeParts []string
	for _, w := range words {
		likeParts = append(likeParts, "LOWER(content) LIKE ?")
		args = append(args, "%"+w+"%")
	}
	if len(likeParts) > 0 {
		conditions = append(conditions, "("+strings.Join(likeParts, " OR ")+")")
	}

	q := fmt.Sprintf(`SELECT id, content, category, tags, source_agent, access_count, created_at
FROM memories WHERE %s ORDER BY created_at DESC LIMIT 50`, strings.Join(conditions, " AND "))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("recall memory: %w", err)
	}
	defer rows.Close()

	var candidates []core.MemoryEntry
	for rows.Next() {
		var (
			e           core.MemoryEntry
			tagsJSON    string
			sourceAgent sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Content, &e.Category, &tagsJSON, &sourceAgent, &e.AccessCount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("recall memory: %w", err)
		}
		if sourceAgent.Valid {
			e.SourceAgent = sourceAgent.String
		}
		if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			e.Tags = nil
		}
		candidates = append(candidates, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recall memory: %w", err)
	}

	results := rank(candidates, query, maxResults)
	if len(results) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(results)), ",")
		ids := make([]any, len(results))
		for i, r := range results {
			ids[i] = r.ID
		}
		if _, err := s.db.ExecContext(ctx,
			fmt.Sprintf("UPDATE memories SET access_count = access_count + 1 WHERE id IN (%s)", placeholders),
			ids...); err != nil {
			return nil, fmt.Errorf("recall memory: %w", err)
		}
	}
	return results, nil
}
