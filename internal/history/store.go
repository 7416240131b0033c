// Package history persists produced recommendations in a SQLite database
// so past decisions can be listed, inspected, and aggregated. Identity
// and timestamps are assigned here, keeping the engine's output
// deterministic.
package history

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/advisor/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// Record is one stored recommendation
type Record struct {
	ID                  string
	Endpoint            string
	SourceFile          string
	Intent              models.Intent
	Confidence          float64
	Score               int
	Strategy            models.Strategy
	FitsSingleAggregate bool
	FactsJSON           string
	RecommendationJSON  string
	CreatedAt           time.Time
}

// Recommendation decodes the stored recommendation payload
func (r *Record) Recommendation() (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := json.Unmarshal([]byte(r.RecommendationJSON), &rec); err != nil {
		return nil, fmt.Errorf("decode recommendation %s: %w", r.ID, err)
	}
	return &rec, nil
}

// Stats aggregates the stored recommendations
type Stats struct {
	Total        int
	AverageScore float64
	ByStrategy   map[models.Strategy]int
	ByIntent     map[models.Intent]int
}

// Store manages the SQLite database holding recommendation history
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a Store and initializes the database. The parent
// directory is created for file-based databases; ":memory:" is
// supported for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so subsequent pragmas wait on locks; retry with
	// backoff covers concurrent initialization of the same file
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := execWithRetry(db, schemaSQL, 5, 10*time.Millisecond); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a SQL statement with exponential backoff on
// "database is locked" errors
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores one recommendation together with the facts that
// produced it and returns the assigned ID
func (s *Store) Record(rec *models.Recommendation, facts models.EndpointFacts, sourceFile string) (string, error) {
	factsJSON, err := json.Marshal(facts)
	if err != nil {
		return "", fmt.Errorf("encode facts: %w", err)
	}
	recJSON, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode recommendation: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.Exec(`
		INSERT INTO recommendations (
			id, endpoint, source_file, intent, confidence, score, strategy,
			fits_single_aggregate, facts_json, recommendation_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rec.Endpoint, sourceFile,
		string(rec.Intent.Intent), rec.Intent.Confidence, rec.Complexity.Value,
		string(rec.Strategy.Chosen), rec.Boundary.FitsSingleAggregate,
		string(factsJSON), string(recJSON), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert recommendation: %w", err)
	}

	return id, nil
}

// List returns the most recent records, newest first. A limit <= 0
// returns everything.
func (s *Store) List(limit int) ([]Record, error) {
	query := `
		SELECT id, endpoint, source_file, intent, confidence, score, strategy,
		       fits_single_aggregate, facts_json, recommendation_json, created_at
		FROM recommendations
		ORDER BY created_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var intent, strategy string
		if err := rows.Scan(&r.ID, &r.Endpoint, &r.SourceFile, &intent, &r.Confidence,
			&r.Score, &strategy, &r.FitsSingleAggregate, &r.FactsJSON,
			&r.RecommendationJSON, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		r.Intent = models.Intent(intent)
		r.Strategy = models.Strategy(strategy)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Get returns one record by ID, matching on unambiguous ID prefixes so
// short IDs from `history list` output work
func (s *Store) Get(id string) (*Record, error) {
	rows, err := s.db.Query(`
		SELECT id, endpoint, source_file, intent, confidence, score, strategy,
		       fits_single_aggregate, facts_json, recommendation_json, created_at
		FROM recommendations
		WHERE id = ? OR id LIKE ?
		LIMIT 2`, id, id+"%")
	if err != nil {
		return nil, fmt.Errorf("query recommendation: %w", err)
	}
	defer rows.Close()

	var matches []Record
	for rows.Next() {
		var r Record
		var intent, strategy string
		if err := rows.Scan(&r.ID, &r.Endpoint, &r.SourceFile, &intent, &r.Confidence,
			&r.Score, &strategy, &r.FitsSingleAggregate, &r.FactsJSON,
			&r.RecommendationJSON, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		r.Intent = models.Intent(intent)
		r.Strategy = models.Strategy(strategy)
		matches = append(matches, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("recommendation %s not found", id)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("recommendation ID %s is ambiguous", id)
	}
}

// Stats aggregates all stored recommendations
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{
		ByStrategy: make(map[models.Strategy]int),
		ByIntent:   make(map[models.Intent]int),
	}

	row := s.db.QueryRow(`SELECT COUNT(*), COALESCE(AVG(score), 0) FROM recommendations`)
	if err := row.Scan(&stats.Total, &stats.AverageScore); err != nil {
		return nil, fmt.Errorf("aggregate totals: %w", err)
	}

	rows, err := s.db.Query(`SELECT strategy, COUNT(*) FROM recommendations GROUP BY strategy`)
	if err != nil {
		return nil, fmt.Errorf("aggregate strategies: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var strategy string
		var count int
		if err := rows.Scan(&strategy, &count); err != nil {
			return nil, fmt.Errorf("scan strategy count: %w", err)
		}
		stats.ByStrategy[models.Strategy(strategy)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	intentRows, err := s.db.Query(`SELECT intent, COUNT(*) FROM recommendations GROUP BY intent`)
	if err != nil {
		return nil, fmt.Errorf("aggregate intents: %w", err)
	}
	defer intentRows.Close()
	for intentRows.Next() {
		var intent string
		var count int
		if err := intentRows.Scan(&intent, &count); err != nil {
			return nil, fmt.Errorf("scan intent count: %w", err)
		}
		stats.ByIntent[models.Intent(intent)] = count
	}
	return stats, intentRows.Err()
}

// Clear deletes records older than the given number of days and returns
// the number deleted. days <= 0 deletes everything.
func (s *Store) Clear(days int) (int64, error) {
	var result sql.Result
	var err error

	if days <= 0 {
		result, err = s.db.Exec(`DELETE FROM recommendations`)
	} else {
		cutoff := time.Now().UTC().AddDate(0, 0, -days)
		result, err = s.db.Exec(`DELETE FROM recommendations WHERE created_at < ?`, cutoff)
	}
	if err != nil {
		return 0, fmt.Errorf("delete recommendations: %w", err)
	}

	return result.RowsAffected()
}
