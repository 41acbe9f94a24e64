package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
)

const candidateColumns = `id, name, phone, position, email, branch, campaign, contact_time, city,
    has_experience, job_title, experience_description, currently_working, transportation,
    extensions, status, notes, cv_url, is_deleted_by_app, created_at`

// DB is the Postgres-backed candidate store.
type DB struct {
	connection *sql.DB
	logger     *zap.Logger
}

var _ Store = (*DB)(nil)

func NewDB(dataSourceName string, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return NewDBFromConn(db, logger), nil
}

// NewDBFromConn wraps an already opened connection.
func NewDBFromConn(conn *sql.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{connection: conn, logger: logger}
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		db.logger.Warn("Error closing the database connection", zap.Error(err))
	}
}

// List returns every candidate, soft-deleted ones included.
func (db *DB) List(ctx context.Context, order Order) ([]Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY ` + orderClause(order)
	return db.query(ctx, query)
}

// ListByPosition returns the candidates of one tab, newest first.
func (db *DB) ListByPosition(ctx context.Context, position string) ([]Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE position = $1 ORDER BY created_at DESC, id`
	return db.query(ctx, query, position)
}

func (db *DB) Get(ctx context.Context, id string) (*Candidate, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	c, err := scanCandidate(db.connection.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (db *DB) Create(ctx context.Context, c Candidate) (*Candidate, error) {
	created, err := db.BulkCreate(ctx, []Candidate{c})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// BulkCreate inserts all candidates in one transaction; either all rows are
// stored or none.
func (db *DB) BulkCreate(ctx context.Context, cs []Candidate) ([]Candidate, error) {
	if len(cs) == 0 {
		return nil, nil
	}

	tx, err := db.connection.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin bulk create: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO candidates (`+candidateColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW())
        RETURNING created_at`)
	if err != nil {
		return nil, fmt.Errorf("prepare bulk create: %w", err)
	}
	defer stmt.Close()

	out := make([]Candidate, 0, len(cs))
	for _, c := range cs {
		c = c.Clone()
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Status == "" {
			c.Status = StatusNotHandled
		}
		ext, err := marshalExtensions(c.Extensions)
		if err != nil {
			return nil, err
		}
		err = stmt.QueryRowContext(ctx,
			c.ID, c.Name, c.Phone, c.Position, c.Email, c.Branch, c.Campaign, c.ContactTime, c.City,
			c.HasExperience, c.JobTitle, c.ExperienceDescription, c.CurrentlyWorking, c.Transportation,
			ext, string(c.Status), c.Notes, c.CVURL, c.IsDeletedByApp,
		).Scan(&c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert candidate %q: %w", c.Name, err)
		}
		out = append(out, c)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bulk create: %w", err)
	}
	return out, nil
}

// Update applies a partial update and returns the stored row.
func (db *DB) Update(ctx context.Context, id string, u Update) (*Candidate, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	if u.Empty() {
		return db.Get(ctx, id)
	}

	var sets []string
	var args []interface{}
	i := 1
	set := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, i))
		args = append(args, value)
		i++
	}

	if u.Sheet != nil {
		for _, f := range SheetFieldOrder {
			set(string(f), u.Sheet.Get(f))
		}
		ext, err := marshalExtensions(u.Sheet.Extensions)
		if err != nil {
			return nil, err
		}
		set("extensions", ext)
	}
	if u.Notes != nil {
		set("notes", *u.Notes)
	}
	if u.CVURL != nil {
		set("cv_url", *u.CVURL)
	}
	if u.Email != nil {
		set("email", *u.Email)
	}
	if u.Status != nil {
		set("status", string(*u.Status))
	}
	if u.IsDeletedByApp != nil {
		set("is_deleted_by_app", *u.IsDeletedByApp)
	}

	query := fmt.Sprintf(`UPDATE candidates SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), i, candidateColumns)
	args = append(args, id)

	c, err := scanCandidate(db.connection.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (db *DB) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res, err := db.connection.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) query(ctx context.Context, query string, args ...interface{}) ([]Candidate, error) {
	rows, err := db.connection.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *c)
	}
	return res, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCandidate(row rowScanner) (*Candidate, error) {
	var c Candidate
	var ext []byte
	var status string
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Position, &c.Email, &c.Branch, &c.Campaign, &c.ContactTime, &c.City,
		&c.HasExperience, &c.JobTitle, &c.ExperienceDescription, &c.CurrentlyWorking, &c.Transportation,
		&ext, &status, &c.Notes, &c.CVURL, &c.IsDeletedByApp, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = Status(status)
	if len(ext) > 0 {
		if err := json.Unmarshal(ext, &c.Extensions); err != nil {
			return nil, fmt.Errorf("decode extensions of %s: %w", c.ID, err)
		}
		if len(c.Extensions) == 0 {
			c.Extensions = nil
		}
	}
	return &c, nil
}

func marshalExtensions(ext map[string]string) ([]byte, error) {
	if len(ext) == 0 {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(ext)
	if err != nil {
		return nil, fmt.Errorf("encode extensions: %w", err)
	}
	return b, nil
}

// validID reports whether id fits the UUID primary key.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func orderClause(order Order) string {
	if order == OrderCreatedDesc {
		return "created_at DESC, id"
	}
	return "created_at ASC, id"
}
