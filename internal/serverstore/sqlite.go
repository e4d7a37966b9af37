package serverstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Amreshcodee/itemhub/internal/model"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	price       REAL NOT NULL,
	category    TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash BLOB NOT NULL
);
`

// SQLiteStore implements ItemStore and UserStore on a SQLite database file.
// Items are listed in rowid order, which matches insertion order.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema. The modernc.org/sqlite driver name is "sqlite".
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) List(ctx context.Context, search string) ([]model.Item, error) {
	query := `SELECT id, name, description, price, category, created_at, updated_at
		FROM items ORDER BY rowid`
	args := []any{}

	if search != "" {
		query = `SELECT id, name, description, price, category, created_at, updated_at
			FROM items
			WHERE lower(name) LIKE ? OR lower(description) LIKE ? OR lower(category) LIKE ?
			ORDER BY rowid`
		pattern := "%" + strings.ToLower(search) + "%"
		args = []any{pattern, pattern, pattern}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Item, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	row := s.db.QueryRowContext(ctx, `SELECT id, name, description, price, category, created_at, updated_at
		FROM items WHERE id = ?`, id)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	return &it, nil
}

func (s *SQLiteStore) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	if item == nil {
		return nil, fmt.Errorf("create item: %w", ErrNilItem)
	}

	now := time.Now().UTC()
	newItem := model.Item{
		ID:          uuid.New().String(),
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO items (id, name, description, price, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		newItem.ID, newItem.Name, newItem.Description, newItem.Price, newItem.Category,
		newItem.CreatedAt.Format(time.RFC3339Nano), newItem.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	return &newItem, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id string, item *model.Item) (*model.Item, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	if item == nil {
		return nil, fmt.Errorf("update item: %w", ErrNilItem)
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := model.Item{
		ID:          id,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `UPDATE items SET name = ?, description = ?, price = ?, category = ?, updated_at = ?
		WHERE id = ?`,
		updated.Name, updated.Description, updated.Price, updated.Category,
		updated.UpdatedAt.Format(time.RFC3339Nano), id)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	return &updated, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE username = ?`, username).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if exists > 0 {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create user: hashing password: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)`,
		id, username, hash)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &model.User{ID: id, Username: username}, nil
}

func (s *SQLiteStore) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	var (
		id   string
		hash []byte
	)

	err := s.db.QueryRowContext(ctx, `SELECT id, password_hash FROM users WHERE username = ?`, username).
		Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrBadPassword
	}

	return &model.User{ID: id, Username: username}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(r rowScanner) (model.Item, error) {
	var (
		it                 model.Item
		createdAt, updated string
	)

	if err := r.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Category, &createdAt, &updated); err != nil {
		return model.Item{}, err
	}

	var err error
	if it.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return model.Item{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if it.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return model.Item{}, fmt.Errorf("parsing updated_at: %w", err)
	}

	return it, nil
}
