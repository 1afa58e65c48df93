package repo

import (
	"context"
	"database/sql"

	"github.com/ansel1/merry"
)

var ErrNotFound = merry.New("not found")

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
}

// SnapshotRepository keeps the last state of each user's calculators.
type SnapshotRepository interface {
	LoadSnapshot(ctx context.Context, userID int, calculator string) ([]byte, error)
	SaveSnapshot(ctx context.Context, userID int, calculator string, data []byte) error
	DeleteSnapshot(ctx context.Context, userID int, calculator string) error
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, merry.Wrap(err)
}

// GetBylogin returns the id and password hash of login, or ErrNotFound.
func (r *PostgresUserRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", merry.Wrap(ErrNotFound).Appendf("login %q", login)
		}
		return 0, "", merry.Wrap(err)
	}
	return id, hash, nil
}

func (r *PostgresUserRepository) LoadSnapshot(ctx context.Context, userID int, calculator string) ([]byte, error) {
	var data []byte
	query := "SELECT data FROM calculator_snapshots WHERE user_id=$1 AND calculator=$2"
	err := r.db.QueryRowContext(ctx, query, userID, calculator).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, merry.Wrap(ErrNotFound).Appendf("snapshot %s/%d", calculator, userID)
		}
		return nil, merry.Wrap(err)
	}
	return data, nil
}

func (r *PostgresUserRepository) SaveSnapshot(ctx context.Context, userID int, calculator string, data []byte) error {
	query := `INSERT INTO calculator_snapshots (user_id, calculator, data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, calculator) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	_, err := r.db.ExecContext(ctx, query, userID, calculator, data)
	return merry.Wrap(err)
}

func (r *PostgresUserRepository) DeleteSnapshot(ctx context.Context, userID int, calculator string) error {
	query := "DELETE FROM calculator_snapshots WHERE user_id=$1 AND calculator=$2"
	_, err := r.db.ExecContext(ctx, query, userID, calculator)
	return merry.Wrap(err)
}
