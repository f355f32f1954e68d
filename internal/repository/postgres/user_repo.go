package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventrsvp/internal/domain"
	"eventrsvp/internal/metrics"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) (err error) {
	done := metrics.ObserveDB("users_create")
	defer func() { done(err) }()

	q := `
		INSERT INTO users (username, email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = r.DB.QueryRowContext(ctx, q, u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash).Scan(&u.ID)
	if isPQCode(err, pqUniqueViolation) {
		return domain.ErrDuplicateUser
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	q := `
		SELECT id, username, email, first_name, last_name, password_hash
		FROM users
		WHERE id = $1
	`
	return r.getOne(ctx, "users_get", q, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	q := `
		SELECT id, username, email, first_name, last_name, password_hash
		FROM users
		WHERE username = $1
	`
	return r.getOne(ctx, "users_get_by_username", q, username)
}

func (r *userRepository) getOne(ctx context.Context, op, q string, arg any) (u *domain.User, err error) {
	done := metrics.ObserveDB(op)
	defer func() { done(err) }()

	u = &domain.User{}
	err = r.DB.QueryRowContext(ctx, q, arg).Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (exists bool, err error) {
	done := metrics.ObserveDB("users_exists")
	defer func() { done(err) }()

	q := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`
	err = r.DB.QueryRowContext(ctx, q, username, email).Scan(&exists)
	return exists, err
}
