package repository

import (
	"context"
	"database/sql"
	"errors"

	"grameengo/backend/internal/user/domain"
)

const userColumns = `id, email, name, password_hash, role, picture, phone, nid, address, business_name, business_type, created_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail returns the user with the given email, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Create persists the user to the database. The user must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, picture, phone, nid, address, business_name, business_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		u.ID, u.Email, u.Name,
		nullString(u.PasswordHash), string(u.Role),
		nullString(u.Picture), nullString(u.Phone), nullString(u.NID),
		nullString(u.Address), nullString(u.BusinessName), nullString(u.BusinessType),
		u.CreatedAt,
	)
	return err
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var role string
	var passwordHash, picture, phone, nid, address, businessName, businessType sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.Name, &passwordHash, &role, &picture, &phone, &nid, &address, &businessName, &businessType, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Role = domain.Role(role)
	u.PasswordHash = passwordHash.String
	u.Picture = picture.String
	u.Phone = phone.String
	u.NID = nid.String
	u.Address = address.String
	u.BusinessName = businessName.String
	u.BusinessType = businessType.String
	return &u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
