package repo

import (
	"context"
	"database/sql"

	"github.com/sidelines/sidelines/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `user_id, username, email, password_hash, profile_picture, age, is_admin, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	var picture sql.NullString
	var age sql.NullInt64
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&picture,
		&age,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	if picture.Valid {
		user.ProfilePicture = &picture.String
	}
	if age.Valid {
		a := int(age.Int64)
		user.Age = &a
	}
	return user, nil
}

// ==========================
// Create User
// ==========================

// Create inserts the user and returns its id. A taken email surfaces as ErrDuplicate
// through the users_email_key unique index.
func (r *UserRepo) Create(ctx context.Context, user *models.User) (int, error) {
	query := `
		INSERT INTO users (username, email, password_hash, profile_picture, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id
	`

	var picture any
	if user.ProfilePicture != nil && *user.ProfilePicture != "" {
		picture = *user.ProfilePicture
	}

	var id int
	err := r.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, picture, user.IsAdmin,
	).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, id))
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, email))
}

// ==========================
// Grant Admin
// ==========================
func (r *UserRepo) SetAdmin(ctx context.Context, id int, admin bool) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET is_admin = $1 WHERE user_id = $2`, admin, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
