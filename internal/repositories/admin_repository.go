package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lakesideBack/internal/models"
)

type AdminRepository struct {
	DB *sql.DB
}

func (r *AdminRepository) GetAdminByUsername(ctx context.Context, username string) (models.Admin, error) {
	var admin models.Admin
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, role, created_at
		FROM admins WHERE username = ?
	`, username).Scan(&admin.ID, &admin.Username, &admin.Email, &admin.PasswordHash, &admin.Role, &admin.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, models.ErrAdminNotFound
	}
	if err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

// UpsertAdmin seeds or refreshes the admin account used to moderate reviews.
func (r *AdminRepository) UpsertAdmin(ctx context.Context, admin models.Admin) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO admins (username, email, password_hash, role, created_at)
		VALUES (?, ?, ?, 'admin', NOW())
		ON DUPLICATE KEY UPDATE email = VALUES(email), password_hash = VALUES(password_hash)
	`, admin.Username, admin.Email, admin.PasswordHash)
	return err
}

func (r *AdminRepository) CreateSession(ctx context.Context, session models.Session) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (admin_id, role, refresh_token, expires_at)
		VALUES (?, ?, ?, ?)
	`, session.AdminID, session.Role, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *AdminRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var session models.Session
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, admin_id, role, refresh_token, expires_at
		FROM sessions WHERE refresh_token = ?
	`, refreshToken).Scan(&session.ID, &session.AdminID, &session.Role, &session.RefreshToken, &session.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, nil
	}
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (r *AdminRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, now)
	return err
}
