package repositories

import (
	"database/sql"

	intconfig "tourbook/internal/config"
	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// AuthRecord is a user row including the password hash, for login only.
type AuthRecord struct {
	User         models.User
	PasswordHash string
}

func (r UserRepository) GetByEmail(email string) (AuthRecord, error) {
	var rec AuthRecord
	err := r.db().QueryRow(`
		SELECT id, name, email, phone, password_hash, role
		FROM users
		WHERE email = ?
		LIMIT 1
	`, email).Scan(
		&rec.User.ID,
		&rec.User.Name,
		&rec.User.Email,
		&rec.User.Phone,
		&rec.PasswordHash,
		&rec.User.Role,
	)
	if err != nil {
		return AuthRecord{}, err
	}
	return rec, nil
}

func (r UserRepository) GetByID(id domain.ID) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, email, phone, role
		FROM users
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r UserRepository) Insert(name, email, phone, passwordHash, role string) (domain.ID, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, phone, password_hash, role)
		VALUES (?, ?, ?, ?, ?)
	`, name, email, phone, passwordHash, role)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return domain.ID(id), err
}
