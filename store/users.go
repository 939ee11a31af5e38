package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"grillcity-api/models"
)

const minPasswordLength = 6

type RegisterInput struct {
	Login       string
	Password    string
	Surname     string
	FirstName   string
	Patronymic  string
	PhoneNumber string
}

// Register creates a client account. Login and phone number must be
// unique; the explicit pre-checks give precise error messages, and the
// UNIQUE constraints backstop the race between check and insert.
//
// The password is stored as given. Hashing is a tracked hardening task,
// not silently bolted on here.
func (s *Store) Register(ctx context.Context, in RegisterInput) (*models.UserProfile, error) {
	if in.Login == "" || in.Password == "" || in.Surname == "" || in.FirstName == "" || in.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: all required fields must be filled", ErrInvalidArgument)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidArgument, minPasswordLength)
	}

	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE login = ?`, in.Login).Scan(&count); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("login %q %w", in.Login, ErrConflict)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE phone_number = ?`, in.PhoneNumber).Scan(&count); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("phone number %q %w", in.PhoneNumber, ErrConflict)
	}

	var patronymic any
	if in.Patronymic != "" {
		patronymic = in.Patronymic
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (surname, first_name, patronymic, phone_number, login, password) VALUES (?, ?, ?, ?, ?, ?)`,
		in.Surname, in.FirstName, patronymic, in.PhoneNumber, in.Login, in.Password)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, fmt.Errorf("login or phone number %w", ErrConflict)
		}
		return nil, err
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{
		Message:     "registration successful",
		UserID:      int(userID),
		FullName:    fullName(in.Surname, in.FirstName, in.Patronymic),
		PhoneNumber: in.PhoneNumber,
	}, nil
}

// Authenticate matches login and password exactly, the way the desktop
// and mobile clients expect.
func (s *Store) Authenticate(ctx context.Context, login, password string) (*models.UserProfile, error) {
	var (
		id          int
		surname     string
		firstName   string
		patronymic  sql.NullString
		phoneNumber string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, surname, first_name, patronymic, phone_number FROM users WHERE login = ? AND password = ?`,
		login, password).Scan(&id, &surname, &firstName, &patronymic, &phoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{
		Message:     "authorization successful",
		UserID:      id,
		FullName:    fullName(surname, firstName, patronymic.String),
		PhoneNumber: phoneNumber,
	}, nil
}

func fullName(surname, firstName, patronymic string) string {
	parts := []string{surname, firstName}
	if patronymic != "" {
		parts = append(parts, patronymic)
	}
	return strings.Join(parts, " ")
}
