package store

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestRegister_Success(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE login = ?`)).
		WithArgs("ivanov").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE phone_number = ?`)).
		WithArgs("+79990001122").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (surname, first_name, patronymic, phone_number, login, password) VALUES (?, ?, ?, ?, ?, ?)`)).
		WithArgs("Ivanov", "Ivan", "Ivanovich", "+79990001122", "ivanov", "secret1").
		WillReturnResult(sqlmock.NewResult(12, 1))

	profile, err := s.Register(context.Background(), RegisterInput{
		Login:       "ivanov",
		Password:    "secret1",
		Surname:     "Ivanov",
		FirstName:   "Ivan",
		Patronymic:  "Ivanovich",
		PhoneNumber: "+79990001122",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if profile.UserID != 12 {
		t.Fatalf("user id = %d, want 12", profile.UserID)
	}
	if profile.FullName != "Ivanov Ivan Ivanovich" {
		t.Fatalf("full name = %q", profile.FullName)
	}
	expectationsMet(t, mock)
}

func TestRegister_NoPatronymic(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE login = ?`)).
		WithArgs("petrov").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE phone_number = ?`)).
		WithArgs("+79990003344").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (surname, first_name, patronymic, phone_number, login, password) VALUES (?, ?, ?, ?, ?, ?)`)).
		WithArgs("Petrov", "Petr", nil, "+79990003344", "petrov", "secret1").
		WillReturnResult(sqlmock.NewResult(13, 1))

	profile, err := s.Register(context.Background(), RegisterInput{
		Login:       "petrov",
		Password:    "secret1",
		Surname:     "Petrov",
		FirstName:   "Petr",
		PhoneNumber: "+79990003344",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if profile.FullName != "Petrov Petr" {
		t.Fatalf("full name = %q, want without patronymic", profile.FullName)
	}
	expectationsMet(t, mock)
}

func TestRegister_Validation(t *testing.T) {
	s, mock := newMockStore(t)

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"missing login", RegisterInput{Password: "secret1", Surname: "A", FirstName: "B", PhoneNumber: "+7"}},
		{"missing password", RegisterInput{Login: "a", Surname: "A", FirstName: "B", PhoneNumber: "+7"}},
		{"missing surname", RegisterInput{Login: "a", Password: "secret1", FirstName: "B", PhoneNumber: "+7"}},
		{"missing phone", RegisterInput{Login: "a", Password: "secret1", Surname: "A", FirstName: "B"}},
		{"short password", RegisterInput{Login: "a", Password: "12345", Surname: "A", FirstName: "B", PhoneNumber: "+7"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Register(context.Background(), tc.in); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
	expectationsMet(t, mock)
}

func TestRegister_LoginTaken(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE login = ?`)).
		WithArgs("ivanov").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := s.Register(context.Background(), RegisterInput{
		Login: "ivanov", Password: "secret1", Surname: "A", FirstName: "B", PhoneNumber: "+7",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "ivanov") {
		t.Fatalf("login not named in error: %v", err)
	}
	expectationsMet(t, mock)
}

func TestRegister_PhoneTaken(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE login = ?`)).
		WithArgs("ivanov").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE phone_number = ?`)).
		WithArgs("+79990001122").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := s.Register(context.Background(), RegisterInput{
		Login: "ivanov", Password: "secret1", Surname: "A", FirstName: "B", PhoneNumber: "+79990001122",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	expectationsMet(t, mock)
}

// The UNIQUE constraints catch the race between the pre-checks and the
// insert; a duplicate-key error still maps to a conflict.
func TestRegister_DuplicateKeyRace(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE login = ?`)).
		WithArgs("ivanov").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE phone_number = ?`)).
		WithArgs("+79990001122").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (surname, first_name, patronymic, phone_number, login, password) VALUES (?, ?, ?, ?, ?, ?)`)).
		WithArgs("Ivanov", "Ivan", nil, "+79990001122", "ivanov", "secret1").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := s.Register(context.Background(), RegisterInput{
		Login: "ivanov", Password: "secret1", Surname: "Ivanov", FirstName: "Ivan", PhoneNumber: "+79990001122",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestAuthenticate_Success(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, surname, first_name, patronymic, phone_number FROM users WHERE login = ? AND password = ?`)).
		WithArgs("ivanov", "secret1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "surname", "first_name", "patronymic", "phone_number"}).
			AddRow(12, "Ivanov", "Ivan", nil, "+79990001122"))

	profile, err := s.Authenticate(context.Background(), "ivanov", "secret1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if profile.UserID != 12 || profile.FullName != "Ivanov Ivan" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	expectationsMet(t, mock)
}

func TestAuthenticate_WrongCredentials(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, surname, first_name, patronymic, phone_number FROM users WHERE login = ? AND password = ?`)).
		WithArgs("ivanov", "wrong").
		WillReturnRows(sqlmock.NewRows([]string{"id", "surname", "first_name", "patronymic", "phone_number"}))

	_, err := s.Authenticate(context.Background(), "ivanov", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	expectationsMet(t, mock)
}
