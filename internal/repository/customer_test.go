package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/fairdesk/fairdesk-go/internal/dbtest"
	"github.com/fairdesk/fairdesk-go/internal/model"
)

var customerColumns = []string{"id", "name", "birth", "adress", "phone_number"}

func TestCustomerRepository_Create(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customers")).
		WithArgs("Max Mustermann", "1990-05-15", "Birk Centerpark 120", "1234567890").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customer_credentials")).
		WithArgs(int64(7), "password", "$2a$10$hash").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customer_credentials")).
		WithArgs(int64(7), "username", "max.mustermann").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c := &model.Customer{
		Name:        "Max Mustermann",
		Birth:       "1990-05-15",
		Adress:      "Birk Centerpark 120",
		PhoneNumber: "1234567890",
		Credentials: map[string]string{"username": "max.mustermann", "password": "$2a$10$hash"},
	}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if c.ID != 7 {
		t.Errorf("Create() ID = %d, want 7", c.ID)
	}
}

func TestCustomerRepository_CreateRollsBackOnFailure(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customers")).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.Customer{Name: "Max Mustermann"})
	if err == nil {
		t.Fatal("Create() expected error")
	}
}

func TestCustomerRepository_GetByID(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, birth, adress, phone_number FROM customers WHERE id = ?")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(customerColumns).
			AddRow(int64(1), "Max Mustermann", "1990-05-15", "Birk Centerpark 120", "1234567890"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM customer_credentials WHERE customer_id = ?")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "cred_key", "cred_value"}).
			AddRow(int64(1), "password", "$2a$10$hash").
			AddRow(int64(1), "username", "max.mustermann"))

	c, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if c.Name != "Max Mustermann" {
		t.Errorf("GetByID() Name = %q, want %q", c.Name, "Max Mustermann")
	}
	if c.Credentials["username"] != "max.mustermann" || c.Credentials["password"] != "$2a$10$hash" {
		t.Errorf("GetByID() Credentials = %v", c.Credentials)
	}
}

func TestCustomerRepository_GetByIDWithoutCredentials(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = ?")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(customerColumns).AddRow(int64(2), "Erika Musterfrau", "", "", ""))
	mock.ExpectQuery(regexp.QuoteMeta("FROM customer_credentials")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "cred_key", "cred_value"}))

	c, err := repo.GetByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if c.Credentials == nil || len(c.Credentials) != 0 {
		t.Errorf("GetByID() Credentials = %v, want empty non-nil map", c.Credentials)
	}
}

func TestCustomerRepository_GetByIDNotFound(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = ?")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(customerColumns))

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("GetByID() error = %v, want %v", err, ErrCustomerNotFound)
	}
}

func TestCustomerRepository_List(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(customerColumns).
			AddRow(int64(1), "Max Mustermann", "", "", "").
			AddRow(int64(2), "Erika Musterfrau", "", "", ""))
	mock.ExpectQuery(regexp.QuoteMeta("FROM customer_credentials ORDER BY customer_id, cred_key")).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "cred_key", "cred_value"}).
			AddRow(int64(2), "username", "erika.musterfrau"))

	customers, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("List() returned %d customers, want 2", len(customers))
	}
	if len(customers[0].Credentials) != 0 {
		t.Errorf("customer 1 Credentials = %v, want empty", customers[0].Credentials)
	}
	if customers[1].Credentials["username"] != "erika.musterfrau" {
		t.Errorf("customer 2 Credentials = %v", customers[1].Credentials)
	}
}

func TestCustomerRepository_ListEmptySkipsCredentials(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(customerColumns))

	customers, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(customers) != 0 {
		t.Errorf("List() returned %d customers, want 0", len(customers))
	}
}

func TestCustomerRepository_Count(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM customers")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
}

func TestCustomerRepository_Delete(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM customers WHERE id = ?")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM customers WHERE id = ?")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if err := repo.Delete(context.Background(), 2); !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("Delete() error = %v, want %v", err, ErrCustomerNotFound)
	}
}

func TestCustomerRepository_ReplaceCredentials(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM customers WHERE id = ? FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM customer_credentials WHERE customer_id = ?")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customer_credentials")).
		WithArgs(int64(1), "password", "$2a$10$new").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customer_credentials")).
		WithArgs(int64(1), "username", "max.mustermann").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceCredentials(context.Background(), 1, map[string]string{
		"username": "max.mustermann",
		"password": "$2a$10$new",
	})
	if err != nil {
		t.Fatalf("ReplaceCredentials() unexpected error: %v", err)
	}
}

func TestCustomerRepository_ReplaceCredentialsNotFound(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM customers WHERE id = ? FOR UPDATE")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.ReplaceCredentials(context.Background(), 42, map[string]string{"username": "x.y"})
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("ReplaceCredentials() error = %v, want %v", err, ErrCustomerNotFound)
	}
}
