package repository

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"slices"

	"github.com/fairdesk/fairdesk-go/internal/model"
)

var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository handles customer and credential persistence.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const insertCredentialQuery = `INSERT INTO customer_credentials (customer_id, cred_key, cred_value) VALUES (?, ?, ?)`

// Create inserts a customer with its credentials and sets the generated ID.
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO customers (name, birth, adress, phone_number) VALUES (?, ?, ?, ?)`,
		c.Name, c.Birth, c.Adress, c.PhoneNumber,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	if err := insertCredentials(ctx, tx, id, c.Credentials); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	c.ID = id
	return nil
}

// GetByID retrieves a customer and its credentials.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	query := `SELECT id, name, birth, adress, phone_number FROM customers WHERE id = ?`

	c := &model.Customer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Birth, &c.Adress, &c.PhoneNumber,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	creds, err := r.loadCredentials(ctx,
		`SELECT customer_id, cred_key, cred_value FROM customer_credentials WHERE customer_id = ?`, id)
	if err != nil {
		return nil, err
	}
	c.Credentials = creds[id]
	if c.Credentials == nil {
		c.Credentials = map[string]string{}
	}

	return c, nil
}

// List retrieves all customers ordered by ID.
func (r *CustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, birth, adress, phone_number FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Birth, &c.Adress, &c.PhoneNumber); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(customers) == 0 {
		return customers, nil
	}

	creds, err := r.loadCredentials(ctx,
		`SELECT customer_id, cred_key, cred_value FROM customer_credentials ORDER BY customer_id, cred_key`)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		customers[i].Credentials = creds[customers[i].ID]
		if customers[i].Credentials == nil {
			customers[i].Credentials = map[string]string{}
		}
	}

	return customers, nil
}

// Count returns the number of stored customers.
func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	return n, err
}

// Delete removes a customer. Its credentials are removed by the foreign key cascade.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// ReplaceCredentials swaps the whole credential map of a customer in one transaction.
func (r *CustomerRepository) ReplaceCredentials(ctx context.Context, id int64, creds map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM customers WHERE id = ? FOR UPDATE`, id).Scan(&existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCustomerNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM customer_credentials WHERE customer_id = ?`, id); err != nil {
		return err
	}

	if err := insertCredentials(ctx, tx, id, creds); err != nil {
		return err
	}

	return tx.Commit()
}

// insertCredentials writes creds in key order so statements are deterministic.
func insertCredentials(ctx context.Context, tx *sql.Tx, customerID int64, creds map[string]string) error {
	for _, key := range slices.Sorted(maps.Keys(creds)) {
		if _, err := tx.ExecContext(ctx, insertCredentialQuery, customerID, key, creds[key]); err != nil {
			return err
		}
	}
	return nil
}

// loadCredentials groups credential rows by customer ID.
func (r *CustomerRepository) loadCredentials(ctx context.Context, query string, args ...any) (map[int64]map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]map[string]string)
	for rows.Next() {
		var (
			customerID int64
			key, value string
		)
		if err := rows.Scan(&customerID, &key, &value); err != nil {
			return nil, err
		}
		if result[customerID] == nil {
			result[customerID] = make(map[string]string)
		}
		result[customerID][key] = value
	}

	return result, rows.Err()
}
