package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fairdesk/fairdesk-go/internal/model"
)

var ErrExhibitionNotFound = errors.New("exhibition not found")

// ExhibitionRepository handles exhibition persistence operations.
type ExhibitionRepository struct {
	db *sql.DB
}

// NewExhibitionRepository creates a new ExhibitionRepository.
func NewExhibitionRepository(db *sql.DB) *ExhibitionRepository {
	return &ExhibitionRepository{db: db}
}

const selectExhibitions = `SELECT id, exhibition_date, category FROM exhibitions`

// Create inserts an exhibition with its customer list and sets the generated ID.
func (r *ExhibitionRepository) Create(ctx context.Context, e *model.Exhibition) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO exhibitions (exhibition_date, category) VALUES (?, ?)`,
		e.Date.Format(model.DateLayout), e.Category,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	if err := insertExhibitionCustomers(ctx, tx, id, e.CustomerIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	e.ID = id
	return nil
}

// GetByID retrieves an exhibition and its customer IDs.
func (r *ExhibitionRepository) GetByID(ctx context.Context, id int64) (*model.Exhibition, error) {
	exhibitions, err := r.list(ctx, selectExhibitions+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(exhibitions) == 0 {
		return nil, ErrExhibitionNotFound
	}
	return &exhibitions[0], nil
}

// List retrieves all exhibitions ordered by ID.
func (r *ExhibitionRepository) List(ctx context.Context) ([]model.Exhibition, error) {
	return r.list(ctx, selectExhibitions+` ORDER BY id`)
}

// ListByCategory retrieves all exhibitions of the given category.
func (r *ExhibitionRepository) ListByCategory(ctx context.Context, category string) ([]model.Exhibition, error) {
	return r.list(ctx, selectExhibitions+` WHERE category = ? ORDER BY id`, category)
}

// ListByDate retrieves all exhibitions held on the given day.
func (r *ExhibitionRepository) ListByDate(ctx context.Context, date time.Time) ([]model.Exhibition, error) {
	return r.list(ctx, selectExhibitions+` WHERE exhibition_date = ? ORDER BY id`, date.Format(model.DateLayout))
}

// Update overwrites date, category and customer list of an existing exhibition.
func (r *ExhibitionRepository) Update(ctx context.Context, e *model.Exhibition) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE exhibitions SET exhibition_date = ?, category = ? WHERE id = ?`,
		e.Date.Format(model.DateLayout), e.Category, e.ID,
	)
	if err != nil {
		return err
	}

	// MySQL reports zero affected rows for a no-op update, so check existence separately.
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		var existing int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM exhibitions WHERE id = ?`, e.ID).Scan(&existing)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrExhibitionNotFound
		}
		if err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM exhibition_customers WHERE exhibition_id = ?`, e.ID); err != nil {
		return err
	}

	if err := insertExhibitionCustomers(ctx, tx, e.ID, e.CustomerIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an exhibition and, via cascade, its customer registrations.
func (r *ExhibitionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM exhibitions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrExhibitionNotFound
	}

	return nil
}

// AddCustomer registers a customer for an exhibition. It reports whether a
// new registration was created; an existing one is left untouched.
func (r *ExhibitionRepository) AddCustomer(ctx context.Context, exhibitionID, customerID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO exhibition_customers (exhibition_id, customer_id) VALUES (?, ?)`,
		exhibitionID, customerID,
	)
	if err != nil {
		return false, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RemoveCustomer unregisters a customer and reports whether a registration existed.
func (r *ExhibitionRepository) RemoveCustomer(ctx context.Context, exhibitionID, customerID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM exhibition_customers WHERE exhibition_id = ? AND customer_id = ?`,
		exhibitionID, customerID,
	)
	if err != nil {
		return false, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ExhibitionRepository) list(ctx context.Context, query string, args ...any) ([]model.Exhibition, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exhibitions []model.Exhibition
	for rows.Next() {
		var e model.Exhibition
		if err := rows.Scan(&e.ID, &e.Date, &e.Category); err != nil {
			return nil, err
		}
		exhibitions = append(exhibitions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(exhibitions) == 0 {
		return exhibitions, nil
	}

	ids := make([]int64, len(exhibitions))
	for i, e := range exhibitions {
		ids[i] = e.ID
	}

	customers, err := r.loadCustomerIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range exhibitions {
		exhibitions[i].CustomerIDs = customers[exhibitions[i].ID]
		if exhibitions[i].CustomerIDs == nil {
			exhibitions[i].CustomerIDs = []int64{}
		}
	}

	return exhibitions, nil
}

// loadCustomerIDs returns the registered customers per exhibition in registration order.
func (r *ExhibitionRepository) loadCustomerIDs(ctx context.Context, exhibitionIDs []int64) (map[int64][]int64, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(exhibitionIDs)), ",")
	args := make([]any, len(exhibitionIDs))
	for i, id := range exhibitionIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT exhibition_id, customer_id FROM exhibition_customers WHERE exhibition_id IN (`+placeholders+`) ORDER BY id`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]int64)
	for rows.Next() {
		var exhibitionID, customerID int64
		if err := rows.Scan(&exhibitionID, &customerID); err != nil {
			return nil, err
		}
		result[exhibitionID] = append(result[exhibitionID], customerID)
	}

	return result, rows.Err()
}

func insertExhibitionCustomers(ctx context.Context, tx *sql.Tx, exhibitionID int64, customerIDs []int64) error {
	for _, customerID := range customerIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT IGNORE INTO exhibition_customers (exhibition_id, customer_id) VALUES (?, ?)`,
			exhibitionID, customerID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
