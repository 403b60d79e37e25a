package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/fairdesk/fairdesk-go/internal/model"
	"github.com/fairdesk/fairdesk-go/internal/repository"
)

var (
	ErrDateRequired       = errors.New("date is required")
	ErrCategoryRequired   = errors.New("category is required")
	ErrInvalidDate        = errors.New("date must be formatted as YYYY-MM-DD")
	ErrExhibitionNotFound = errors.New("exhibition not found")
)

// ExhibitionService handles exhibition business logic.
type ExhibitionService struct {
	repo *repository.ExhibitionRepository
}

// NewExhibitionService creates a new ExhibitionService.
func NewExhibitionService(repo *repository.ExhibitionRepository) *ExhibitionService {
	return &ExhibitionService{repo: repo}
}

// Create stores a new exhibition. Date and category are required.
func (s *ExhibitionService) Create(ctx context.Context, req model.ExhibitionRequest) (model.ExhibitionResponse, error) {
	if req.Date == nil || strings.TrimSpace(*req.Date) == "" {
		return model.ExhibitionResponse{}, ErrDateRequired
	}
	if req.Category == nil || strings.TrimSpace(*req.Category) == "" {
		return model.ExhibitionResponse{}, ErrCategoryRequired
	}

	date, err := ParseDate(*req.Date)
	if err != nil {
		return model.ExhibitionResponse{}, err
	}

	e := model.Exhibition{
		Date:        date,
		Category:    strings.TrimSpace(*req.Category),
		CustomerIDs: uniqueIDs(req.CustomerIDs),
	}

	if err := s.repo.Create(ctx, &e); err != nil {
		return model.ExhibitionResponse{}, err
	}

	slog.Info("exhibition created", "exhibition_id", e.ID, "category", e.Category)
	return exhibitionToResponse(e), nil
}

// Get returns a single exhibition.
func (s *ExhibitionService) Get(ctx context.Context, id int64) (model.ExhibitionResponse, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrExhibitionNotFound) {
			return model.ExhibitionResponse{}, ErrExhibitionNotFound
		}
		return model.ExhibitionResponse{}, err
	}
	return exhibitionToResponse(*e), nil
}

// List returns all exhibitions.
func (s *ExhibitionService) List(ctx context.Context) ([]model.ExhibitionResponse, error) {
	exhibitions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return exhibitionsToResponse(exhibitions), nil
}

// ListByCategory returns the exhibitions of one category.
func (s *ExhibitionService) ListByCategory(ctx context.Context, category string) ([]model.ExhibitionResponse, error) {
	exhibitions, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return exhibitionsToResponse(exhibitions), nil
}

// ListByDate returns the exhibitions taking place on date (YYYY-MM-DD).
func (s *ExhibitionService) ListByDate(ctx context.Context, date string) ([]model.ExhibitionResponse, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	exhibitions, err := s.repo.ListByDate(ctx, d)
	if err != nil {
		return nil, err
	}
	return exhibitionsToResponse(exhibitions), nil
}

// Update applies the non-nil fields of req to an existing exhibition.
func (s *ExhibitionService) Update(ctx context.Context, id int64, req model.ExhibitionRequest) (model.ExhibitionResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrExhibitionNotFound) {
			return model.ExhibitionResponse{}, ErrExhibitionNotFound
		}
		return model.ExhibitionResponse{}, err
	}

	if req.Date != nil {
		date, err := ParseDate(*req.Date)
		if err != nil {
			return model.ExhibitionResponse{}, err
		}
		existing.Date = date
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return model.ExhibitionResponse{}, ErrCategoryRequired
		}
		existing.Category = category
	}
	if req.CustomerIDs != nil {
		existing.CustomerIDs = uniqueIDs(req.CustomerIDs)
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrExhibitionNotFound) {
			return model.ExhibitionResponse{}, ErrExhibitionNotFound
		}
		return model.ExhibitionResponse{}, err
	}

	return exhibitionToResponse(*existing), nil
}

// Delete removes an exhibition.
func (s *ExhibitionService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrExhibitionNotFound) {
			return ErrExhibitionNotFound
		}
		return err
	}

	slog.Info("exhibition deleted", "exhibition_id", id)
	return nil
}

// AddCustomer registers a customer for an exhibition. Adding an already
// registered customer is a no-op.
func (s *ExhibitionService) AddCustomer(ctx context.Context, exhibitionID, customerID int64) (model.ExhibitionResponse, error) {
	if _, err := s.Get(ctx, exhibitionID); err != nil {
		return model.ExhibitionResponse{}, err
	}

	added, err := s.repo.AddCustomer(ctx, exhibitionID, customerID)
	if err != nil {
		return model.ExhibitionResponse{}, err
	}
	if added {
		slog.Info("customer registered for exhibition", "exhibition_id", exhibitionID, "customer_id", customerID)
	}

	return s.Get(ctx, exhibitionID)
}

// RemoveCustomer unregisters a customer from an exhibition. Removing a
// customer that is not registered is a no-op.
func (s *ExhibitionService) RemoveCustomer(ctx context.Context, exhibitionID, customerID int64) (model.ExhibitionResponse, error) {
	if _, err := s.Get(ctx, exhibitionID); err != nil {
		return model.ExhibitionResponse{}, err
	}

	removed, err := s.repo.RemoveCustomer(ctx, exhibitionID, customerID)
	if err != nil {
		return model.ExhibitionResponse{}, err
	}
	if removed {
		slog.Info("customer unregistered from exhibition", "exhibition_id", exhibitionID, "customer_id", customerID)
	}

	return s.Get(ctx, exhibitionID)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func exhibitionToResponse(e model.Exhibition) model.ExhibitionResponse {
	ids := e.CustomerIDs
	if ids == nil {
		ids = []int64{}
	}
	return model.ExhibitionResponse{
		ID:          e.ID,
		Date:        e.Date.Format(model.DateLayout),
		Category:    e.Category,
		CustomerIDs: ids,
	}
}

func exhibitionsToResponse(exhibitions []model.Exhibition) []model.ExhibitionResponse {
	result := make([]model.ExhibitionResponse, 0, len(exhibitions))
	for _, e := range exhibitions {
		result = append(result, exhibitionToResponse(e))
	}
	return result
}
