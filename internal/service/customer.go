package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fairdesk/fairdesk-go/internal/model"
	"github.com/fairdesk/fairdesk-go/internal/repository"
)

var (
	ErrNameRequired        = errors.New("name is required")
	ErrCredentialsRequired = errors.New("credentials are required")
	ErrCustomerNotFound    = errors.New("customer not found")
)

// defaultCustomer is created on first start so a fresh deployment has a
// customer to generate credentials for.
var defaultCustomer = model.Customer{
	Name:        "Max Mustermann",
	Birth:       "1990-05-15",
	Adress:      "Birk Centerpark 120",
	PhoneNumber: "1234567890",
}

// CustomerService handles customer business logic.
type CustomerService struct {
	repo *repository.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// Create stores a new customer.
func (s *CustomerService) Create(ctx context.Context, req model.CustomerRequest) (model.CustomerResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.CustomerResponse{}, ErrNameRequired
	}

	c := model.Customer{
		Name:        name,
		Birth:       req.Birth,
		Adress:      req.Adress,
		PhoneNumber: req.PhoneNumber,
		Credentials: map[string]string{},
	}

	if err := s.repo.Create(ctx, &c); err != nil {
		return model.CustomerResponse{}, err
	}

	slog.Info("customer created", "customer_id", c.ID)
	return customerToResponse(c), nil
}

// Get returns a single customer including its credential map.
func (s *CustomerService) Get(ctx context.Context, id int64) (model.CustomerResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return model.CustomerResponse{}, ErrCustomerNotFound
		}
		return model.CustomerResponse{}, err
	}
	return customerToResponse(*c), nil
}

// List returns all customers.
func (s *CustomerService) List(ctx context.Context) ([]model.CustomerResponse, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		result = append(result, customerToResponse(c))
	}
	return result, nil
}

// Delete removes a customer.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}

	slog.Info("customer deleted", "customer_id", id)
	return nil
}

// ReplaceCredentials overwrites the credential map of a customer and returns
// the updated customer.
func (s *CustomerService) ReplaceCredentials(ctx context.Context, id int64, req model.CredentialUpdateRequest) (model.CustomerResponse, error) {
	if req.Credentials == nil {
		return model.CustomerResponse{}, ErrCredentialsRequired
	}

	if err := s.repo.ReplaceCredentials(ctx, id, req.Credentials); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return model.CustomerResponse{}, ErrCustomerNotFound
		}
		return model.CustomerResponse{}, err
	}

	slog.Info("customer credentials replaced", "customer_id", id, "keys", len(req.Credentials))
	return s.Get(ctx, id)
}

// SeedDefaults inserts the default customer when no customers exist yet.
func (s *CustomerService) SeedDefaults(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	c := defaultCustomer
	c.Credentials = map[string]string{}
	if err := s.repo.Create(ctx, &c); err != nil {
		return err
	}

	slog.Info("default customer seeded", "customer_id", c.ID, "name", c.Name)
	return nil
}

func customerToResponse(c model.Customer) model.CustomerResponse {
	creds := c.Credentials
	if creds == nil {
		creds = map[string]string{}
	}
	return model.CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Birth:       c.Birth,
		Adress:      c.Adress,
		PhoneNumber: c.PhoneNumber,
		Credentials: creds,
	}
}
