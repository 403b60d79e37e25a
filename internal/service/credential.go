package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fairdesk/fairdesk-go/internal/credential"
	"github.com/fairdesk/fairdesk-go/internal/middleware"
	"github.com/fairdesk/fairdesk-go/internal/model"
)

var (
	// ErrExternalService reports a failed call to the customer store.
	ErrExternalService   = errors.New("customer store unavailable")
	ErrInvalidCustomerID = fmt.Errorf("%w: customerId must be positive", credential.ErrInvalidArgument)

	// ErrUnusableCustomerName reports a stored customer name that no
	// username can be derived from. The caller did not supply it.
	ErrUnusableCustomerName = errors.New("stored customer name cannot form a username")
)

// CustomerStore is the part of the customer service the credential
// service depends on.
type CustomerStore interface {
	GetCustomer(ctx context.Context, id int64) (*model.CustomerResponse, error)
	UpdateCredentials(ctx context.Context, id int64, creds map[string]string) (*model.CustomerResponse, error)
}

// NameSource selects where Generate takes the customer's full name from.
type NameSource int

const (
	// NameFromStore looks the name up in the customer store.
	NameFromStore NameSource = iota
	// NameFromRequest uses the name supplied with the request.
	NameFromRequest
)

// CredentialService generates, stores and verifies customer credentials.
type CredentialService struct {
	generator      *credential.Generator
	hasher         *credential.Hasher
	store          CustomerStore
	nameSource     NameSource
	passwordLength int
}

// NewCredentialService creates a new CredentialService.
func NewCredentialService(generator *credential.Generator, hasher *credential.Hasher, store CustomerStore, nameSource NameSource, passwordLength int) *CredentialService {
	if passwordLength <= 0 {
		passwordLength = credential.DefaultPasswordLength
	}
	return &CredentialService{
		generator:      generator,
		hasher:         hasher,
		store:          store,
		nameSource:     nameSource,
		passwordLength: passwordLength,
	}
}

// Generate creates a username and password for a customer, stores the
// username and password hash in the customer store and returns the
// plaintext password to the caller.
func (s *CredentialService) Generate(ctx context.Context, req model.CredentialRequest) (model.CredentialResponse, error) {
	if req.CustomerID <= 0 {
		return model.CredentialResponse{}, ErrInvalidCustomerID
	}

	logger := s.logger(ctx).With("customer_id", req.CustomerID)

	fullName := req.FullName
	if s.nameSource == NameFromStore {
		customer, err := s.store.GetCustomer(ctx, req.CustomerID)
		if err != nil {
			logger.Error("customer lookup failed", "error", err)
			return model.CredentialResponse{}, fmt.Errorf("%w: %w", ErrExternalService, err)
		}
		fullName = customer.Name
	}

	username, err := s.generator.Username(fullName)
	if err != nil {
		if s.nameSource == NameFromStore {
			logger.Error("stored customer name rejected", "error", err)
			return model.CredentialResponse{}, fmt.Errorf("%w: %v", ErrUnusableCustomerName, err)
		}
		return model.CredentialResponse{}, err
	}

	password, err := s.generator.Password(s.passwordLength)
	if err != nil {
		return model.CredentialResponse{}, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return model.CredentialResponse{}, err
	}

	creds := map[string]string{
		model.CredentialUsername: username,
		model.CredentialPassword: hashed,
	}
	if _, err := s.store.UpdateCredentials(ctx, req.CustomerID, creds); err != nil {
		logger.Error("credential update failed", "error", err)
		return model.CredentialResponse{}, fmt.Errorf("%w: %w", ErrExternalService, err)
	}

	logger.Info("credentials generated", "username", username)

	return model.CredentialResponse{
		Username:       username,
		Password:       password,
		HashedPassword: hashed,
	}, nil
}

// Verify reports whether rawPassword matches the stored password hash of the
// customer. Every failure, including an unknown customer or an unreachable
// store, yields false.
func (s *CredentialService) Verify(ctx context.Context, req model.PasswordVerificationRequest) bool {
	logger := s.logger(ctx).With("customer_id", req.CustomerID)

	customer, err := s.store.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		logger.Warn("verification lookup failed", "error", err)
		return false
	}

	hashed, ok := customer.Credentials[model.CredentialPassword]
	if !ok || hashed == "" {
		logger.Info("verification failed", "reason", "no stored password")
		return false
	}

	valid := s.hasher.Verify(req.RawPassword, hashed)
	logger.Info("password verified", "valid", valid)
	return valid
}

func (s *CredentialService) logger(ctx context.Context) *slog.Logger {
	if requestID, ok := middleware.RequestIDFromContext(ctx); ok {
		return slog.With("request_id", requestID)
	}
	return slog.Default()
}
