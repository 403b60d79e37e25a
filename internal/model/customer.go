package model

// Credential map keys shared by the customer and credential services.
const (
	CredentialUsername = "username"
	CredentialPassword = "password"
)

// Customer represents a customer in the database.
type Customer struct {
	ID          int64
	Name        string
	Birth       string
	Adress      string
	PhoneNumber string
	Credentials map[string]string
}

// CustomerRequest represents a customer creation request. Credentials are
// not accepted here; they are only written through the credential update.
type CustomerRequest struct {
	Name        string `json:"name"`
	Birth       string `json:"birth"`
	Adress      string `json:"adress"`
	PhoneNumber string `json:"phoneNumber"`
}

// CustomerResponse is the wire representation of a customer.
type CustomerResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Birth       string            `json:"birth"`
	Adress      string            `json:"adress"`
	PhoneNumber string            `json:"phoneNumber"`
	Credentials map[string]string `json:"credentials"`
}

// CredentialUpdateRequest replaces a customer's credential map.
type CredentialUpdateRequest struct {
	Credentials map[string]string `json:"credentials"`
}
