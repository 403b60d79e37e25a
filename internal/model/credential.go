package model

// CredentialRequest represents a credential generation request.
// FullName is only read when the service resolves names from the request.
type CredentialRequest struct {
	CustomerID int64  `json:"customerId"`
	FullName   string `json:"fullName"`
}

// CredentialResponse carries freshly generated credentials. The plaintext
// password is returned exactly once and never stored.
type CredentialResponse struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	HashedPassword string `json:"hashedPassword"`
}

// PasswordVerificationRequest represents a password check for a customer.
type PasswordVerificationRequest struct {
	CustomerID  int64  `json:"customerId"`
	RawPassword string `json:"rawPassword"`
}
