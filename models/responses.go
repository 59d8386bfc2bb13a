package models

// APIError is the JSON error envelope returned by every failed request.
//
// Message is always present. Code and Details are optional and populated
// only when the failure carries machine-readable context (for example a
// conflict code for duplicate identity fields). Modeling the optional
// fields explicitly keeps the response shape structured instead of an
// untyped map.
type APIError struct {
	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Code is an optional machine-readable error code (e.g. "CONFLICT").
	Code string `json:"code,omitempty"`

	// Details optionally carries structured context about the failure.
	Details any `json:"details,omitempty"`
}

// LoginResponse is the success payload of the login endpoint.
type LoginResponse struct {
	Message string `json:"message"`

	// Access is the compact signed access token the client resubmits in
	// the Authorization header on subsequent requests.
	Access string `json:"access"`
}

// RegisterResponse is the success payload of the registration endpoint.
type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// UpdateUserResponse is the success payload of profile and admin updates.
type UpdateUserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// EmailCheckResponse reports availability of an e-mail address.
type EmailCheckResponse struct {
	Email     string `json:"email"`
	Available bool   `json:"available"`
}

// UserNameCheckResponse reports availability of a username under the
// case- and accent-insensitive comparison rule.
type UserNameCheckResponse struct {
	UserName  string `json:"userName"`
	Available bool   `json:"available"`
}

// MessageResponse is a bare confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}
