package dto

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Image    string `json:"image"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest payload for password login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyCodeRequest payload for the login second factor.
type VerifyCodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// EmailRequest payload for flows keyed by email only.
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest payload carrying a signed recovery token.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// TokenRequest payload for flows keyed by a signed token.
type TokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// MessageResponse is the generic `{message}` response body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse returns a session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// VerifyEmailResponse confirms a verified address.
type VerifyEmailResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}
