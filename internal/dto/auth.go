package dto

// Auth requests carry no validate tags: the auth service decides which
// failure wins (a configured password beats malformed setup input).

type SetupRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type VerifyRequest struct {
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type" example:"bearer"`
	ExpiresIn int64  `json:"expires_in" example:"86400"`
}

type AuthStatusResponse struct {
	PasswordSet bool `json:"password_set"`
}

type VerifyResponse struct {
	Valid     bool   `json:"valid"`
	ExpiresAt string `json:"expires_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
