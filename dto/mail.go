package dto

// VerificationMailPayload is published when an account needs its email
// address confirmed.
type VerificationMailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// PasswordResetMailPayload is published when a password reset is requested.
type PasswordResetMailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}
