package dto

// AdminLoginRequest represents the warden's credentials
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StudentLoginRequest represents a student's portal credentials
type StudentLoginRequest struct {
	SID      string `json:"sid" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	Role  string        `json:"role" example:"ADMIN"`
	User  interface{}   `json:"user"`
}

// AdminProfile is the user payload of an admin login
type AdminProfile struct {
	Username string `json:"username"`
}
