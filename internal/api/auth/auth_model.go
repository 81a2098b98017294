package auth

// LoginRequest represents the expected JSON body for user login.
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"password123"`
}

// LoginResponse represents the successful JSON response after login.
type LoginResponse struct {
	Token   string `json:"token" example:"eyJhbGciOiJI..."`
	Message string `json:"message" example:"Login successful"`
}

// RegisterRequest represents the expected JSON body for user registration.
type RegisterRequest struct {
	Username string `json:"username" example:"testuser"`
	Email    string `json:"email" example:"newuser@example.com"` // Must be unique.
	Password string `json:"password" example:"Str0ngP@ss!"`
}
