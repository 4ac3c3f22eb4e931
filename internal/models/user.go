package models

import "time"

// User represents a row in the PostgreSQL users table.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialize
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthRequest is the JSON body for POST /api/auth/login and
// POST /api/auth/register.
type AuthRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user returned after login.
// IDs travel as decimal strings on the wire.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginResponse is the success body for POST /api/auth/login.
type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// RegisterResponse is the success body for POST /api/auth/register.
type RegisterResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// ErrorResponse carries a client-facing failure message.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the body for GET /api/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
