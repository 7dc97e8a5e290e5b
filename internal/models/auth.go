package models

import "github.com/golang-jwt/jwt/v5"

// UserRole enumerates the platform roles carried in access tokens.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// JWTClaims represents the JWT payload for access tokens issued by the
// platform auth service. The gateway verifies them, it never issues them.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}
