package models

import "github.com/golang-jwt/jwt/v5"

// Student is a record from the mock student directory.
type Student struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PasswordHash string `json:"-"`
}

// LoginRequest carries credentials for the mock session endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed token plus the student identity.
type LoginResponse struct {
	Token   string  `json:"token"`
	Student Student `json:"student"`
}

// JWTClaims is the session payload carried on every wizard request.
type JWTClaims struct {
	StudentID string `json:"studentId"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
