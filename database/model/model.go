// Package model defines the persisted records of the MedTrack panel.
package model

import "time"

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// ParseRole maps a role path parameter to a Role. ok is false for anything
// other than the two known roles.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePatient, RoleDoctor:
		return Role(s), true
	}
	return "", false
}

// User is one account record, keyed by email. Email, UserId and Role are
// immutable after creation. PasswordHash never leaves the server.
type User struct {
	UserId       string    `json:"user_id" dynamodbav:"user_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	Role         Role      `json:"role" dynamodbav:"role"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
	IsActive     bool      `json:"is_active" dynamodbav:"is_active"`
}
