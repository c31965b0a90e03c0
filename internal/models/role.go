package models

import "fmt"

// Role is the closed set of actor roles. Every role-sensitive decision
// switches exhaustively over these values.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePatient:
		return RolePatient, nil
	case RoleDoctor:
		return RoleDoctor, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor:
		return true
	default:
		return false
	}
}
