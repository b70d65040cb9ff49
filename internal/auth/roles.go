package auth

import "strings"

const (
	RoleAdmin   = "ADMIN"
	RolePatient = "PATIENT"

	// DefaultRole is assigned to every self-registered account.
	DefaultRole = RolePatient

	authorityPrefix = "ROLE_"
)

// Authority turns a stored role into the claim carried by a Principal.
func Authority(role string) string {
	return authorityPrefix + role
}

// RoleOf strips the claim prefix. Claims without it are returned as is.
func RoleOf(authority string) string {
	return strings.TrimPrefix(authority, authorityPrefix)
}
