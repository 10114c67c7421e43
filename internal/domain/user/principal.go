package user

import "github.com/google/uuid"

// Principal is the authenticated caller. Users are owned by the auth service;
// this service only sees what the access token carries.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  Role
}
