package utils

import "MediSched/models"

// Caller identifies the authenticated user behind a request, as extracted
// from its access-token claims.
type Caller struct {
	ID   string
	Role string
}

// CanAct is the single capability predicate consumed by every mutating
// operation on doctor-owned resources. Admins may act on anything; doctors
// only on resources whose owning user is themselves. It never errors: a
// malformed caller simply yields false.
func CanAct(caller Caller, ownerUserID string) bool {
	switch caller.Role {
	case models.RoleAdmin:
		return true
	case models.RoleDoctor:
		return caller.ID != "" && caller.ID == ownerUserID
	default:
		return false
	}
}
