// Package policy holds the authorization predicates. Everything here is a
// pure function of the caller identity and the target record; resource
// existence is the caller's problem and is checked before these run.
package policy

import (
	"github.com/google/uuid"
	"github.com/unihub-dz/campus-report-backend/models"
)

// Actor is the authenticated caller (possibly an anonymous throwaway
// account). It is built from verified token claims by the HTTP layer.
type Actor struct {
	ID          uuid.UUID
	Role        models.Role
	IsAnonymous bool
}

// IsPrivileged reports whether the actor has cross-cutting read/update
// rights over reports and suggestions.
func (a Actor) IsPrivileged() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleDepartmentHead
}

func owns(a Actor, userID *uuid.UUID) bool {
	return userID != nil && *userID == a.ID
}

// CanAccessReport gates view and update. Admins and department heads see
// everything; everyone else only their own reports.
func CanAccessReport(a Actor, r *models.Report) bool {
	return a.IsPrivileged() || owns(a, r.UserID)
}

// CanDeleteReport is stricter: a department head may not delete a report
// it does not own.
func CanDeleteReport(a Actor, r *models.Report) bool {
	return a.Role == models.RoleAdmin || owns(a, r.UserID)
}

func CanAccessSuggestion(a Actor, s *models.Suggestion) bool {
	return a.IsPrivileged() || owns(a, s.UserID)
}

func CanDeleteSuggestion(a Actor, s *models.Suggestion) bool {
	return a.Role == models.RoleAdmin || owns(a, s.UserID)
}

// CanManageStatus gates status transitions and triage fields.
func CanManageStatus(a Actor) bool {
	return a.IsPrivileged()
}

// CanVote blocks anonymous accounts from voting. An anonymous identity
// still carries a user id, so this must be an explicit rule.
func CanVote(a Actor) bool {
	return !a.IsAnonymous
}
