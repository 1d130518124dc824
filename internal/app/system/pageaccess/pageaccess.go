// internal/app/system/pageaccess/pageaccess.go

// Package pageaccess decides whether a viewer may see a page's content.
// Evaluation runs two gates in a fixed order — visibility first, then
// password — and each gate is a hard stop: the password gate is never
// reached when the visibility gate denies. Evaluation is repeatable for the
// same inputs; its only side effect is recording a page-scoped grant when a
// submitted password verifies.
package pageaccess

import (
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"go.uber.org/zap"
)

// Outcome of one evaluation. Terminal per call; every view attempt
// re-evaluates.
const (
	Granted                = "granted"
	AwaitingPassword       = "awaiting-password"
	DeniedLoginRequired    = "login-required"
	DeniedInsufficientRole = "insufficient-role"
)

// Decision is the result of evaluating one view attempt.
type Decision struct {
	Outcome string
	// RequiredRole is set when the outcome is DeniedInsufficientRole.
	RequiredRole string
	// PasswordHint is set when the outcome is AwaitingPassword and the
	// page has a hint.
	PasswordHint string
}

// Viewer describes the requesting session. SessionToken scopes password
// grants to the viewer's session.
type Viewer struct {
	Authenticated bool
	Role          string
	SessionToken  string
}

// Evaluator evaluates page view attempts against the visibility and
// password gates.
type Evaluator struct {
	grants *GrantStore
	logger *zap.Logger
}

// New creates an Evaluator backed by the given grant store.
func New(grants *GrantStore, logger *zap.Logger) *Evaluator {
	return &Evaluator{grants: grants, logger: logger}
}

// Evaluate runs the gates for one view attempt. password is the submitted
// page password for this attempt, or empty when none was submitted.
func (e *Evaluator) Evaluate(page models.Page, v Viewer, password string) Decision {
	// Gate 1: visibility.
	switch page.Visibility {
	case models.VisibilityPublic, "":
		// proceed to the password gate
	case models.VisibilityAuthenticated:
		if !v.Authenticated {
			return Decision{Outcome: DeniedLoginRequired}
		}
	case models.VisibilityRoleRestricted:
		if !v.Authenticated {
			return Decision{Outcome: DeniedLoginRequired}
		}
		if !models.RoleSatisfies(v.Role, page.RequiredRole) {
			return Decision{Outcome: DeniedInsufficientRole, RequiredRole: page.RequiredRole}
		}
	default:
		// Unrecognized visibility fails closed to the strictest gate.
		e.logger.Warn("unrecognized page visibility, failing closed",
			zap.String("page_id", page.ID),
			zap.String("visibility", page.Visibility))
		return Decision{Outcome: DeniedLoginRequired}
	}

	// Gate 2: password.
	if !page.PasswordProtected {
		return Decision{Outcome: Granted}
	}

	// Authenticated admins never need the page password.
	if v.Authenticated && v.Role == models.RoleAdmin {
		return Decision{Outcome: Granted}
	}

	if e.grants.Has(v.SessionToken, page.ID) {
		return Decision{Outcome: Granted}
	}

	if password != "" && VerifyPassword(password, page.PasswordHash) {
		e.grants.Grant(v.SessionToken, page.ID)
		e.logger.Info("page password verified, grant recorded",
			zap.String("page_id", page.ID))
		return Decision{Outcome: Granted}
	}

	// No valid grant and no correct password this attempt; the caller
	// may retry.
	return Decision{Outcome: AwaitingPassword, PasswordHint: page.PasswordHint}
}
