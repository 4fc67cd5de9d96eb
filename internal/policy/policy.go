// Package policy gates every mutating operation by resolved identity and
// role. All checks are pure predicates over (caller, target, action) and
// return errors from the apperr taxonomy; callers learn the class of
// failure, never which rule tripped.
package policy

import (
	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
)

// RequireAuthenticated rejects anonymous callers.
func RequireAuthenticated(caller *models.User) error {
	if caller == nil {
		return apperr.ErrUnauthenticated
	}
	return nil
}

// CanCreateContent allows content creation only for authenticated accounts
// that are neither suspended nor banned.
func CanCreateContent(caller *models.User) error {
	if err := RequireAuthenticated(caller); err != nil {
		return err
	}
	if caller.Suspended || caller.Banned {
		return apperr.ErrForbidden
	}
	return nil
}

// RequireAdmin gates admin-only actions (account listing, role change,
// aggregate stats).
func RequireAdmin(caller *models.User) error {
	if err := RequireAuthenticated(caller); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return apperr.ErrForbidden
	}
	return nil
}

// RequireModerator gates moderator-or-admin actions (suspend/ban, report
// triage).
func RequireModerator(caller *models.User) error {
	if err := RequireAuthenticated(caller); err != nil {
		return err
	}
	if !caller.IsModerator() {
		return apperr.ErrForbidden
	}
	return nil
}

// CanModerate decides whether caller may suspend/ban/unsuspend/unban target.
// A moderator may not moderate an admin, and nobody moderates themself.
func CanModerate(caller, target *models.User) error {
	if err := RequireModerator(caller); err != nil {
		return err
	}
	if caller.ID == target.ID {
		return apperr.ErrForbidden
	}
	if target.IsAdmin() && !caller.IsAdmin() {
		return apperr.ErrForbidden
	}
	return nil
}

// CanChangeRole decides whether caller may set target's role to newRole.
// Admin only; an admin cannot demote its own account away from admin.
func CanChangeRole(caller, target *models.User, newRole string) error {
	if err := RequireAdmin(caller); err != nil {
		return err
	}
	if caller.ID == target.ID && newRole != models.RoleAdmin {
		return apperr.ErrForbidden
	}
	return nil
}

// CanDeletePost allows the author, or a moderator/admin via the overriding
// deletion capability.
func CanDeletePost(caller *models.User, post *models.Post) error {
	if err := RequireAuthenticated(caller); err != nil {
		return err
	}
	if caller.ID == post.AuthorID || caller.IsModerator() {
		return nil
	}
	return apperr.ErrForbidden
}

// CanDeleteComment allows the comment author, or a moderator/admin.
func CanDeleteComment(caller *models.User, comment *models.Comment) error {
	if err := RequireAuthenticated(caller); err != nil {
		return err
	}
	if caller.ID == comment.AuthorID || caller.IsModerator() {
		return nil
	}
	return apperr.ErrForbidden
}
