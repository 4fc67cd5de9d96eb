// Package notify records a notification whenever an action by one account
// is relevant to another. Fan-out is best-effort: it runs in the request
// that produced the triggering action, failures are logged and never
// surface to the caller, and the actor is never notified about their own
// action.
package notify

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/repositories"
)

// Notifier fans out notification records
type Notifier struct {
	repo repositories.NotificationRepository
	log  *zap.Logger
}

// New creates a Notifier
func New(repo repositories.NotificationRepository, log *zap.Logger) *Notifier {
	return &Notifier{repo: repo, log: log}
}

// emit writes one notification unless the recipient is the actor.
func (n *Notifier) emit(notifType string, actorID, recipientID uint, postID, message string) {
	if recipientID == actorID || recipientID == 0 {
		return
	}
	notif := &models.Notification{
		Type:        notifType,
		ActorID:     actorID,
		RecipientID: recipientID,
		PostID:      postID,
		Message:     message,
		Status:      models.NotificationUnread,
	}
	if err := n.repo.CreateNotification(notif); err != nil {
		n.log.Warn("notification fan-out failed",
			zap.String("type", notifType),
			zap.Uint("recipient_id", recipientID),
			zap.Error(err))
	}
}

// PostLiked notifies the post author of a new like
func (n *Notifier) PostLiked(actor *models.User, post *models.Post) {
	n.emit(models.NotificationLike, actor.ID, post.AuthorID, post.ID.Hex(),
		fmt.Sprintf("%s liked your post", actor.Username))
}

// CommentCreated notifies the post author and, for replies, the parent
// comment's author. The two are de-duplicated: a post author who also wrote
// the parent comment gets a single notification.
func (n *Notifier) CommentCreated(actor *models.User, post *models.Post, parentAuthorID uint) {
	n.emit(models.NotificationComment, actor.ID, post.AuthorID, post.ID.Hex(),
		fmt.Sprintf("%s commented on your post", actor.Username))
	if parentAuthorID != 0 && parentAuthorID != post.AuthorID {
		n.emit(models.NotificationComment, actor.ID, parentAuthorID, post.ID.Hex(),
			fmt.Sprintf("%s replied to your comment", actor.Username))
	}
}

// Followed notifies the followed account of a new follower
func (n *Notifier) Followed(actor *models.User, targetID uint) {
	n.emit(models.NotificationFollow, actor.ID, targetID, "",
		fmt.Sprintf("%s started following you", actor.Username))
}

// Moderation notifies the target of a suspend/ban/unsuspend/unban action
func (n *Notifier) Moderation(actorID, targetID uint, action, reason string) {
	message := fmt.Sprintf("Your account has been %s", action)
	if reason != "" {
		message = fmt.Sprintf("%s: %s", message, reason)
	}
	n.emit(models.NotificationModeration, actorID, targetID, "", message)
}

// RoleChanged notifies the target of a role change
func (n *Notifier) RoleChanged(actorID, targetID uint, role string) {
	n.emit(models.NotificationRoleChange, actorID, targetID, "",
		fmt.Sprintf("Your role is now %s", role))
}

// ContentRemoved notifies a post author that their content was removed
// after report review
func (n *Notifier) ContentRemoved(actorID, authorID uint, postID string) {
	n.emit(models.NotificationReport, actorID, authorID, postID,
		"Your post was removed after review of pending reports")
}
