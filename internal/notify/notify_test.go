package notify

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/repositories"
)

// fakeNotificationRepo records created notifications in memory.
type fakeNotificationRepo struct {
	created []models.Notification
	err     error
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipientID(uint, repositories.NotificationFilter) ([]models.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) UnreadCountsByType(uint) (map[string]int64, error) { return nil, nil }
func (f *fakeNotificationRepo) MarkAsRead(uint, uint) error                       { return nil }
func (f *fakeNotificationRepo) MarkAllAsRead(uint, string) error                  { return nil }
func (f *fakeNotificationRepo) DeleteNotification(uint, uint) error               { return nil }

func TestPostLiked(t *testing.T) {
	repo := &fakeNotificationRepo{}
	n := New(repo, zap.NewNop())

	actor := &models.User{ID: 1, Username: "alice"}
	post := &models.Post{ID: primitive.NewObjectID(), AuthorID: 2}

	n.PostLiked(actor, post)

	if len(repo.created) != 1 {
		t.Fatalf("got %d notifications, want 1", len(repo.created))
	}
	got := repo.created[0]
	if got.Type != models.NotificationLike {
		t.Errorf("type: got %q, want %q", got.Type, models.NotificationLike)
	}
	if got.RecipientID != 2 || got.ActorID != 1 {
		t.Errorf("recipient/actor: got %d/%d, want 2/1", got.RecipientID, got.ActorID)
	}
	if got.PostID != post.ID.Hex() {
		t.Errorf("post id: got %q, want %q", got.PostID, post.ID.Hex())
	}
	if got.Status != models.NotificationUnread {
		t.Errorf("status: got %q, want %q", got.Status, models.NotificationUnread)
	}
}

func TestSelfActionSuppressed(t *testing.T) {
	repo := &fakeNotificationRepo{}
	n := New(repo, zap.NewNop())

	actor := &models.User{ID: 1, Username: "alice"}
	ownPost := &models.Post{ID: primitive.NewObjectID(), AuthorID: 1}

	n.PostLiked(actor, ownPost)
	n.CommentCreated(actor, ownPost, 0)
	n.Followed(actor, 1)

	if len(repo.created) != 0 {
		t.Errorf("got %d notifications, want 0 for self-directed actions", len(repo.created))
	}
}

func TestCommentCreatedNotifiesParentAuthor(t *testing.T) {
	repo := &fakeNotificationRepo{}
	n := New(repo, zap.NewNop())

	actor := &models.User{ID: 3, Username: "carol"}
	post := &models.Post{ID: primitive.NewObjectID(), AuthorID: 1}

	n.CommentCreated(actor, post, 2)

	if len(repo.created) != 2 {
		t.Fatalf("got %d notifications, want 2", len(repo.created))
	}
	if repo.created[0].RecipientID != 1 {
		t.Errorf("post author recipient: got %d, want 1", repo.created[0].RecipientID)
	}
	if repo.created[1].RecipientID != 2 {
		t.Errorf("parent author recipient: got %d, want 2", repo.created[1].RecipientID)
	}
}

func TestCommentCreatedDeduplicatesRecipients(t *testing.T) {
	repo := &fakeNotificationRepo{}
	n := New(repo, zap.NewNop())

	actor := &models.User{ID: 3, Username: "carol"}
	post := &models.Post{ID: primitive.NewObjectID(), AuthorID: 1}

	// parent comment was written by the post author
	n.CommentCreated(actor, post, 1)

	if len(repo.created) != 1 {
		t.Errorf("got %d notifications, want 1 after dedup", len(repo.created))
	}
}

func TestModerationMessage(t *testing.T) {
	repo := &fakeNotificationRepo{}
	n := New(repo, zap.NewNop())

	n.Moderation(1, 2, "suspended", "spam")

	if len(repo.created) != 1 {
		t.Fatalf("got %d notifications, want 1", len(repo.created))
	}
	want := "Your account has been suspended: spam"
	if repo.created[0].Message != want {
		t.Errorf("message: got %q, want %q", repo.created[0].Message, want)
	}
}

func TestFanOutFailureIsSwallowed(t *testing.T) {
	repo := &fakeNotificationRepo{err: errors.New("db down")}
	n := New(repo, zap.NewNop())

	actor := &models.User{ID: 1, Username: "alice"}
	post := &models.Post{ID: primitive.NewObjectID(), AuthorID: 2}

	// must not panic or surface the error
	n.PostLiked(actor, post)

	if len(repo.created) != 0 {
		t.Errorf("got %d notifications, want 0", len(repo.created))
	}
}
