package handlers

import (
	"testing"

	"github.com/Ougobatec/Breezy-sub000/internal/models"
)

func TestUnreadCountsResponseZeroFill(t *testing.T) {
	resp := unreadCountsResponse(map[string]int64{})

	if len(resp) != len(models.NotificationTypes)+1 {
		t.Fatalf("got %d entries, want %d", len(resp), len(models.NotificationTypes)+1)
	}
	for _, typ := range models.NotificationTypes {
		if resp[typ] != 0 {
			t.Errorf("%s: got %d, want 0", typ, resp[typ])
		}
	}
	if resp["total"] != 0 {
		t.Errorf("total: got %d, want 0", resp["total"])
	}
}

func TestUnreadCountsResponseTotal(t *testing.T) {
	resp := unreadCountsResponse(map[string]int64{
		models.NotificationLike:   3,
		models.NotificationFollow: 1,
	})

	if resp[models.NotificationLike] != 3 {
		t.Errorf("like: got %d, want 3", resp[models.NotificationLike])
	}
	if resp[models.NotificationComment] != 0 {
		t.Errorf("comment: got %d, want 0", resp[models.NotificationComment])
	}
	if resp["total"] != 4 {
		t.Errorf("total: got %d, want 4", resp["total"])
	}
}

func TestValidNotificationType(t *testing.T) {
	for _, typ := range models.NotificationTypes {
		if !validNotificationType(typ) {
			t.Errorf("%s rejected", typ)
		}
	}
	for _, typ := range []string{"", "likes", "unknown"} {
		if validNotificationType(typ) {
			t.Errorf("%q accepted", typ)
		}
	}
}
