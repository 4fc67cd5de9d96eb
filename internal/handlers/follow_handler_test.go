package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/notify"
)

func newFollowFixture() (*FollowHandler, *fakeUserRepo, *fakeFollowRepo) {
	users := newFakeUserRepo()
	users.add(&models.User{Username: "alice", Name: "Alice", Role: models.RoleUser})
	users.add(&models.User{Username: "bob", Name: "Bob", Role: models.RoleUser})

	follows := newFakeFollowRepo(users)
	notifier := notify.New(&fakeNotificationRepo{}, zap.NewNop())
	return NewFollowHandler(follows, users, notifier), users, follows
}

func followContext(callerID uint, targetID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(targetID)
	if callerID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: callerID})
	}
	return c, rec
}

func listedUsernames(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var resp struct {
		Data struct {
			Users []models.UserCompact `json:"users"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	names := make([]string, len(resp.Data.Users))
	for i, u := range resp.Data.Users {
		names[i] = u.Username
	}
	return names
}

func TestSubscribeUnsubscribeRoundTrip(t *testing.T) {
	h, _, _ := newFollowFixture()

	// alice (1) follows bob (2)
	c, _ := followContext(1, "2")
	if err := h.Subscribe(c); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	c, rec := followContext(0, "2")
	if err := h.GetFollowers(c); err != nil {
		t.Fatalf("GetFollowers: %v", err)
	}
	if names := listedUsernames(t, rec); len(names) != 1 || names[0] != "alice" {
		t.Errorf("followers of bob: got %v, want [alice]", names)
	}

	c, rec = followContext(0, "1")
	if err := h.GetFollowing(c); err != nil {
		t.Fatalf("GetFollowing: %v", err)
	}
	if names := listedUsernames(t, rec); len(names) != 1 || names[0] != "bob" {
		t.Errorf("following of alice: got %v, want [bob]", names)
	}

	c, _ = followContext(1, "2")
	if err := h.Unsubscribe(c); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}

	c, rec = followContext(0, "2")
	if err := h.GetFollowers(c); err != nil {
		t.Fatalf("GetFollowers after unsubscribe: %v", err)
	}
	if names := listedUsernames(t, rec); len(names) != 0 {
		t.Errorf("followers of bob after unsubscribe: got %v, want none", names)
	}
}

func TestSubscribeDuplicate(t *testing.T) {
	h, _, _ := newFollowFixture()

	c, _ := followContext(1, "2")
	if err := h.Subscribe(c); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	c, _ = followContext(1, "2")
	if code := httpCode(t, h.Subscribe(c)); code != http.StatusConflict {
		t.Errorf("duplicate subscribe: got status %d, want %d", code, http.StatusConflict)
	}
}

func TestSubscribeSelf(t *testing.T) {
	h, _, _ := newFollowFixture()

	c, _ := followContext(1, "1")
	if code := httpCode(t, h.Subscribe(c)); code != http.StatusBadRequest {
		t.Errorf("self-follow: got status %d, want %d", code, http.StatusBadRequest)
	}
}

func TestSubscribeUnknownTarget(t *testing.T) {
	h, _, _ := newFollowFixture()

	c, _ := followContext(1, "99")
	if code := httpCode(t, h.Subscribe(c)); code != http.StatusNotFound {
		t.Errorf("unknown target: got status %d, want %d", code, http.StatusNotFound)
	}
}

func TestRemoveFollower(t *testing.T) {
	h, _, follows := newFollowFixture()

	// alice (1) follows bob (2); bob removes alice from his followers
	c, _ := followContext(1, "2")
	if err := h.Subscribe(c); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	c, _ = followContext(2, "1")
	if err := h.RemoveFollower(c); err != nil {
		t.Fatalf("RemoveFollower: %v", err)
	}

	if following, _ := follows.IsFollowing(1, 2); following {
		t.Error("edge still present after RemoveFollower")
	}
}
