package handlers

import (
	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/repositories"
)

// fakeUserRepo is an in-memory UserRepository. Handle and email uniqueness
// mirror the store's unique indexes.
type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (f *fakeUserRepo) add(u *models.User) *models.User {
	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) CreateUser(u *models.User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return apperr.ErrConflict
		}
	}
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserRepo) GetUserByFirebaseUID(uid string) (*models.User, error) {
	for _, u := range f.users {
		if u.FirebaseUID == uid {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserRepo) GetUsers() ([]models.User, error) {
	users := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserRepo) UpdateUser(u *models.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) SearchUsers(string, int) ([]models.User, error) { return nil, nil }
func (f *fakeUserRepo) CountUsers() (int64, error)                     { return int64(len(f.users)), nil }
func (f *fakeUserRepo) CountSuspended() (int64, error)                 { return 0, nil }
func (f *fakeUserRepo) CountBanned() (int64, error)                    { return 0, nil }

func (f *fakeUserRepo) CreatePasswordReset(*models.PasswordReset) error { return nil }
func (f *fakeUserRepo) GetPasswordReset(string) (*models.PasswordReset, error) {
	return nil, apperr.ErrNotFound
}
func (f *fakeUserRepo) MarkPasswordResetUsed(uint) error { return nil }

// fakeFollowRepo is an in-memory FollowRepository backed by an edge set.
type fakeFollowRepo struct {
	users *fakeUserRepo
	edges map[[2]uint]bool // [subscriber, target]
}

func newFakeFollowRepo(users *fakeUserRepo) *fakeFollowRepo {
	return &fakeFollowRepo{users: users, edges: make(map[[2]uint]bool)}
}

func (f *fakeFollowRepo) CreateEdge(follow *models.Follow) error {
	key := [2]uint{follow.SubscriberID, follow.TargetID}
	if f.edges[key] {
		return apperr.ErrConflict
	}
	f.edges[key] = true
	return nil
}

func (f *fakeFollowRepo) DeleteEdge(subscriberID, targetID uint) error {
	key := [2]uint{subscriberID, targetID}
	if !f.edges[key] {
		return apperr.ErrNotFound
	}
	delete(f.edges, key)
	return nil
}

func (f *fakeFollowRepo) IsFollowing(subscriberID, targetID uint) (bool, error) {
	return f.edges[[2]uint{subscriberID, targetID}], nil
}

func (f *fakeFollowRepo) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	for key := range f.edges {
		if key[1] == userID {
			if u, ok := f.users.users[key[0]]; ok {
				users = append(users, *u)
			}
		}
	}
	return users, nil
}

func (f *fakeFollowRepo) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	for key := range f.edges {
		if key[0] == userID {
			if u, ok := f.users.users[key[1]]; ok {
				users = append(users, *u)
			}
		}
	}
	return users, nil
}

func (f *fakeFollowRepo) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	for key := range f.edges {
		if key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	return ids, nil
}

func (f *fakeFollowRepo) GetFollowersCount(userID uint) (int64, error) {
	users, _ := f.GetFollowers(userID)
	return int64(len(users)), nil
}

func (f *fakeFollowRepo) GetFollowingCount(userID uint) (int64, error) {
	users, _ := f.GetFollowing(userID)
	return int64(len(users)), nil
}

// fakeNotificationRepo records fan-out writes.
type fakeNotificationRepo struct {
	created []models.Notification
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
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
