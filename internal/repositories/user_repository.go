package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
)

// UserRepository defines the interface for account data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(user *models.User) error
	SearchUsers(query string, limit int) ([]models.User, error)
	CountUsers() (int64, error)
	CountSuspended() (int64, error)
	CountBanned() (int64, error)

	CreatePasswordReset(reset *models.PasswordReset) error
	GetPasswordReset(token string) (*models.PasswordReset, error)
	MarkPasswordResetUsed(id uint) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new account in PostgreSQL
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.ErrConflict
		}
		return err
	}
	return nil
}

// GetUserByID retrieves an account by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

// GetUserByUsername retrieves an account by handle from PostgreSQL
func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves an account by email from PostgreSQL
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a federated account from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

// GetUsers retrieves all accounts from PostgreSQL
func (r *PostgresUserRepository) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser updates an existing account in PostgreSQL
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so user-supplied search text
// matches literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// SearchUsers searches accounts by handle or display name (case-insensitive)
func (r *PostgresUserRepository) SearchUsers(query string, limit int) ([]models.User, error) {
	pattern := "%" + escapeLike(query) + "%"

	var users []models.User
	err := r.db.
		Where("LOWER(username) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?)", pattern, pattern).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsers returns the total number of accounts
func (r *PostgresUserRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountSuspended returns the number of suspended accounts
func (r *PostgresUserRepository) CountSuspended() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("suspended = true").Count(&count).Error
	return count, err
}

// CountBanned returns the number of banned accounts
func (r *PostgresUserRepository) CountBanned() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("banned = true").Count(&count).Error
	return count, err
}

// CreatePasswordReset stores a new reset token
func (r *PostgresUserRepository) CreatePasswordReset(reset *models.PasswordReset) error {
	return r.db.Create(reset).Error
}

// GetPasswordReset retrieves an unused, unexpired reset token
func (r *PostgresUserRepository) GetPasswordReset(token string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := r.db.Where("token = ? AND used = false AND expires_at > ?", token, time.Now()).First(&reset).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &reset, nil
}

// MarkPasswordResetUsed consumes a reset token
func (r *PostgresUserRepository) MarkPasswordResetUsed(id uint) error {
	return r.db.Model(&models.PasswordReset{}).Where("id = ?", id).Update("used", true).Error
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
