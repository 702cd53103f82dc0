package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-rest-service/internal/domain/user"
	apperrors "user-rest-service/pkg/errors"
)

// UserRepoPG implements the Repository interface using PostgreSQL and GORM.
// Store errors are translated into the application error types so callers
// never see gorm sentinels: a missing row becomes a NotFoundError and a
// unique-index violation becomes a ConflictError. The unique index on email
// is the authoritative uniqueness guard.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Name     string `gorm:"not null"`                 // User's full name (required)
	Email    string `gorm:"not null;uniqueIndex"`     // User's unique email address (required, unique)
	Password string `gorm:"not null"`                 // User's credential, stored as provided
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// Create inserts a new user into the database and returns it with the
// assigned id.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.log.Warn("duplicate email on create", zap.String("email", u.Email))
			return nil, apperrors.ErrEmailConflict
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return toDomain(&model), nil
}

// GetByID retrieves a user from the database by their unique ID.
func (r *UserRepoPG) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("user not found", zap.Int64("id", id))
			return nil, apperrors.ErrUserNotFound
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toDomain(&model), nil
}

// GetByEmail retrieves a user from the database by their email address.
// Returns nil without error when no user matches.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return toDomain(&model), nil
}

// List retrieves all users without pagination.
func (r *UserRepoPG) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return toDomainSlice(models), nil
}

// ListPage retrieves one page of users ordered by id.
func (r *UserRepoPG) ListPage(ctx context.Context, offset, limit int) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		r.log.Error("failed to list users page from db", zap.Error(err), zap.Int("offset", offset), zap.Int("limit", limit))
		return nil, fmt.Errorf("failed to list users page: %w", err)
	}

	return toDomainSlice(models), nil
}

// Count returns the total number of users.
func (r *UserRepoPG) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&UserSchema{}).Count(&total).Error; err != nil {
		r.log.Error("failed to count users in db", zap.Error(err))
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return total, nil
}

// Update applies a partial update to the given user and returns the number of
// rows affected.
func (r *UserRepoPG) Update(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	if id <= 0 {
		return 0, errors.New("invalid user id")
	}
	if len(fields) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Model(&UserSchema{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			r.log.Warn("duplicate email on update", zap.Int64("id", id))
			return 0, apperrors.NewConflictError("user", "Email is already in use")
		}
		r.log.Error("failed to update user in db", zap.Error(result.Error), zap.Int64("id", id))
		return 0, fmt.Errorf("failed to update user: %w", result.Error)
	}

	r.log.Info("user updated in db", zap.Int64("id", id), zap.Int64("affected", result.RowsAffected))
	return result.RowsAffected, nil
}

// Delete removes a user from the database by ID and returns the number of
// rows affected.
func (r *UserRepoPG) Delete(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, errors.New("invalid user id")
	}

	result := r.db.WithContext(ctx).Delete(&UserSchema{}, id)
	if result.Error != nil {
		r.log.Error("failed to delete user in db", zap.Error(result.Error), zap.Int64("id", id))
		return 0, fmt.Errorf("failed to delete user: %w", result.Error)
	}

	r.log.Info("user deleted in db", zap.Int64("id", id), zap.Int64("affected", result.RowsAffected))
	return result.RowsAffected, nil
}

func toDomain(m *UserSchema) *user.User {
	return &user.User{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Password: m.Password,
	}
}

func toDomainSlice(models []UserSchema) []user.User {
	users := make([]user.User, len(models))
	for i := range models {
		users[i] = *toDomain(&models[i])
	}
	return users
}
