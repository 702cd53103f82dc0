package user

import (
	"context"

	"go.uber.org/zap"

	domain "user-rest-service/internal/domain/user"
	apperrors "user-rest-service/pkg/errors"
	"user-rest-service/pkg/pagination"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// (e.g., PostgreSQL, a cached decorator) to be used interchangeably.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)           // Insert a new user, store assigns the id
	GetByID(ctx context.Context, id int64) (*domain.User, error)                // Retrieve user by ID
	GetByEmail(ctx context.Context, email string) (*domain.User, error)         // Retrieve user by email, nil when absent
	List(ctx context.Context) ([]domain.User, error)                            // List all users
	ListPage(ctx context.Context, offset, limit int) ([]domain.User, error)     // List one page of users
	Count(ctx context.Context) (int64, error)                                   // Count all users
	Update(ctx context.Context, id int64, fields map[string]any) (int64, error) // Apply a partial update, returns rows affected
	Delete(ctx context.Context, id int64) (int64, error)                        // Delete user by ID, returns rows affected
}

// Service implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type Service struct {
	repo Repository  // Repository for data access
	log  *zap.Logger // Logger for structured logging
}

// New creates a new Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log}
}

// CreateUser creates a new user after checking email uniqueness. The check is
// a courtesy for a friendlier error message; the unique index on the email
// column is the authoritative guard, so a concurrent duplicate still surfaces
// as a conflict from the store.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	s.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if in.Name == "" || in.Email == "" {
		return nil, apperrors.NewBadInputError("Name and email are required")
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		s.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apperrors.ErrEmailConflict
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return toDTO(created), nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, apperrors.NewBadInputError("Invalid user ID")
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Warn("failed to get user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return toDTO(u), nil
}

// ListUsers retrieves all users without pagination.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}
	return toDTOs(users), nil
}

// ListUsersPage retrieves one page of users plus the total row count. The two
// store calls are not transactionally consistent with each other; the count
// may drift by concurrent writes, which is acceptable for navigation metadata.
func (s *Service) ListUsersPage(ctx context.Context, params pagination.Params) ([]User, int64, error) {
	s.log.Info("listing users page", zap.Int("page", params.Page), zap.Int("limit", params.Limit))

	users, err := s.repo.ListPage(ctx, params.Skip, params.Limit)
	if err != nil {
		s.log.Error("failed to list users page", zap.Int("page", params.Page), zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.log.Error("failed to count users", zap.Error(err))
		return nil, 0, err
	}

	return toDTOs(users), total, nil
}

// UpdateUser applies a partial update after verifying the user exists and the
// new email, if any, does not collide with a different user. Returns the
// fresh record.
func (s *Service) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*User, error) {
	s.log.Info("updating user", zap.Int64("id", id))

	if id <= 0 {
		return nil, apperrors.NewBadInputError("Invalid user ID")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Warn("user to update not found", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	if in.Email != nil && *in.Email != current.Email {
		existing, err := s.repo.GetByEmail(ctx, *in.Email)
		if err != nil {
			s.log.Error("failed to check existing email", zap.String("email", *in.Email), zap.Error(err))
			return nil, err
		}
		if existing != nil && existing.ID != id {
			s.log.Warn("email already exists", zap.String("email", *in.Email), zap.Int64("existing_id", existing.ID))
			return nil, apperrors.NewConflictError("user", "Email is already in use")
		}
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.Password != nil {
		fields["password"] = *in.Password
	}

	if len(fields) > 0 {
		affected, err := s.repo.Update(ctx, id, fields)
		if err != nil {
			s.log.Error("failed to update user", zap.Int64("id", id), zap.Error(err))
			return nil, err
		}
		if affected == 0 {
			return nil, apperrors.ErrUserNotFound
		}
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toDTO(updated), nil
}

// DeleteUser deletes a user by ID.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	s.log.Info("deleting user", zap.Int64("id", id))

	if id <= 0 {
		return apperrors.NewBadInputError("Invalid user ID")
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("failed to delete user", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		s.log.Warn("user to delete not found", zap.Int64("id", id))
		return apperrors.ErrUserNotFound
	}

	return nil
}

func toDTO(u *domain.User) *User {
	return &User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func toDTOs(users []domain.User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = User{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		}
	}
	return out
}
