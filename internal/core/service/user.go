package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"userapp/internal/core/domain"
	"userapp/internal/core/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo}
}

func (us *UserService) List(ctx context.Context, filter port.ListFilter) ([]domain.User, error) {
	users, err := us.repo.List(ctx, filter)

	if err != nil {
		slog.Error("Error listing users", "error", err)
		return []domain.User{}, err
	}

	return users, nil
}

func (us *UserService) Create(ctx context.Context, name, email, phone string) (domain.User, error) {
	// Fast pre-check for a friendly conflict message. The unique constraints
	// on users.email and users.phone remain the authoritative guard.
	existing, err := us.repo.GetByEmail(ctx, email)

	if err != nil {
		return domain.User{}, err
	}

	if existing != nil {
		return domain.User{}, domain.NewEmailConflict()
	}

	existing, err = us.repo.GetByPhone(ctx, phone)

	if err != nil {
		return domain.User{}, err
	}

	if existing != nil {
		return domain.User{}, domain.NewPhoneConflict()
	}

	now := time.Now()

	newUser := domain.User{
		UUID:      uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
		DeletedAt: nil,
	}

	user, err := us.repo.Create(ctx, newUser)

	if err != nil {
		slog.Error("Error creating user", "error", err, "email", email)
		return domain.User{}, err
	}

	return user, nil
}

func (us *UserService) GetByUUID(ctx context.Context, uid string) (*domain.User, error) {
	return us.repo.GetByUUID(ctx, uid)
}

func (us *UserService) UpdateByUUID(ctx context.Context, uid string, changes domain.UserChanges) (domain.User, error) {
	current, err := us.repo.GetByUUID(ctx, uid)

	if err != nil {
		return domain.User{}, err
	}

	if current == nil {
		return domain.User{}, domain.ErrUserNotFound
	}

	emailUsed, err := us.verifyEmailAlreadyExists(ctx, current.Email, changes.Email)

	if err != nil {
		return domain.User{}, err
	}

	if emailUsed {
		return domain.User{}, domain.NewEmailConflict()
	}

	phoneUsed, err := us.verifyPhoneAlreadyExists(ctx, current.Phone, changes.Phone)

	if err != nil {
		return domain.User{}, err
	}

	if phoneUsed {
		return domain.User{}, domain.NewPhoneConflict()
	}

	user, err := us.repo.UpdateByUUID(ctx, uid, changes)

	if err != nil {
		slog.Error("Error updating user", "error", err, "uuid", uid)
		return domain.User{}, err
	}

	return user, nil
}

func (us *UserService) DeleteByUUID(ctx context.Context, uid string) error {
	current, err := us.repo.GetByUUID(ctx, uid)

	if err != nil {
		return err
	}

	if current == nil {
		return domain.ErrUserNotFound
	}

	return us.repo.SoftDeleteByUUID(ctx, uid)
}

// verifyEmailAlreadyExists only looks the value up when it is present and
// differs from the stored one, so a user resubmitting their own e-mail never
// conflicts with themselves.
func (us *UserService) verifyEmailAlreadyExists(ctx context.Context, currentEmail string, requestEmail *string) (bool, error) {
	if requestEmail == nil || *requestEmail == currentEmail {
		return false, nil
	}

	existing, err := us.repo.GetByEmail(ctx, *requestEmail)

	if err != nil {
		return false, err
	}

	return existing != nil, nil
}

func (us *UserService) verifyPhoneAlreadyExists(ctx context.Context, currentPhone string, requestPhone *string) (bool, error) {
	if requestPhone == nil || *requestPhone == currentPhone {
		return false, nil
	}

	existing, err := us.repo.GetByPhone(ctx, *requestPhone)

	if err != nil {
		return false, err
	}

	return existing != nil, nil
}
