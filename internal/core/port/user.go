package port

import (
	"context"
	"time"

	"userapp/internal/core/domain"
)

// ListFilter narrows a listing. Zero values impose no constraint.
type ListFilter struct {
	Search string
	From   *time.Time
	To     *time.Time
}

type UserRepository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.User, error)
	GetByUUID(ctx context.Context, uuid string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	UpdateByUUID(ctx context.Context, uuid string, changes domain.UserChanges) (domain.User, error)
	SoftDeleteByUUID(ctx context.Context, uuid string) error
}

type UserService interface {
	List(ctx context.Context, filter ListFilter) ([]domain.User, error)
	Create(ctx context.Context, name, email, phone string) (domain.User, error)
	GetByUUID(ctx context.Context, uuid string) (*domain.User, error)
	UpdateByUUID(ctx context.Context, uuid string, changes domain.UserChanges) (domain.User, error)
	DeleteByUUID(ctx context.Context, uuid string) error
}
