package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        int
	UUID      uuid.UUID
	Name      string `validate:"required,min=1,max=255"`
	Email     string `validate:"required,email,max=255"`
	Phone     string `validate:"required,min=10,max=11"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"uuid":       u.UUID,
		"name":       u.Name,
		"email":      u.Email,
		"phone":      u.Phone,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// UserChanges carries the fields of a partial update. Nil means "keep the
// stored value".
type UserChanges struct {
	Name  *string
	Email *string
	Phone *string
}

func (c *UserChanges) IsEmpty() bool {
	return c.Name == nil && c.Email == nil && c.Phone == nil
}
