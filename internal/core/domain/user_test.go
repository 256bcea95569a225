package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_IsDeleted(t *testing.T) {
	t.Run("should return false when DeletedAt is nil", func(t *testing.T) {
		user := User{
			DeletedAt: nil,
		}

		assert.False(t, user.IsDeleted())
	})

	t.Run("should return true when DeletedAt is set", func(t *testing.T) {
		now := time.Now()
		user := User{
			DeletedAt: &now,
		}

		assert.True(t, user.IsDeleted())
	})
}

func TestUserChanges_IsEmpty(t *testing.T) {
	t.Run("should return true when no field is set", func(t *testing.T) {
		changes := UserChanges{}

		assert.True(t, changes.IsEmpty())
	})

	t.Run("should return false when any field is set", func(t *testing.T) {
		name := "Joana"
		changes := UserChanges{Name: &name}

		assert.False(t, changes.IsEmpty())
	})
}

func TestConflictError(t *testing.T) {
	t.Run("email conflict carries the field path", func(t *testing.T) {
		err := NewEmailConflict()

		assert.Equal(t, "email", err.Path)
		assert.Equal(t, "E-mail já foi utilizado", err.Message)
	})

	t.Run("phone conflict carries the field path", func(t *testing.T) {
		err := NewPhoneConflict()

		assert.Equal(t, "phone", err.Path)
		assert.Equal(t, "Telefone já foi utilizado", err.Message)
	})
}
