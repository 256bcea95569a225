package factory

import (
	"testing"

	. "github.com/onsi/gomega"

	"userapp/internal/core/domain"
)

func TestNewUserDefaults(t *testing.T) {
	RegisterTestingT(t)

	first := NewUser[domain.User]()
	second := NewUser[domain.User]()

	Expect(first.Name).NotTo(BeEmpty())
	Expect(first.Email).NotTo(Equal(second.Email))
	Expect(first.Phone).NotTo(Equal(second.Phone))
	Expect(first.UUID).NotTo(Equal(second.UUID))
	Expect(first.DeletedAt).To(BeNil())
}

func TestNewUserAppliesOverrides(t *testing.T) {
	RegisterTestingT(t)

	user := NewUser[domain.User](map[string]any{
		"Name":  "Ana Silva",
		"Email": "taken@example.com",
	})

	Expect(user.Name).To(Equal("Ana Silva"))
	Expect(user.Email).To(Equal("taken@example.com"))
	Expect(user.Phone).NotTo(BeEmpty())
}

func TestNewUserLaterOverridesWin(t *testing.T) {
	RegisterTestingT(t)

	user := NewUser[domain.User](
		map[string]any{"Phone": "11911111111"},
		map[string]any{"Phone": "11922222222"},
	)

	Expect(user.Phone).To(Equal("11922222222"))
}
