package repository

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "userapp/pkg/test"

	"userapp/internal/core/domain"
	"userapp/internal/core/port"

	factory "userapp/pkg/test/factory"
)

type UserRepositorySuite struct {
	suite.Suite
	Repo port.UserRepository
}

var ctx = context.Background()

func (s *UserRepositorySuite) SetupTest() {
	// Rebind gomega to the current subtest so a failure aborts only it.
	RegisterTestingT(s.T())

	db := InitTestDB()
	s.Repo = NewUserRepository(db)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) TestCreateAndGetByUUID() {
	user := factory.NewUser[domain.User](map[string]any{
		"Name":  "Joana",
		"Email": "joana@x.com",
		"Phone": "11999999999",
	})

	saved, err := s.Repo.Create(ctx, user)

	Expect(err).To(BeNil())
	Expect(saved.ID).To(BeNumerically(">", 0))
	Expect(saved.UUID).To(Equal(user.UUID))
	Expect(saved.DeletedAt).To(BeNil())

	found, err := s.Repo.GetByUUID(ctx, user.UUID.String())

	Expect(err).To(BeNil())
	Expect(found).NotTo(BeNil())
	Expect(found.Name).To(Equal("Joana"))
	Expect(found.Email).To(Equal("joana@x.com"))
	Expect(found.Phone).To(Equal("11999999999"))
}

func (s *UserRepositorySuite) TestGetByEmailAbsent() {
	found, err := s.Repo.GetByEmail(ctx, "nobody@example.com")

	Expect(err).To(BeNil())
	Expect(found).To(BeNil())
}

func (s *UserRepositorySuite) TestGetByPhoneAbsent() {
	found, err := s.Repo.GetByPhone(ctx, "11900000000")

	Expect(err).To(BeNil())
	Expect(found).To(BeNil())
}

func (s *UserRepositorySuite) TestCreateDuplicateEmailHitsConstraint() {
	first := factory.NewUser[domain.User](map[string]any{"Email": "dup@example.com"})
	_, err := s.Repo.Create(ctx, first)
	Expect(err).To(BeNil())

	second := factory.NewUser[domain.User](map[string]any{"Email": "dup@example.com"})
	_, err = s.Repo.Create(ctx, second)

	var conflict *domain.ConflictError
	Expect(err).To(HaveOccurred())
	s.Require().ErrorAs(err, &conflict)
	Expect(conflict.Path).To(Equal("email"))
}

func (s *UserRepositorySuite) TestCreateDuplicatePhoneHitsConstraint() {
	first := factory.NewUser[domain.User](map[string]any{"Phone": "11988887777"})
	_, err := s.Repo.Create(ctx, first)
	Expect(err).To(BeNil())

	second := factory.NewUser[domain.User](map[string]any{"Phone": "11988887777"})
	_, err = s.Repo.Create(ctx, second)

	var conflict *domain.ConflictError
	Expect(err).To(HaveOccurred())
	s.Require().ErrorAs(err, &conflict)
	Expect(conflict.Path).To(Equal("phone"))
}

func (s *UserRepositorySuite) TestListExcludesSoftDeleted() {
	kept, _ := s.Repo.Create(ctx, factory.NewUser[domain.User]())
	gone, _ := s.Repo.Create(ctx, factory.NewUser[domain.User]())

	err := s.Repo.SoftDeleteByUUID(ctx, gone.UUID.String())
	Expect(err).To(BeNil())

	users, err := s.Repo.List(ctx, port.ListFilter{})

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(1))
	Expect(users[0].UUID).To(Equal(kept.UUID))

	// Direct lookup still resolves the soft-deleted row.
	found, err := s.Repo.GetByUUID(ctx, gone.UUID.String())
	Expect(err).To(BeNil())
	Expect(found).NotTo(BeNil())
	Expect(found.DeletedAt).NotTo(BeNil())
}

func (s *UserRepositorySuite) TestListSearchBySubstring() {
	s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Name": "Ana Silva"}))
	s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Name": "Mariana"}))
	s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Name": "Carlos"}))

	users, err := s.Repo.List(ctx, port.ListFilter{Search: "ana"})

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(2))

	names := []string{users[0].Name, users[1].Name}
	Expect(names).To(ContainElements("Ana Silva", "Mariana"))
}

func (s *UserRepositorySuite) TestListDateRangeInclusive() {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	older := factory.NewUser[domain.User](map[string]any{"CreatedAt": base.AddDate(0, 0, -5)})
	inside := factory.NewUser[domain.User](map[string]any{"CreatedAt": base})
	newer := factory.NewUser[domain.User](map[string]any{"CreatedAt": base.AddDate(0, 0, 5)})

	s.Repo.Create(ctx, older)
	s.Repo.Create(ctx, inside)
	s.Repo.Create(ctx, newer)

	from := base.AddDate(0, 0, -1)
	to := base.AddDate(0, 0, 1)

	users, err := s.Repo.List(ctx, port.ListFilter{From: &from, To: &to})

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(1))
	Expect(users[0].UUID).To(Equal(inside.UUID))

	// Bounds are inclusive.
	exact := base
	users, err = s.Repo.List(ctx, port.ListFilter{From: &exact, To: &exact})

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(1))
}

func (s *UserRepositorySuite) TestListDeterministicOrder() {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	second := factory.NewUser[domain.User](map[string]any{"CreatedAt": base.Add(time.Hour)})
	first := factory.NewUser[domain.User](map[string]any{"CreatedAt": base})

	s.Repo.Create(ctx, second)
	s.Repo.Create(ctx, first)

	users, err := s.Repo.List(ctx, port.ListFilter{})

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(2))
	Expect(users[0].UUID).To(Equal(first.UUID))
	Expect(users[1].UUID).To(Equal(second.UUID))
}

func (s *UserRepositorySuite) TestUpdatePartialFields() {
	user, _ := s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"Name":  "Before",
		"Email": "before@example.com",
	}))

	name := "After"
	updated, err := s.Repo.UpdateByUUID(ctx, user.UUID.String(), domain.UserChanges{Name: &name})

	Expect(err).To(BeNil())
	Expect(updated.Name).To(Equal("After"))
	Expect(updated.Email).To(Equal("before@example.com"))
	Expect(updated.UpdatedAt.After(user.UpdatedAt) || updated.UpdatedAt.Equal(user.UpdatedAt)).To(BeTrue())
}

func (s *UserRepositorySuite) TestUpdateUnknownUUID() {
	name := "Nobody"
	_, err := s.Repo.UpdateByUUID(ctx, "00000000-0000-0000-0000-000000000000", domain.UserChanges{Name: &name})

	Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *UserRepositorySuite) TestSoftDeleteUnknownUUID() {
	err := s.Repo.SoftDeleteByUUID(ctx, "00000000-0000-0000-0000-000000000000")

	Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *UserRepositorySuite) TestListSearchTreatsWildcardsLiterally() {
	s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Name": "100% Algodão"}))
	s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Name": "100x Algodão"}))
	s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Name": "Ana_Maria"}))
	s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Name": "AnaXMaria"}))

	users, err := s.Repo.List(ctx, port.ListFilter{Search: "100%"})

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(1))
	Expect(users[0].Name).To(Equal("100% Algodão"))

	users, err = s.Repo.List(ctx, port.ListFilter{Search: "Ana_"})

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(1))
	Expect(users[0].Name).To(Equal("Ana_Maria"))
}
