package validation

import (
	"testing"

	. "github.com/onsi/gomega"

	"userapp/internal/core/model/request"
	"userapp/internal/core/model/response"
)

func errorFor(errs []response.FieldError, path string) *response.FieldError {
	for i := range errs {
		if errs[i].Path == path {
			return &errs[i]
		}
	}

	return nil
}

func TestValidateStructValidRequest(t *testing.T) {
	RegisterTestingT(t)

	errs := ValidateStruct(request.CreateUserRequest{
		Name:  "Joana Silva",
		Email: "joana@example.com",
		Phone: "11999999999",
	})

	Expect(errs).To(BeNil())
}

func TestValidateStructEmptyRequestCollectsAllFields(t *testing.T) {
	RegisterTestingT(t)

	errs := ValidateStruct(request.CreateUserRequest{})

	Expect(errs).To(HaveLen(3))

	name := errorFor(errs, "name")
	Expect(name).NotTo(BeNil())
	Expect(name.Message).To(Equal("Digite um nome"))
	Expect(name.Code).To(Equal("required"))

	email := errorFor(errs, "email")
	Expect(email).NotTo(BeNil())
	Expect(email.Message).To(Equal("Digite um e-mail"))
	Expect(email.Code).To(Equal("required"))

	phone := errorFor(errs, "phone")
	Expect(phone).NotTo(BeNil())
	Expect(phone.Message).To(Equal("Forneça um telefone"))
	Expect(phone.Code).To(Equal("required"))
}

func TestValidateStructInvalidEmail(t *testing.T) {
	RegisterTestingT(t)

	errs := ValidateStruct(request.CreateUserRequest{
		Name:  "Joana",
		Email: "not-an-email",
		Phone: "11999999999",
	})

	Expect(errs).To(HaveLen(1))
	Expect(errs[0].Path).To(Equal("email"))
	Expect(errs[0].Message).To(Equal("Digite um e-mail válido"))
	Expect(errs[0].Code).To(Equal("email"))
}

func TestValidateStructPhoneLength(t *testing.T) {
	RegisterTestingT(t)

	short := ValidateStruct(request.CreateUserRequest{
		Name:  "Joana",
		Email: "joana@example.com",
		Phone: "123",
	})

	Expect(short).To(HaveLen(1))
	Expect(short[0].Path).To(Equal("phone"))
	Expect(short[0].Message).To(Equal("Digite um telefone válido"))
	Expect(short[0].Code).To(Equal("min"))

	long := ValidateStruct(request.CreateUserRequest{
		Name:  "Joana",
		Email: "joana@example.com",
		Phone: "119999999999",
	})

	Expect(long).To(HaveLen(1))
	Expect(long[0].Path).To(Equal("phone"))
	Expect(long[0].Code).To(Equal("max"))
}
