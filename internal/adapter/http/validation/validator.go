package validation

import (
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptbr_translations "github.com/go-playground/validator/v10/translations/pt_BR"

	"userapp/internal/core/model/response"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

// Product wording per field and rule. Anything not listed falls back to the
// pt_BR translator defaults.
var fieldMessages = map[string]string{
	"name.required":  "Digite um nome",
	"name.min":       "Digite o nome",
	"email.required": "Digite um e-mail",
	"email.email":    "Digite um e-mail válido",
	"phone.required": "Forneça um telefone",
	"phone.min":      "Digite um telefone válido",
	"phone.max":      "Digite um telefone válido",
}

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	ptBR := pt_BR.New()
	uni := ut.New(ptBR, ptBR)

	var found bool
	Translator, found = uni.GetTranslator("pt_BR")

	if !found {
		panic("translator pt_BR not found")
	}

	if err := ptbr_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}
}

// ValidateStruct collects every violated rule, one entry per rule, so callers
// can display all problems at once.
func ValidateStruct(value any) []response.FieldError {
	if err := Validator.Struct(value); err != nil {
		return FormatValidationErrors(err)
	}

	return nil
}

func FormatValidationErrors(err error) []response.FieldError {
	var errors []response.FieldError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			path := strings.ToLower(fieldError.Field())

			message, exists := fieldMessages[path+"."+fieldError.Tag()]

			if !exists {
				message = fieldError.Translate(Translator)
			}

			errors = append(errors, response.FieldError{
				Path:    path,
				Message: message,
				Code:    fieldError.Tag(),
			})
		}
	}

	return errors
}
