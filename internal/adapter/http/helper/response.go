package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"userapp/internal/core/domain"
	"userapp/internal/core/model/response"
)

func SendValidationError(c *gin.Context, errors []response.FieldError) {
	c.JSON(http.StatusBadRequest, response.ValidationErrorResponse{
		Message: "Erro de validação",
		Errors:  errors,
	})
}

func SendInvalidBodyError(c *gin.Context) {
	SendValidationError(c, []response.FieldError{
		{
			Path:    "body",
			Message: "Corpo da requisição inválido",
			Code:    "invalid_body",
		},
	})
}

func SendConflictError(c *gin.Context, conflict *domain.ConflictError) {
	c.JSON(http.StatusConflict, response.ConflictResponse{
		Path:    conflict.Path,
		Message: conflict.Message,
	})
}

func SendNotFoundError(c *gin.Context) {
	c.JSON(http.StatusNotFound, response.MessageResponse{
		Message: "Usuário não encontrado",
	})
}

func SendMissingIDError(c *gin.Context) {
	c.JSON(http.StatusBadRequest, response.MessageResponse{
		Message: "Id não fornecido",
	})
}

// SendUnknownError hides internal detail behind a generic message.
func SendUnknownError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, response.UnknownErrorResponse{
		Message:     "Erro desconhecido",
		Description: "Tente novamente mais tarde",
	})
}

// SendOperationError translates a service failure into the error contract:
// conflicts turn into 409, a missing user into 404, anything else stays
// generic.
func SendOperationError(c *gin.Context, err error) {
	var conflict *domain.ConflictError

	if errors.As(err, &conflict) {
		SendConflictError(c, conflict)
		return
	}

	if errors.Is(err, domain.ErrUserNotFound) {
		SendNotFoundError(c)
		return
	}

	SendUnknownError(c)
}
