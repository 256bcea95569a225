package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"userapp/internal/adapter/http/helper"
	"userapp/internal/adapter/http/validation"
	"userapp/internal/core/domain"
	"userapp/internal/core/model/request"
	"userapp/internal/core/model/response"
	"userapp/internal/core/port"
	"userapp/internal/core/telemetry"
)

type UserHandler struct {
	svc     port.UserService
	metrics *telemetry.AppMetrics
}

func NewUserHandler(svc port.UserService, metrics *telemetry.AppMetrics) *UserHandler {
	return &UserHandler{
		svc:     svc,
		metrics: metrics,
	}
}

func (h *UserHandler) recordOperation(c *gin.Context, operation string) {
	if h.metrics != nil {
		h.metrics.RecordUserOperation(c.Request.Context(), operation)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	filter := port.ListFilter{
		Search: c.Query("search"),
	}

	from, ok := parseDateParam(c, "from")

	if !ok {
		return
	}

	to, ok := parseDateParam(c, "to")

	if !ok {
		return
	}

	filter.From = from
	filter.To = to

	users, err := h.svc.List(ctx, filter)

	if err != nil {
		slog.Error("Error listing users", "error", err)
		helper.SendUnknownError(c)
		return
	}

	h.recordOperation(c, "list")
	c.JSON(http.StatusOK, response.NewUserListResponse(users))
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.CreateUserRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendInvalidBodyError(c)
		return
	}

	if errs := validation.ValidateStruct(params); errs != nil {
		helper.SendValidationError(c, errs)
		return
	}

	user, err := h.svc.Create(ctx, params.Name, params.Email, params.Phone)

	if err != nil {
		helper.SendOperationError(c, err)
		return
	}

	h.recordOperation(c, "create")
	c.JSON(http.StatusOK, response.NewUserResponse(user))
}

func (h *UserHandler) ShowUser(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")

	if id == "" {
		helper.SendMissingIDError(c)
		return
	}

	// Malformed ids resolve like unknown ones.
	if _, err := uuid.Parse(id); err != nil {
		helper.SendNotFoundError(c)
		return
	}

	user, err := h.svc.GetByUUID(ctx, id)

	if err != nil {
		slog.Error("Error getting user", "error", err, "id", id)
		helper.SendUnknownError(c)
		return
	}

	if user == nil {
		helper.SendNotFoundError(c)
		return
	}

	h.recordOperation(c, "show")
	c.JSON(http.StatusOK, response.NewUserResponse(*user))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")

	if id == "" {
		helper.SendMissingIDError(c)
		return
	}

	if _, err := uuid.Parse(id); err != nil {
		helper.SendNotFoundError(c)
		return
	}

	var params request.UpdateUserRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendInvalidBodyError(c)
		return
	}

	changes := domain.UserChanges{
		Name:  params.Name,
		Email: params.Email,
		Phone: params.Phone,
	}

	user, err := h.svc.UpdateByUUID(ctx, id, changes)

	if err != nil {
		helper.SendOperationError(c, err)
		return
	}

	h.recordOperation(c, "update")
	c.JSON(http.StatusOK, response.NewUserResponse(user))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")

	if id == "" {
		helper.SendMissingIDError(c)
		return
	}

	if _, err := uuid.Parse(id); err != nil {
		helper.SendNotFoundError(c)
		return
	}

	if err := h.svc.DeleteByUUID(ctx, id); err != nil {
		helper.SendOperationError(c, err)
		return
	}

	h.recordOperation(c, "delete")
	c.Status(http.StatusNoContent)
}

// parseDateParam accepts a plain date or a full RFC 3339 timestamp. Bounds are
// inclusive on both sides.
func parseDateParam(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)

	if raw == "" {
		return nil, true
	}

	if t, err := time.Parse("2006-01-02", raw); err == nil {
		if name == "to" {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, true
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}

	helper.SendValidationError(c, []response.FieldError{
		{
			Path:    name,
			Message: "Data inválida",
			Code:    "invalid_date",
		},
	})

	return nil, false
}
