package http

import (
	"userapp/internal/adapter/http/handler"
	"userapp/internal/core/port"
	"userapp/internal/core/service"
	"userapp/internal/core/telemetry"
)

type Container struct {
	UserRepo    port.UserRepository
	UserService port.UserService
	UserHandler *handler.UserHandler
}

func NewContainer(userRepo port.UserRepository, metrics *telemetry.AppMetrics) *Container {
	userSvc := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userSvc, metrics)

	return &Container{
		UserRepo:    userRepo,
		UserService: userSvc,
		UserHandler: userHandler,
	}
}
