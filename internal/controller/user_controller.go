package controller

import (
	"strconv"

	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/internal/middleware"
	"github.com/alimikegami/marketplace-service/internal/service"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	service service.UserService
}

func CreateUserController(e *echo.Group, service service.UserService, isLoggedIn echo.MiddlewareFunc, isAdmin echo.MiddlewareFunc) {
	c := UserController{
		service: service,
	}

	e.POST("/users/register", c.Register)
	e.POST("/users/login", c.Login)
	e.GET("/users/profile", c.GetProfile, isLoggedIn)
	e.PUT("/users/profile", c.UpdateProfile, isLoggedIn)
	e.PUT("/users/password", c.UpdatePassword, isLoggedIn)
	e.POST("/users/addresses", c.AddAddress, isLoggedIn)
	e.POST("/users/become-seller", c.BecomeSeller, isLoggedIn)
	e.GET("/users", c.GetUsers, isLoggedIn, isAdmin)
	e.GET("/users/:id", c.GetUserByID, isLoggedIn, isAdmin)
	e.PUT("/users/:id", c.UpdateUser, isLoggedIn, isAdmin)
	e.DELETE("/users/:id", c.DeleteUser, isLoggedIn, isAdmin)
}

func (c *UserController) Register(e echo.Context) error {
	payload := dto.RegisterRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Register").Msg("")
	}

	resp, err := c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", resp)
}

func (c *UserController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
	}

	resp, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *UserController) GetProfile(e echo.Context) error {
	user := middleware.CurrentUser(e)

	resp, err := c.service.GetProfile(e.Request().Context(), user.ID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *UserController) UpdateProfile(e echo.Context) error {
	user := middleware.CurrentUser(e)

	payload := dto.UpdateProfileRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateProfile").Msg("")
	}

	payload.UserID = user.ID

	resp, err := c.service.UpdateProfile(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *UserController) UpdatePassword(e echo.Context) error {
	user := middleware.CurrentUser(e)

	payload := dto.UpdatePasswordRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdatePassword").Msg("")
	}

	payload.UserID = user.ID

	if err := c.service.UpdatePassword(e.Request().Context(), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *UserController) AddAddress(e echo.Context) error {
	user := middleware.CurrentUser(e)

	payload := dto.AddressRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddAddress").Msg("")
	}

	payload.UserID = user.ID

	if err := c.service.AddAddress(e.Request().Context(), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", nil)
}

func (c *UserController) BecomeSeller(e echo.Context) error {
	user := middleware.CurrentUser(e)

	payload := dto.BecomeSellerRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "BecomeSeller").Msg("")
	}

	payload.UserID = user.ID

	resp, err := c.service.BecomeSeller(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *UserController) GetUsers(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetUsers").Msg("")
	}

	resp, err := c.service.GetUsers(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved users record", resp)
}

func (c *UserController) GetUserByID(e echo.Context) error {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrAccountNotFound, nil)
	}

	resp, err := c.service.GetUserByID(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *UserController) UpdateUser(e echo.Context) error {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrAccountNotFound, nil)
	}

	payload := dto.AdminUpdateUserRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Error().Err(err).Str("component", "UpdateUser").Msg("")
	}

	payload.UserID = id

	if err := c.service.UpdateUserByAdmin(e.Request().Context(), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *UserController) DeleteUser(e echo.Context) error {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrAccountNotFound, nil)
	}

	if err := c.service.DeleteUser(e.Request().Context(), id); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}
