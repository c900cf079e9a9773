package handler

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/user-management-backend/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/user-management-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/observability"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/validation"
	"github.com/marcos-nsantos/user-management-backend/internal/usecase/user"
)

const minSearchLength = 2

type UserHandler struct {
	userSvc UserService
	logger  *zap.Logger
}

func NewUserHandler(userSvc UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userSvc: userSvc, logger: logger}
}

// Home godoc
//
//	@Summary	Service banner
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	httputil.Envelope
//	@Router		/ [get]
func (h *UserHandler) Home(c *gin.Context) {
	httputil.OK(c, "User Management System", nil)
}

// List godoc
//
//	@Summary	List users
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	httputil.Envelope{data=[]response.UserResponse}
//	@Failure	429	{object}	httputil.Envelope
//	@Failure	500	{object}	httputil.Envelope
//	@Router		/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		h.fault(c, "error fetching users", err)
		return
	}

	httputil.OK(c, "", response.UsersFromEntities(users))
}

// Get godoc
//
//	@Summary	Get a user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	httputil.Envelope{data=response.UserResponse}
//	@Failure	400	{object}	httputil.Envelope	"Invalid user ID"
//	@Failure	404	{object}	httputil.Envelope	"User not found"
//	@Router		/user/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := validation.ValidateUserID(c.Param("id"))
	if !ok {
		httputil.HandleError(c, apperror.BadRequest("Invalid user ID"))
		return
	}

	u, err := h.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fault(c, "error fetching user", err, zap.Int64("user_id", id))
		return
	}
	if u == nil {
		httputil.HandleError(c, apperror.NotFound("User not found"))
		return
	}

	httputil.OK(c, "", response.UserFromEntity(*u))
}

// Create godoc
//
//	@Summary	Create a user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.CreateUserRequest	true	"User data"
//	@Success	201		{object}	httputil.Envelope{data=response.CreatedUserResponse}
//	@Failure	400		{object}	httputil.Envelope	"Missing fields"
//	@Failure	409		{object}	httputil.Envelope	"Email already exists"
//	@Failure	422		{object}	httputil.Envelope	"Validation failed"
//	@Router		/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req request.CreateUserRequest
	fieldErrs, err := bindJSON(c, &req)
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	if missing := req.MissingFields(); len(missing) > 0 {
		httputil.HandleError(c, apperror.BadRequest("Missing required fields: "+strings.Join(missing, ", ")))
		return
	}

	if !fieldErrs.Empty() {
		httputil.HandleError(c, apperror.Validation(fieldErrs))
		return
	}

	id, created, err := h.userSvc.Create(c.Request.Context(), user.CreateInput{
		Name:     strings.TrimSpace(*req.Name),
		Email:    normalizeEmail(*req.Email),
		Password: *req.Password,
	})
	if err != nil {
		h.fault(c, "error creating user", err)
		return
	}
	if !created {
		httputil.HandleError(c, apperror.Conflict("Email already exists"))
		return
	}

	h.logger.Info("user created", zap.Int64("user_id", id))
	httputil.Created(c, "User created successfully", response.CreatedUserResponse{ID: id})
}

// Update godoc
//
//	@Summary		Update a user
//	@Description	Changes name and/or email. A missing user and a taken email both answer 404.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"User ID"
//	@Param			request	body		request.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	httputil.Envelope
//	@Failure		400		{object}	httputil.Envelope
//	@Failure		404		{object}	httputil.Envelope
//	@Failure		422		{object}	httputil.Envelope
//	@Router			/user/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := validation.ValidateUserID(c.Param("id"))
	if !ok {
		httputil.HandleError(c, apperror.BadRequest("Invalid user ID"))
		return
	}

	var req request.UpdateUserRequest
	fieldErrs, err := bindJSON(c, &req)
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	if req.Empty() {
		httputil.HandleError(c, apperror.BadRequest("No fields to update"))
		return
	}

	if !fieldErrs.Empty() {
		httputil.HandleError(c, apperror.Validation(fieldErrs))
		return
	}

	var input user.UpdateInput
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		input.Name = &name
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		input.Email = &email
	}

	updated, err := h.userSvc.Update(c.Request.Context(), id, input)
	if err != nil {
		h.fault(c, "error updating user", err, zap.Int64("user_id", id))
		return
	}
	if !updated {
		httputil.HandleError(c, apperror.NotFound("User not found or email already exists"))
		return
	}

	h.logger.Info("user updated", zap.Int64("user_id", id))
	httputil.OK(c, "User updated successfully", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := validation.ValidateUserID(c.Param("id"))
	if !ok {
		httputil.HandleError(c, apperror.BadRequest("Invalid user ID"))
		return
	}

	deleted, err := h.userSvc.Delete(c.Request.Context(), id)
	if err != nil {
		h.fault(c, "error deleting user", err, zap.Int64("user_id", id))
		return
	}
	if !deleted {
		httputil.HandleError(c, apperror.NotFound("User not found"))
		return
	}

	h.logger.Info("user deleted", zap.Int64("user_id", id))
	httputil.OK(c, "User deleted successfully", nil)
}

func (h *UserHandler) Search(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		httputil.HandleError(c, apperror.BadRequest("Please provide a name to search"))
		return
	}
	if utf8.RuneCountInString(name) < minSearchLength {
		httputil.HandleError(c, apperror.BadRequest("Search term must be at least 2 characters"))
		return
	}

	users, err := h.userSvc.SearchByName(c.Request.Context(), name)
	if err != nil {
		h.fault(c, "error searching users", err)
		return
	}

	httputil.OK(c, "", response.UsersFromEntities(users))
}

// Login godoc
//
//	@Summary		Check credentials
//	@Description	Wrong email and wrong password are indistinguishable.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.LoginRequest	true	"Credentials"
//	@Success		200		{object}	httputil.Envelope{data=response.LoginResponse}
//	@Failure		400		{object}	httputil.Envelope
//	@Failure		401		{object}	httputil.Envelope	"Invalid email or password"
//	@Router			/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if _, err := bindJSON(c, &req); err != nil {
		httputil.HandleError(c, err)
		return
	}

	var email, password string
	if req.Email != nil {
		email = normalizeEmail(*req.Email)
	}
	if req.Password != nil {
		password = *req.Password
	}
	if email == "" || password == "" {
		httputil.HandleError(c, apperror.BadRequest("Email and password are required"))
		return
	}

	identity, err := h.userSvc.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		h.fault(c, "error during login", err)
		return
	}
	if identity == nil {
		observability.RecordLoginAttempt(false)
		h.logger.Warn("failed login attempt", zap.String("email", email), zap.String("ip", c.ClientIP()))
		httputil.HandleError(c, apperror.Unauthorized("Invalid email or password"))
		return
	}

	observability.RecordLoginAttempt(true)
	h.logger.Info("user logged in", zap.Int64("user_id", identity.ID))
	httputil.OK(c, "Login successful", response.LoginFromIdentity(*identity))
}

func (h *UserHandler) fault(c *gin.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err), zap.String("request_id", httputil.GetRequestID(c)))
	h.logger.Error(msg, fields...)
	httputil.HandleError(c, apperror.Internal(err))
}

// bindJSON decodes and validates the body. Rule violations come back as
// FieldErrors so callers can report missing fields first; err is only set
// when the body could not be decoded.
func bindJSON(c *gin.Context, dest any) (validation.FieldErrors, error) {
	err := c.ShouldBindJSON(dest)
	if err == nil {
		return validation.FieldErrors{}, nil
	}
	if fieldErrs, ok := validation.FromError(err); ok {
		return fieldErrs, nil
	}
	if errors.Is(err, io.EOF) {
		return nil, apperror.BadRequest("No JSON data provided")
	}
	return nil, apperror.BadRequest("Invalid JSON data")
}

// RegisterValidation installs the user field rules on gin's validator so the
// binding tags on the request DTOs resolve.
func RegisterValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return validation.Register(v)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
