package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dkarimov/user-account-service/internal/domain"
	"github.com/dkarimov/user-account-service/internal/usecase"
	"github.com/dkarimov/user-account-service/internal/validation"
	"github.com/gin-gonic/gin"
)

type userUsecaser interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, input usecase.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type UserHandler struct {
	userUsecase userUsecaser
	logger      *slog.Logger
}

func NewUserHandler(userUsecase userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		logger:      logger.With("component", "user_handler"),
	}
}

// GET /users
// An empty store is a 404, not an empty array. Documented behavior.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUsecase.List(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": errUsersNotFound})
		return
	}

	views := make([]userResponse, 0, len(users))
	for _, u := range users {
		views = append(views, newUserResponse(u))
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Users retrieved successfully",
		"users":   views,
	})
}

type createUserRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidBody})
		return
	}
	if errs := validation.Evaluate(req); !errs.Empty() {
		validationFailed(c, errs)
		return
	}

	user, err := h.userUsecase.Create(c.Request.Context(), usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			errs := validation.Errors{}
			errs.Add("email", validation.MsgEmailTaken)
			validationFailed(c, errs)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "create user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    newUserResponse(user),
	})
}

// updateUserRequest fields are all optional: an omitted field keeps the
// stored value. No password confirmation here, unlike create/register.
type updateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidBody})
		return
	}
	if errs := validation.Evaluate(req); !errs.Empty() {
		validationFailed(c, errs)
		return
	}

	user, err := h.userUsecase.Update(c.Request.Context(), usecase.UpdateUserInput{
		ID:       c.Param("id"),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		if errors.Is(err, domain.ErrEmailTaken) {
			errs := validation.Errors{}
			errs.Add("email", validation.MsgEmailTaken)
			validationFailed(c, errs)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "update user", "user_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    newUserResponse(user),
	})
}

// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.userUsecase.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete user", "user_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
