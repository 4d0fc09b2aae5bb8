package handler

import (
	"net/http"
	"time"

	"github.com/dkarimov/user-account-service/internal/domain"
	"github.com/dkarimov/user-account-service/internal/validation"
	"github.com/gin-gonic/gin"
)

// userResponse is the output-only view of a user. The password hash
// deliberately has no field here.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func validationFailed(c *gin.Context, errs validation.Errors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": msgValidationFailed,
		"errors":  errs,
	})
}
