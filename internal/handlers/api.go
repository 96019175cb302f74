package handlers

import (
	"errors"
	"net/http"

	"forkful/internal/middleware"
	"forkful/internal/services"
	"forkful/internal/utils"

	"github.com/gin-gonic/gin"
)

// APIHandler serves the JSON surface under /api. Sign-in issues a bearer
// token; everything else expects one.
type APIHandler struct {
	auth        *services.AuthService
	restaurants *services.RestaurantService
}

func NewAPIHandler(auth *services.AuthService, restaurants *services.RestaurantService) *APIHandler {
	return &APIHandler{
		auth:        auth,
		restaurants: restaurants,
	}
}

// SignIn exchanges credentials for a token. The user object in the response
// carries no password hash; the model strips it during serialization.
func (h *APIHandler) SignIn(c *gin.Context) {
	var body struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&body); err != nil {
		apiError(c, services.ErrValidation)
		return
	}

	user, err := h.auth.Authenticate(body.Email, body.Password)
	if err != nil {
		apiError(c, err)
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"token": token,
			"user":  user,
		},
	})
}

// ListRestaurants mirrors the page listing as JSON.
func (h *APIHandler) ListRestaurants(c *gin.Context) {
	params := services.ListParams{
		CategoryID: uint(utils.StringToInt(c.Query("categoryId"))),
		Page:       utils.StringToInt(c.DefaultQuery("page", "1")),
		Limit:      utils.StringToInt(c.DefaultQuery("limit", "0")),
	}

	result, err := h.restaurants.List(params, middleware.CurrentViewer(c))
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// apiError is the API-route error boundary: taxonomy mapped to a status
// code, body always {status, message}.
func apiError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, services.ErrValidation):
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, gin.H{
		"status":  "error",
		"message": err.Error(),
	})
}
