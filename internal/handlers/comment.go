package handlers

import (
	"fmt"
	"net/http"

	"forkful/internal/middleware"
	"forkful/internal/services"
	"forkful/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) Create(c *gin.Context) {
	viewer := middleware.CurrentViewer(c)
	restaurantID := uint(utils.StringToInt(c.PostForm("restaurantId")))
	text := c.PostForm("text")

	if _, err := h.comments.Create(viewer.ID, restaurantID, text); err != nil {
		handlePageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/restaurants/%d", restaurantID))
}

// Delete is reachable only through the admin gate.
func (h *CommentHandler) Delete(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))

	restaurantID, err := h.comments.Delete(id)
	if err != nil {
		handlePageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/restaurants/%d", restaurantID))
}
