package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func overrideTestRouter() (http.Handler, *string, *string) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var updatedName, hit string
	r.PUT("/users/:id", func(c *gin.Context) {
		updatedName = c.PostForm("name")
		hit = "PUT /users/" + c.Param("id")
		c.Status(http.StatusOK)
	})
	r.DELETE("/comments/:id", func(c *gin.Context) {
		hit = "DELETE /comments/" + c.Param("id")
		c.Status(http.StatusOK)
	})
	r.POST("/comments", func(c *gin.Context) {
		hit = "POST /comments"
		c.Status(http.StatusOK)
	})

	return MethodOverride(r), &updatedName, &hit
}

func postForm(handler http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// A POST carrying _method must match the overridden route, and the form
// fields must survive the body parse the override itself triggers.
func TestMethodOverrideRoutesPostAsPut(t *testing.T) {
	handler, updatedName, hit := overrideTestRouter()

	w := postForm(handler, "/users/7", "_method=PUT&name=alice")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PUT /users/7", *hit)
	assert.Equal(t, "alice", *updatedName)
}

func TestMethodOverrideRoutesPostAsDelete(t *testing.T) {
	handler, _, hit := overrideTestRouter()

	w := postForm(handler, "/comments/3", "_method=DELETE")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DELETE /comments/3", *hit)
}

func TestMethodOverrideLeavesPlainPostAlone(t *testing.T) {
	handler, _, hit := overrideTestRouter()

	w := postForm(handler, "/comments", "text=tasty")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "POST /comments", *hit)

	// an unknown override value is not a method
	w = postForm(handler, "/comments", "_method=TRACE")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "POST /comments", *hit)
}
