package handlers

import (
	"net/http"

	"forkful/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Render injects the current viewer and any pending flash messages before
// handing off to the template.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if viewer := middleware.CurrentViewer(c); viewer != nil {
		obj["CurrentUser"] = viewer
	}

	session := sessions.Default(c)
	if flashes := session.Flashes("success"); len(flashes) > 0 {
		obj["SuccessMessages"] = flashes
	}
	if flashes := session.Flashes("error"); len(flashes) > 0 {
		obj["ErrorMessages"] = flashes
	}
	session.Save()

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

func flashSuccess(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, "success")
	session.Save()
}

func flashError(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, "error")
	session.Save()
}

// redirectBack sends the browser to the referring page, mirroring the
// post-mutation flow of every engagement action.
func redirectBack(c *gin.Context) {
	referer := c.Request.Referer()
	if referer == "" {
		referer = "/restaurants"
	}
	c.Redirect(http.StatusFound, referer)
}

// handlePageError is the page-route error boundary: every failure flashes a
// readable message and bounces back to where the user came from.
func handlePageError(c *gin.Context, err error) {
	flashError(c, err.Error())
	redirectBack(c)
}
