package handlers

import (
	"net/http"

	"forkful/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) ShowSignUp(c *gin.Context) {
	Render(c, http.StatusOK, "auth/signup.html", nil)
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	passwordCheck := c.PostForm("passwordCheck")

	if _, err := h.auth.SignUp(name, email, password, passwordCheck); err != nil {
		Render(c, http.StatusBadRequest, "auth/signup.html", gin.H{
			"Error": err.Error(),
			"Name":  name,
			"Email": email,
		})
		return
	}

	flashSuccess(c, "Account registered successfully, please sign in.")
	c.Redirect(http.StatusFound, "/signin")
}

func (h *AuthHandler) ShowSignIn(c *gin.Context) {
	Render(c, http.StatusOK, "auth/signin.html", nil)
}

// SignIn verifies credentials and opens a session keyed by the user id. The
// failure message never says whether the email or the password was wrong.
func (h *AuthHandler) SignIn(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.auth.Authenticate(email, password)
	if err != nil {
		Render(c, http.StatusUnauthorized, "auth/signin.html", gin.H{
			"Error": "Incorrect email or password.",
			"Email": email,
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	flashSuccess(c, "Signed in successfully.")
	c.Redirect(http.StatusFound, "/restaurants")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/signin")
}
