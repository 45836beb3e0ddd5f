package handlers

import (
	"net/http"

	"roamcms/internal/apiclient"
	"roamcms/internal/constants"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	api *apiclient.Client
}

func NewAuthHandler(api *apiclient.Client) *AuthHandler {
	return &AuthHandler{api: api}
}

func (h *AuthHandler) ShowLoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{})
}

// Login exchanges the submitted credentials for an API token. The token
// lives in the API client; the browser session only carries a flag.
func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if err := h.api.Login(c.Request.Context(), email, password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": apiclient.Message(err, "登录失败，请检查邮箱和密码！"),
		})
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyAuthenticated, true)
	session.Save()
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/login")
}
