package handlers

import (
	"net/http"

	"roamcms/internal/constants"
	"roamcms/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks if an operator is authenticated via session flag.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		authenticated := session.Get(constants.SessionKeyAuthenticated)

		if authenticated == nil || !authenticated.(bool) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}

// ProfileMiddleware puts the cached provider profile and the login
// status into the request context for the templates.
func ProfileMiddleware(profiles *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyProfile, profiles.Get())

		session := sessions.Default(c)
		isLoggedIn := session.Get(constants.SessionKeyAuthenticated)
		c.Set(constants.ContextKeyIsLoggedIn, isLoggedIn != nil && isLoggedIn.(bool))

		c.Next()
	}
}

// render is a helper function to render templates with common data.
func render(c *gin.Context, status int, templateName string, data gin.H) {
	if profile, exists := c.Get(constants.ContextKeyProfile); exists {
		if _, ok := data["Profile"]; !ok {
			data["Profile"] = profile
		}
	}

	if isLoggedIn, exists := c.Get(constants.ContextKeyIsLoggedIn); exists {
		data["IsLoggedIn"] = isLoggedIn
	}

	c.HTML(status, templateName, data)
}
