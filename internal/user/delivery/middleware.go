package delivery

import (
	"strings"

	"vidtube-backend/internal/user/usecase"
	"vidtube-backend/pkg/apierror"
	"vidtube-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware accepts the access token from the accessToken cookie or a
// Bearer header, verifies it and loads the user into the request context.
func AuthMiddleware(userUsecase usecase.UserUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("accessToken")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				token = after
			}
		}

		if token == "" {
			response.Err(c, apierror.Unauthorized("authentication required"))
			c.Abort()
			return
		}

		user, err := userUsecase.ValidateAccessToken(token)
		if err != nil {
			response.Err(c, err)
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}
