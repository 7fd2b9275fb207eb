package middlewares

import (
	"net/http"
	"strings"

	"github.com/campusthreads/marketplace-api/utils"
	"github.com/gin-gonic/gin"
)

const principalKey = "user"

// RequireAuth verifies the bearer token and stores the caller's principal in
// the gin context.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing Authorization header"})
			return
		}

		principal, err := utils.ParseJWT(strings.TrimSpace(token))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		ctx.Set(principalKey, principal)
		ctx.Next()
	}
}

func CurrentUser(ctx *gin.Context) (utils.Principal, bool) {
	value, exists := ctx.Get(principalKey)
	if !exists {
		return utils.Principal{}, false
	}
	principal, ok := value.(utils.Principal)
	return principal, ok
}

// MustCurrentUser is for handlers mounted behind RequireAuth.
func MustCurrentUser(ctx *gin.Context) utils.Principal {
	principal, ok := CurrentUser(ctx)
	if !ok {
		panic("middlewares: handler mounted without RequireAuth")
	}
	return principal
}
