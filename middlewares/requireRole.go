package middlewares

import (
	"net/http"
	"slices"

	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/gin-gonic/gin"
)

func RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal, exists := CurrentUser(ctx)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		if !slices.Contains(roles, principal.Role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}

		ctx.Next()
	}
}

// RequireVendorID rejects vendor tokens that were issued for an account
// without a vendor linkage, or whose account is no longer linked to that
// vendor.
func RequireVendorID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal, exists := CurrentUser(ctx)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		if principal.VendorID == nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "No vendorId on user"})
			return
		}

		var count int64
		err := initializers.DB.WithContext(ctx.Request.Context()).
			Model(&models.User{}).
			Where("id = ? AND vendor_id = ?", principal.UserID, *principal.VendorID).
			Count(&count).Error
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Unable to verify account", "error": err.Error()})
			return
		}
		if count == 0 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Account no longer exists"})
			return
		}
		ctx.Next()
	}
}
