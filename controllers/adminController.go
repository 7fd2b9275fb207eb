package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/campusthreads/marketplace-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const vendorWelcomeTemplate = "templates/vendor_welcome.html"

var errEmailInUse = errors.New("email already in use")

type createVendorInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	StoreName string `json:"storeName" binding:"required"`
	Bio       string `json:"bio"`
}

type updateVendorInput struct {
	StoreName *string `json:"storeName" binding:"omitnil,min=1"`
	Bio       *string `json:"bio"`
}

func GetVendors(ctx *gin.Context) {
	page := parsePagination(ctx, 20)

	query := initializers.DB.Model(&models.Vendor{})
	if q := strings.TrimSpace(ctx.Query("q")); q != "" {
		query = query.Where("LOWER(store_name) LIKE ? ESCAPE '!'", containsPattern(q))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondServerError(ctx, "Unable to fetch vendors", err)
		return
	}

	vendors := []models.Vendor{}
	err := query.Order("created_at DESC, id DESC").Limit(page.Limit).Offset(page.Offset()).Find(&vendors).Error
	if err != nil {
		respondServerError(ctx, "Unable to fetch vendors", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, pageResponse(vendors, total, page))
}

// CreateVendor creates a vendor and its linked vendor login together.
func CreateVendor(ctx *gin.Context) {
	var input createVendorInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		respondServerError(ctx, "failed to hash password", err)
		return
	}

	vendor := models.Vendor{StoreName: input.StoreName, Bio: input.Bio}
	var user models.User
	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errEmailInUse
		}
		if err := tx.Create(&vendor).Error; err != nil {
			return err
		}
		user = models.User{
			Email:        input.Email,
			PasswordHash: hashedPassword,
			Role:         models.RoleVendor,
			VendorID:     &vendor.ID,
		}
		return tx.Create(&user).Error
	})
	if errors.Is(err, errEmailInUse) {
		sendErrorResponse(ctx, http.StatusConflict, msgEmailInUse)
		return
	}
	if err != nil {
		respondServerError(ctx, "Vendor creation error", err)
		return
	}

	go sendVendorWelcome(user.Email, vendor.StoreName, storefrontURL("/login"))

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"vendor": vendor, "user": user.Summary()})
}

// storefrontURL resolves a path against the first allowed browser origin.
func storefrontURL(path string) string {
	if origins := initializers.AppConfig.CORSOrigins; len(origins) > 0 {
		return strings.TrimRight(origins[0], "/") + path
	}
	return path
}

func sendVendorWelcome(email, storeName, loginURL string) {
	data := utils.EmailData{
		Name:      email,
		StoreName: storeName,
		Message:   "Your vendor account is ready. Sign in to add products and manage orders.",
		LoginURL:  loginURL,
	}
	err := utils.SendEmail(email, "Your store is live", data, vendorWelcomeTemplate)
	if errors.Is(err, utils.ErrMailNotConfigured) {
		return
	}
	if err != nil {
		log.Printf("Failed to send vendor welcome email to %s: %v", email, err)
	}
}

func UpdateVendor(ctx *gin.Context) {
	vendorID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var input updateVendorInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	var vendor models.Vendor
	if err := initializers.DB.First(&vendor, vendorID).Error; err != nil {
		respondLookupError(ctx, "Unable to fetch vendor", err)
		return
	}

	fields := map[string]any{}
	if input.StoreName != nil {
		fields["store_name"] = *input.StoreName
	}
	if input.Bio != nil {
		fields["bio"] = *input.Bio
	}
	if len(fields) > 0 {
		if err := initializers.DB.Model(&vendor).Updates(fields).Error; err != nil {
			respondServerError(ctx, "Unable to update vendor", err)
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, vendor)
}

// DeleteVendor removes the vendor together with every account linked to it.
func DeleteVendor(ctx *gin.Context) {
	vendorID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Unscoped().Delete(&models.Vendor{}, vendorID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Unscoped().Where("vendor_id = ?", vendorID).Delete(&models.User{}).Error
	})
	if err != nil {
		respondLookupError(ctx, "Unable to delete vendor", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"ok": true})
}
