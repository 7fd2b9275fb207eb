package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/campusthreads/marketplace-api/middlewares"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/campusthreads/marketplace-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type registerInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role" binding:"omitempty,oneof=customer vendor"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl" binding:"omitempty,url"`
	Campus      string `json:"campus"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type profileInput struct {
	DisplayName *string `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
	Campus      *string `json:"campus"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	Email       *string `json:"email" binding:"omitnil,email"`
}

type passwordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=6"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func validURL(raw string) bool {
	validate, ok := binding.Validator.Engine().(*validator.Validate)
	return ok && validate.Var(raw, "url") == nil
}

func emailTaken(email string, exceptID uint) (bool, error) {
	var count int64
	query := initializers.DB.Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ?", email).First(&user)
	return user, result.Error
}

// Register creates a customer (or self-declared vendor) account.
func Register(ctx *gin.Context) {
	var input registerInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	exists, err := emailTaken(input.Email, 0)
	if err != nil {
		respondServerError(ctx, "Database error during user check", err)
		return
	}
	if exists {
		sendErrorResponse(ctx, http.StatusConflict, msgEmailInUse)
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		respondServerError(ctx, "failed to hash password", err)
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		Profile: models.Profile{
			DisplayName: input.DisplayName,
			AvatarURL:   input.AvatarURL,
			Campus:      input.Campus,
			Phone:       input.Phone,
			Address:     input.Address,
		},
	}
	if err := initializers.DB.Create(&user).Error; err != nil {
		respondServerError(ctx, "User creation error", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, user.Summary())
}

// Login handles user authentication
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	user, err := findUserByEmail(loginData.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("Database error during login:", err)
		}
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := utils.ComparePasswords(user.PasswordHash, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	tokenString, err := utils.GenerateJWT(user)
	if err != nil {
		respondServerError(ctx, "failed to generate token", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString, "user": user.Summary()})
}

func GetMe(ctx *gin.Context) {
	principal := middlewares.MustCurrentUser(ctx)

	var user models.User
	if err := initializers.DB.First(&user, principal.UserID).Error; err != nil {
		respondLookupError(ctx, "Unable to fetch account", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, user.SummaryWithProfile())
}

// UpdateProfile changes profile fields and optionally the email. Phone and
// address are only replaced by non-empty values.
func UpdateProfile(ctx *gin.Context) {
	principal := middlewares.MustCurrentUser(ctx)

	var input profileInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, principal.UserID).Error; err != nil {
		respondLookupError(ctx, "Unable to fetch account", err)
		return
	}

	if input.Email != nil && *input.Email != user.Email {
		taken, err := emailTaken(*input.Email, user.ID)
		if err != nil {
			respondServerError(ctx, "Database error during user check", err)
			return
		}
		if taken {
			sendErrorResponse(ctx, http.StatusConflict, msgEmailInUse)
			return
		}
		user.Email = *input.Email
	}

	if input.DisplayName != nil {
		user.Profile.DisplayName = *input.DisplayName
	}
	if input.AvatarURL != nil {
		if *input.AvatarURL != "" && !validURL(*input.AvatarURL) {
			sendErrorResponse(ctx, http.StatusBadRequest, "avatarUrl must be a URL")
			return
		}
		user.Profile.AvatarURL = *input.AvatarURL
	}
	if input.Campus != nil {
		user.Profile.Campus = *input.Campus
	}
	if input.Phone != "" {
		user.Profile.Phone = input.Phone
	}
	if input.Address != "" {
		user.Profile.Address = input.Address
	}

	if err := initializers.DB.Save(&user).Error; err != nil {
		respondServerError(ctx, "Unable to update profile", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, user.SummaryWithProfile())
}

func ChangePassword(ctx *gin.Context) {
	principal := middlewares.MustCurrentUser(ctx)

	var input passwordInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, principal.UserID).Error; err != nil {
		respondLookupError(ctx, "Unable to fetch account", err)
		return
	}

	if err := utils.ComparePasswords(user.PasswordHash, input.CurrentPassword); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Invalid current password")
		return
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		respondServerError(ctx, "failed to hash password", err)
		return
	}

	if err := initializers.DB.Model(&user).Update("password_hash", hashedPassword).Error; err != nil {
		respondServerError(ctx, "Unable to change password", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"ok": true})
}
