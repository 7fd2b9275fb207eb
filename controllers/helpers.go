package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgInvalidInput        = "invalid input"
	msgNotFound            = "Not found"
	msgInvalidID           = "Invalid id"
	msgEmailInUse          = "Email already in use"
	msgInvalidCredentials  = "Invalid credentials"
	msgInternalServerError = "Internal server error"
)

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// respondWithError reports a client-visible message and the underlying error.
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// respondServerError logs err and hides it from the client.
func respondServerError(ctx *gin.Context, message string, err error) {
	log.Printf("%s: %v", message, err)
	sendErrorResponse(ctx, http.StatusInternalServerError, message)
}

func respondLookupError(ctx *gin.Context, message string, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sendErrorResponse(ctx, http.StatusNotFound, msgNotFound)
		return
	}
	respondServerError(ctx, message, err)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return uint(id), true
}

type pagination struct {
	Page  int
	Limit int
}

func (p pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// parsePagination reads page/limit, clamping page to >= 1 and limit to 1..100.
func parsePagination(ctx *gin.Context, defaultLimit int) pagination {
	page, err := strconv.Atoi(ctx.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(ctx.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	limit = int(math.Min(float64(limit), 100))
	return pagination{Page: page, Limit: limit}
}

func pageResponse(items any, total int64, p pagination) gin.H {
	return gin.H{
		"items": items,
		"total": total,
		"page":  p.Page,
		"limit": p.Limit,
	}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a lowercase substring pattern for use with
// "LIKE ? ESCAPE '!'", so the user's % and _ match literally.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}
