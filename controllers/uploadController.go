package controllers

import (
	"net/http"

	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/gin-gonic/gin"
)

// UploadImage stores a single multipart "file" and returns its public URL.
func UploadImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondServerError(ctx, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	url, err := initializers.Uploads.Save(ctx.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		respondServerError(ctx, "Failed to store uploaded file", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"url": url})
}
