package initializers

import (
	"context"
	"log"

	"github.com/campusthreads/marketplace-api/uploads"
)

var Uploads uploads.Store

// ConfigureUploads uses S3 when S3_BUCKET is set and the local upload
// directory otherwise.
func ConfigureUploads() {
	if AppConfig.S3Bucket != "" {
		store, err := uploads.NewS3Store(context.Background(), AppConfig.S3Bucket)
		if err != nil {
			log.Fatal("Failed to configure S3 uploads: ", err)
		}
		Uploads = store
		log.Println("Uploads stored in S3 bucket", AppConfig.S3Bucket)
		return
	}

	store, err := uploads.NewDiskStore(AppConfig.UploadDir, AppConfig.APIBaseURL)
	if err != nil {
		log.Fatal("Failed to configure disk uploads: ", err)
	}
	Uploads = store
	log.Println("Uploads stored in", AppConfig.UploadDir)
}
