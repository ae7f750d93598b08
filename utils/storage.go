package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-resty/resty/v2"
)

const storageProbeTimeout = 5 * time.Second

// getUploader returns a configured S3 uploader.
func getUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadImage pushes a single multipart file to the configured bucket and
// returns the public URL of the stored object.
func UploadImage(file *multipart.FileHeader, keyPrefix string) (string, error) {
	uploader, err := getUploader()
	if err != nil {
		return "", err
	}

	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file %s: %w", file.Filename, err)
	}
	defer f.Close()

	// Unique key to prevent overwrites
	key := fmt.Sprintf("%s-%s-%s", keyPrefix, time.Now().Format("20060102150405"), file.Filename)

	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("AWS_BUCKET")),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading file %s: %w", file.Filename, err)
	}

	return result.Location, nil
}

// StorageAvailable probes the bucket endpoint. The probe is bounded by a
// timeout so a hanging storage service cannot stall the request.
func StorageAvailable() bool {
	endpoint := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", os.Getenv("AWS_BUCKET"), os.Getenv("AWS_REGION"))

	client := resty.New().SetTimeout(storageProbeTimeout)
	_, err := client.R().Get(endpoint)
	return err == nil
}
