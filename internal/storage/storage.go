// Package storage puts object storage behind a small interface so
// handlers never talk to the GCS SDK directly and tests can stub it.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// Object folders used across the service
const (
	CompanyImageFolder = "company_images"
	ResumeFolder       = "resumes"
)

// Uploader abstracts the object store used for logos and resumes.
type Uploader interface {
	// Upload stores the reader's content under folder and returns the public URL.
	Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	// Delete removes a previously stored object by its object name.
	Delete(ctx context.Context, objectName string) error
}

// GCSClient implements Uploader over a Google Cloud Storage bucket.
type GCSClient struct {
	BucketName string
	Client     *storage.Client
}

// NewGCSClient creates a storage client against the bucket named by
// the GCS_BUCKET environment variable.
func NewGCSClient(ctx context.Context) (*GCSClient, error) {
	bucketName := os.Getenv("GCS_BUCKET")
	if bucketName == "" {
		return nil, fmt.Errorf("GCS_BUCKET environment variable is not set")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}

	return &GCSClient{
		BucketName: bucketName,
		Client:     client,
	}, nil
}

// Upload writes the content to <folder>/<uuid><ext of filename> and returns
// the object's public URL.
func (g *GCSClient) Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	extension := ""
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		extension = filename[idx:]
	}
	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), extension)

	wc := g.Client.Bucket(g.BucketName).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(wc, r); err != nil {
		return "", fmt.Errorf("failed to write data to object: %v", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close object writer: %v", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.BucketName, objectName), nil
}

// Delete removes the object. Accepts either a bare object name or the
// public URL returned by Upload.
func (g *GCSClient) Delete(ctx context.Context, objectName string) error {
	objectName = g.trimPublicURL(objectName)
	if objectName == "" {
		return nil
	}
	return g.Client.Bucket(g.BucketName).Object(objectName).Delete(ctx)
}

func (g *GCSClient) trimPublicURL(name string) string {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", g.BucketName)
	return strings.TrimPrefix(name, prefix)
}
