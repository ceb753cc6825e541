// Package storage wraps Cloudinary, where uploaded source documents live.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// StoredFile is the handle for an uploaded object.
type StoredFile struct {
	SecureURL string
	PublicID  string
	Bytes     int64
}

// FileStore uploads and deletes backing file objects.
type FileStore interface {
	Upload(ctx context.Context, fileName string, r io.Reader) (*StoredFile, error)
	Delete(ctx context.Context, publicID string) error
}

type cloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore creates a FileStore from a CLOUDINARY_URL style
// connection string.
func NewCloudinaryStore(cloudinaryURL, folder string) (FileStore, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary url is not set")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &cloudinaryStore{cld: cld, folder: folder}, nil
}

func (c *cloudinaryStore) Upload(ctx context.Context, fileName string, r io.Reader) (*StoredFile, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:           c.folder,
		FilenameOverride: fileName,
		UseFilename:      api.Bool(true),
		UniqueFilename:   api.Bool(true),
		ResourceType:     "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload error: %s", res.Error.Message)
	}

	zap.S().Debugw("uploaded file to cloudinary",
		"publicId", res.PublicID,
		"bytes", res.Bytes)

	return &StoredFile{
		SecureURL: res.SecureURL,
		PublicID:  res.PublicID,
		Bytes:     int64(res.Bytes),
	}, nil
}

func (c *cloudinaryStore) Delete(ctx context.Context, publicID string) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary delete failed: %s", res.Result)
	}
	return nil
}
