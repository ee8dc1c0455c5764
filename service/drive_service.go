package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"storefront/models"
)

// ErrNoImageSource is returned when a variant has no image the source can fetch
var ErrNoImageSource = errors.New("variant has no image source")

// ImageSource fetches the original bytes of a variant image
type ImageSource interface {
	FetchImage(ctx context.Context, variant models.Variant) ([]byte, error)
}

// DriveService downloads variant images stored in Google Drive
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements ImageSource
var _ ImageSource = (*DriveService)(nil)

// NewDriveService creates a new DriveService from a Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	client, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveService{client: client}, nil
}

// FetchImage downloads the Drive file referenced by the variant
func (ds *DriveService) FetchImage(ctx context.Context, variant models.Variant) ([]byte, error) {
	if variant.DriveFileID == "" {
		return nil, ErrNoImageSource
	}

	log.Printf("📥 Downloading variant %d image from Drive (file_id: %s)", variant.ID, variant.DriveFileID)
	resp, err := ds.client.Files.Get(variant.DriveFileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", variant.DriveFileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", variant.DriveFileID, err)
	}
	return data, nil
}
