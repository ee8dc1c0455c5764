package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/models"
)

// maxImageBytes bounds downloads of original images
const maxImageBytes = 20 << 20

// HTTPImageSource fetches variant images by URL; relative URLs resolve against baseURL
type HTTPImageSource struct {
	client  *http.Client
	baseURL string
}

// Ensure HTTPImageSource implements ImageSource
var _ ImageSource = (*HTTPImageSource)(nil)

// NewHTTPImageSource creates an HTTPImageSource; a nil client gets a 15 second timeout client
func NewHTTPImageSource(client *http.Client, baseURL string) *HTTPImageSource {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPImageSource{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *HTTPImageSource) resolve(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("invalid image url %q: %w", imageURL, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	if s.baseURL == "" {
		return "", fmt.Errorf("relative image url %q without base url", imageURL)
	}
	base, err := url.Parse(s.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	return base.ResolveReference(u).String(), nil
}

// FetchImage downloads the variant's image URL
func (s *HTTPImageSource) FetchImage(ctx context.Context, variant models.Variant) ([]byte, error) {
	if variant.ImageURL == "" {
		return nil, ErrNoImageSource
	}
	target, err := s.resolve(variant.ImageURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image request returned status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

// VariantImageService serves optimized variant images, preferring Drive when the variant lives there
type VariantImageService struct {
	optimizer *ImageOptimizer
	drive     ImageSource
	web       ImageSource
}

// NewVariantImageService creates a VariantImageService; drive may be nil when Drive is not configured
func NewVariantImageService(optimizer *ImageOptimizer, drive ImageSource, web ImageSource) *VariantImageService {
	return &VariantImageService{
		optimizer: optimizer,
		drive:     drive,
		web:       web,
	}
}

func (s *VariantImageService) sourceFor(variant models.Variant) ImageSource {
	if variant.DriveFileID != "" && s.drive != nil {
		return s.drive
	}
	return s.web
}

// GetImage returns the optimized JPEG for a variant, from cache when available
func (s *VariantImageService) GetImage(ctx context.Context, variant models.Variant, size string) ([]byte, error) {
	size = NormalizeImageSize(size)

	if data, ok := s.optimizer.ReadCache(variant.ID, size); ok {
		log.Printf("✓ Serving cached image for variant %d (%s)", variant.ID, size)
		return data, nil
	}

	source := s.sourceFor(variant)
	if source == nil {
		return nil, ErrNoImageSource
	}
	original, err := source.FetchImage(ctx, variant)
	if err != nil {
		return nil, err
	}

	optimized, err := s.optimizer.Optimize(original, size)
	if err != nil {
		return nil, err
	}

	if err := s.optimizer.WriteCache(variant.ID, size, optimized); err != nil {
		log.Printf("⚠️  Failed to cache image for variant %d: %v", variant.ID, err)
	}
	return optimized, nil
}
