package service

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Image sizes served for variant images
const (
	ImageSizeThumb  = "thumb"
	ImageSizeMedium = "medium"
)

const defaultImageCacheDir = "cache/images"

type imagePreset struct {
	maxDim  int
	quality int
}

var imagePresets = map[string]imagePreset{
	ImageSizeThumb:  {maxDim: 300, quality: 60},
	ImageSizeMedium: {maxDim: 800, quality: 75},
}

// ImageOptimizer resizes variant images to JPEG and caches the result on disk
type ImageOptimizer struct {
	cacheDir string
}

// NewImageOptimizer creates an ImageOptimizer; an empty dir uses cache/images
func NewImageOptimizer(cacheDir string) *ImageOptimizer {
	if cacheDir == "" {
		cacheDir = defaultImageCacheDir
	}
	return &ImageOptimizer{cacheDir: cacheDir}
}

// NormalizeImageSize maps unknown sizes to medium
func NormalizeImageSize(size string) string {
	if _, ok := imagePresets[size]; ok {
		return size
	}
	return ImageSizeMedium
}

// CachePath returns the cache file path for a variant image size
func (o *ImageOptimizer) CachePath(variantID int64, size string) string {
	return filepath.Join(o.cacheDir, fmt.Sprintf("variant_%d_%s.jpg", variantID, NormalizeImageSize(size)))
}

// ReadCache returns the cached image, or ok=false when it is not cached yet
func (o *ImageOptimizer) ReadCache(variantID int64, size string) ([]byte, bool) {
	data, err := os.ReadFile(o.CachePath(variantID, size))
	if err != nil {
		return nil, false
	}
	return data, true
}

// WriteCache stores an optimized image
func (o *ImageOptimizer) WriteCache(variantID int64, size string, data []byte) error {
	path := o.CachePath(variantID, size)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Printf("✓ Image cached: %s", path)
	return nil
}

// Optimize decodes PNG/JPEG/GIF bytes, fits them inside the size preset and re-encodes as JPEG.
// Images already smaller than the preset are not upscaled.
func (o *ImageOptimizer) Optimize(imageData []byte, size string) ([]byte, error) {
	preset := imagePresets[NormalizeImageSize(size)]

	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > preset.maxDim || bounds.Dy() > preset.maxDim {
		img = imaging.Fit(img, preset.maxDim, preset.maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(preset.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
