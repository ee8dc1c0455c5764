package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"storefront/models"
	"storefront/pricing"
	"storefront/repository"
	"storefront/templates"
	"storefront/utils"
)

// ErrEmptyProduct is returned when a product has no active variants
var ErrEmptyProduct = errors.New("product has no active variants")

// chromePaths are the usual Chrome/Chromium locations in containers and Linux hosts
var chromePaths = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
}

// detectChromePath checks CHROME_PATH first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ProductSheetService renders the admin price sheet of a product (every variant with its
// resolved price and stock status) as HTML, and prints it to PDF with headless Chrome
type ProductSheetService struct {
	variants repository.VariantRepositoryInterface
	tmpl     *template.Template
	baseURL  string // Base URL the browser uses to load the HTML sheet (e.g., "http://localhost:8080")
	now      func() time.Time
}

// NewProductSheetService creates a new ProductSheetService
func NewProductSheetService(variants repository.VariantRepositoryInterface, baseURL string) (*ProductSheetService, error) {
	tmpl, err := templates.Parse("product_sheet.html", template.FuncMap{
		"usd": utils.FormatUSD,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse product sheet template: %w", err)
	}
	return &ProductSheetService{
		variants: variants,
		tmpl:     tmpl,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
	}, nil
}

// RenderHTML renders the product sheet
func (s *ProductSheetService) RenderHTML(ctx context.Context, productID int64) (string, error) {
	variants, err := s.variants.ListByProduct(ctx, productID)
	if err != nil {
		return "", err
	}
	if len(variants) == 0 {
		return "", ErrEmptyProduct
	}

	rows := make([]models.SelectionState, 0, len(variants))
	for _, v := range variants {
		rows = append(rows, pricing.Resolve(v, 1))
	}

	data := struct {
		ProductName string
		Rows        []models.SelectionState
		GeneratedAt string
	}{
		ProductName: variants[0].ProductName,
		Rows:        rows,
		GeneratedAt: s.now().Format("2006-01-02 15:04"),
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// SheetURL returns the URL of the HTML sheet that Chrome prints
func (s *ProductSheetService) SheetURL(productID int64) string {
	return fmt.Sprintf("%s/admin/products/%d/sheet?format=html", s.baseURL, productID)
}

// GeneratePDF loads the HTML sheet in headless Chrome and prints it to an A4 PDF
func (s *ProductSheetService) GeneratePDF(ctx context.Context, productID int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		log.Printf("⚠️  Chrome not found, letting chromedp auto-detect")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate(s.SheetURL(productID)),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✓ Product sheet PDF generated: product_id=%d, %d bytes", productID, len(pdfBuf))
	return pdfBuf, nil
}
