package service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	"github.com/yourusername/hostpanel-api/pkg/storage"
)

// DocumentService renders fixed-layout PDF documents (invoices, partner
// agreements) and moves them into the document store. Generation is
// best-effort: the caller's record is never rolled back on failure.
//
// The temp file is removed on every path, store success or not.
type DocumentService struct {
	store   storage.DocumentStore
	tempDir string
}

func NewDocumentService(store storage.DocumentStore, tempDir string) (*DocumentService, error) {
	if store == nil {
		return nil, fmt.Errorf("document store is required")
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir %s: %w", tempDir, err)
	}
	return &DocumentService{store: store, tempDir: tempDir}, nil
}

// GenerateInvoice renders the invoice for an approved purchase and returns its
// durable URL.
func (s *DocumentService) GenerateInvoice(purchase *entity.Purchase) (string, error) {
	objectKey := fmt.Sprintf("invoice_%s.pdf", purchase.Reference)

	return s.render(objectKey, func(pdf *gofpdf.Fpdf) {
		pdf.SetFont("Arial", "B", 18)
		pdf.Cell(0, 12, "INVOICE")
		pdf.Ln(16)

		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, fmt.Sprintf("Reference: %s", purchase.Reference))
		pdf.Ln(8)
		pdf.Cell(0, 8, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
		pdf.Ln(12)

		if purchase.User != nil {
			pdf.Cell(0, 8, fmt.Sprintf("Billed to: %s <%s>", purchase.User.FullName, purchase.User.Email))
			pdf.Ln(8)
		}
		if purchase.Offering != nil {
			pdf.Cell(0, 8, fmt.Sprintf("Service: %s (%s)", purchase.Offering.Name, purchase.Offering.Category))
			pdf.Ln(8)
		}
		pdf.Cell(0, 8, fmt.Sprintf("Billing period: %d month(s)", purchase.PeriodMonths))
		pdf.Ln(12)

		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 10, fmt.Sprintf("Total: %.2f %s", purchase.Amount, purchase.Currency))
	})
}

// GenerateAgreement renders the partnership agreement for an approved partner
// and returns its durable URL.
func (s *DocumentService) GenerateAgreement(partner *entity.Partner) (string, error) {
	objectKey := fmt.Sprintf("agreement_partner_%d.pdf", partner.ID)

	return s.render(objectKey, func(pdf *gofpdf.Fpdf) {
		pdf.SetFont("Arial", "B", 18)
		pdf.Cell(0, 12, "PARTNERSHIP AGREEMENT")
		pdf.Ln(16)

		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, fmt.Sprintf("Company: %s", partner.CompanyName))
		pdf.Ln(8)
		pdf.Cell(0, 8, fmt.Sprintf("Contact: %s <%s>", partner.ContactName, partner.Email))
		pdf.Ln(8)
		pdf.Cell(0, 8, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
		pdf.Ln(12)

		pdf.MultiCell(0, 6, "This agreement confirms the company above as an authorized "+
			"reseller of hosting and ERP-cloud services. Commercial terms are defined "+
			"in the partner programme annex.", "", "L", false)
	})
}

// render рисует документ во временный файл, загружает его в хранилище и
// удаляет временный файл независимо от исхода загрузки
func (s *DocumentService) render(objectKey string, draw func(pdf *gofpdf.Fpdf)) (string, error) {
	tmpPath := filepath.Join(s.tempDir, objectKey)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	draw(pdf)

	if err := pdf.OutputFileAndClose(tmpPath); err != nil {
		return "", fmt.Errorf("failed to render document %s: %w", objectKey, err)
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			log.Printf("[DocumentService] не удалось удалить временный файл %s: %v", tmpPath, err)
		}
	}()

	url, err := s.store.Store(tmpPath, objectKey)
	if err != nil {
		return "", fmt.Errorf("failed to store document %s: %w", objectKey, err)
	}
	return url, nil
}
