// Package storage defines the persistence interface for documents and their
// pages.
package storage

import (
	"context"

	"github.com/okibi/terasu/internal/models"
)

// Storage defines document and page persistence operations.
type Storage interface {
	// Document operations
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	UpdateDocument(ctx context.Context, doc *models.Document) error
	DeleteDocument(ctx context.Context, id string) error
	ListDocuments(ctx context.Context, offset, limit int) ([]*models.Document, error)

	// Page operations
	ReplacePages(ctx context.Context, docID string, pages []*models.DocumentPage) error
	GetPagesByDocumentID(ctx context.Context, docID string) ([]*models.DocumentPage, error)
	DeletePagesByDocumentID(ctx context.Context, docID string) error

	// Stats
	CountDocuments(ctx context.Context) (int64, error)
	CountPages(ctx context.Context) (int64, error)

	Close() error
}
