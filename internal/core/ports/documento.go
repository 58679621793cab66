package ports

import (
	"context"
	"io"
	"time"

	"github.com/lexfirma/case-management/internal/core/domain"
)

// ObjectStorage is the blob store behind document uploads. Paths are opaque
// keys chosen by the service; the store never interprets them.
type ObjectStorage interface {
	Upload(ctx context.Context, path, contentType string, r io.Reader) error
	Download(ctx context.Context, path string, w io.Writer) error
	Delete(ctx context.Context, path string) error
}

// DocumentoRepository defines persistence for document metadata rows.
type DocumentoRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Documento, error)
	List(ctx context.Context, filter DocumentoFilter) ([]*domain.Documento, error)
	Create(ctx context.Context, d *domain.Documento) (*domain.Documento, error)
	Delete(ctx context.Context, id string) error
}

// DocumentoFilter narrows listings; empty fields match everything.
type DocumentoFilter struct {
	CasoID    string
	ClienteID string
}

// UploadDocumentoInput is the payload for a document upload. File is consumed
// exactly once.
type UploadDocumentoInput struct {
	Nombre         string
	NombreArchivo  string
	TipoDocumento  string
	MimeType       string
	TamanoBytes    int64
	Descripcion    string
	CasoID         string
	ClienteID      string
	SubidoPor      string
	EsConfidencial bool
	FechaDocumento *time.Time
	File           io.Reader
}

// DocumentoService implements document upload, listing, download and removal.
type DocumentoService interface {
	List(ctx context.Context, filter DocumentoFilter) ([]*domain.Documento, error)
	Get(ctx context.Context, id string) (*domain.Documento, error)
	Upload(ctx context.Context, input UploadDocumentoInput) (*domain.Documento, error)
	// Download streams the blob for the given document id to w and returns
	// its metadata.
	Download(ctx context.Context, id string, w io.Writer) (*domain.Documento, error)
	Delete(ctx context.Context, id string) error
}
