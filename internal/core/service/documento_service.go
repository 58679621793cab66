package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexfirma/case-management/internal/metrics"
	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

var errDocumentoSinArchivo = errors.New("no se proporcionó ningún archivo")
var errDocumentoSinNombre = errors.New("el nombre del documento es obligatorio")

// DocumentoService stores document blobs in object storage and their metadata
// in the Documentos collection.
type DocumentoService struct {
	documentos ports.DocumentoRepository
	storage    ports.ObjectStorage
	now        func() time.Time
	logger     zerolog.Logger
}

func NewDocumentoService(documentos ports.DocumentoRepository, storage ports.ObjectStorage, logger zerolog.Logger) *DocumentoService {
	return &DocumentoService{documentos: documentos, storage: storage, now: time.Now, logger: logger}
}

func (s *DocumentoService) List(ctx context.Context, filter ports.DocumentoFilter) ([]*domain.Documento, error) {
	return s.documentos.List(ctx, filter)
}

func (s *DocumentoService) Get(ctx context.Context, id string) (*domain.Documento, error) {
	return s.documentos.FindByID(ctx, id)
}

func (s *DocumentoService) Upload(ctx context.Context, input ports.UploadDocumentoInput) (*domain.Documento, error) {
	if input.File == nil {
		return nil, errDocumentoSinArchivo
	}
	if input.Nombre == "" {
		return nil, errDocumentoSinNombre
	}

	now := s.now().UTC()
	path := storagePath(input.CasoID, input.Nombre, input.NombreArchivo, now)

	if err := s.storage.Upload(ctx, path, input.MimeType, input.File); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("blob upload failed")
		return nil, fmt.Errorf("subir archivo: %w", err)
	}

	doc := &domain.Documento{
		Nombre:         input.Nombre,
		NombreArchivo:  input.NombreArchivo,
		TipoDocumento:  defaultString(input.TipoDocumento, "general"),
		MimeType:       input.MimeType,
		TamanoBytes:    input.TamanoBytes,
		StoragePath:    path,
		Descripcion:    input.Descripcion,
		CasoID:         input.CasoID,
		ClienteID:      input.ClienteID,
		SubidoPor:      input.SubidoPor,
		EsConfidencial: input.EsConfidencial,
		FechaDocumento: input.FechaDocumento,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.documentos.Create(ctx, doc)
	if err != nil {
		// Orphaned blob; remove it so storage does not accumulate garbage.
		if derr := s.storage.Delete(ctx, path); derr != nil {
			s.logger.Error().Err(derr).Str("path", path).Msg("failed to clean up orphaned blob")
		}
		return nil, err
	}

	metrics.DocumentosSubidosTotal.WithLabelValues(created.TipoDocumento).Inc()
	metrics.DocumentoUploadBytes.Observe(float64(created.TamanoBytes))
	s.logger.Info().Str("documento_id", created.ID).Str("path", path).Int64("bytes", created.TamanoBytes).Msg("documento uploaded")
	return created, nil
}

func (s *DocumentoService) Download(ctx context.Context, id string, w io.Writer) (*domain.Documento, error) {
	doc, err := s.documentos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Download(ctx, doc.StoragePath, w); err != nil {
		return nil, fmt.Errorf("descargar archivo: %w", err)
	}
	return doc, nil
}

func (s *DocumentoService) Delete(ctx context.Context, id string) error {
	doc, err := s.documentos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, doc.StoragePath); err != nil {
		s.logger.Error().Err(err).Str("path", doc.StoragePath).Msg("failed to delete blob, metadata row kept")
		return fmt.Errorf("eliminar archivo: %w", err)
	}
	return s.documentos.Delete(ctx, id)
}

// storagePath builds the blob key: <caso|general>/<unix_ts>_<slug>.<ext>.
func storagePath(casoID, nombre, nombreArchivo string, now time.Time) string {
	prefix := casoID
	if prefix == "" {
		prefix = "general"
	}

	slug := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, strings.ToLower(nombre))

	ext := ""
	if i := strings.LastIndex(nombreArchivo, "."); i >= 0 && i < len(nombreArchivo)-1 {
		ext = nombreArchivo[i:]
	}

	return fmt.Sprintf("%s/%d_%s%s", prefix, now.Unix(), slug, ext)
}
