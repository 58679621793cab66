package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

type stubDocumentoRepo struct {
	docs      map[string]*domain.Documento
	seq       int
	createErr error
}

func newStubDocumentoRepo() *stubDocumentoRepo {
	return &stubDocumentoRepo{docs: make(map[string]*domain.Documento)}
}

func (r *stubDocumentoRepo) FindByID(_ context.Context, id string) (*domain.Documento, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrDocumentoNoEncontrado
	}
	return d, nil
}

func (r *stubDocumentoRepo) List(_ context.Context, filter ports.DocumentoFilter) ([]*domain.Documento, error) {
	out := make([]*domain.Documento, 0, len(r.docs))
	for _, d := range r.docs {
		if filter.CasoID != "" && d.CasoID != filter.CasoID {
			continue
		}
		if filter.ClienteID != "" && d.ClienteID != filter.ClienteID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *stubDocumentoRepo) Create(_ context.Context, d *domain.Documento) (*domain.Documento, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *d
	clone.ID = "d" + strconv.Itoa(r.seq)
	r.docs[clone.ID] = &clone
	return &clone, nil
}

func (r *stubDocumentoRepo) Delete(_ context.Context, id string) error {
	delete(r.docs, id)
	return nil
}

type memStorage struct {
	blobs map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: make(map[string][]byte)}
}

func (s *memStorage) Upload(_ context.Context, path, _ string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.blobs[path] = data
	return nil
}

func (s *memStorage) Download(_ context.Context, path string, w io.Writer) error {
	data, ok := s.blobs[path]
	if !ok {
		return errors.New("blob not found")
	}
	_, err := w.Write(data)
	return err
}

func (s *memStorage) Delete(_ context.Context, path string) error {
	delete(s.blobs, path)
	return nil
}

func TestDocumentoService_Upload_StoresBlobAndMetadata(t *testing.T) {
	repo := newStubDocumentoRepo()
	storage := newMemStorage()
	svc := NewDocumentoService(repo, storage, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }

	doc, err := svc.Upload(context.Background(), ports.UploadDocumentoInput{
		Nombre:        "Contrato Marco",
		NombreArchivo: "contrato.pdf",
		MimeType:      "application/pdf",
		TamanoBytes:   4,
		CasoID:        "caso1",
		File:          strings.NewReader("%PDF"),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if doc.TipoDocumento != "general" {
		t.Fatalf("expected default tipo, got %q", doc.TipoDocumento)
	}
	wantPath := "caso1/" + strconv.FormatInt(fixedNow.Unix(), 10) + "_contrato_marco.pdf"
	if doc.StoragePath != wantPath {
		t.Fatalf("unexpected storage path %q, want %q", doc.StoragePath, wantPath)
	}
	if string(storage.blobs[wantPath]) != "%PDF" {
		t.Fatalf("blob not stored under %q", wantPath)
	}
}

func TestDocumentoService_Upload_CleansUpOrphanedBlob(t *testing.T) {
	repo := newStubDocumentoRepo()
	repo.createErr = errors.New("insert failed")
	storage := newMemStorage()
	svc := NewDocumentoService(repo, storage, zerolog.Nop())

	_, err := svc.Upload(context.Background(), ports.UploadDocumentoInput{
		Nombre:        "Demanda",
		NombreArchivo: "demanda.docx",
		File:          strings.NewReader("data"),
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(storage.blobs) != 0 {
		t.Fatalf("expected orphaned blob removed, still have %d", len(storage.blobs))
	}
}

func TestDocumentoService_DownloadRoundTrip(t *testing.T) {
	repo := newStubDocumentoRepo()
	storage := newMemStorage()
	svc := NewDocumentoService(repo, storage, zerolog.Nop())

	doc, err := svc.Upload(context.Background(), ports.UploadDocumentoInput{
		Nombre:        "Poder",
		NombreArchivo: "poder.pdf",
		File:          strings.NewReader("contenido"),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	var buf bytes.Buffer
	meta, err := svc.Download(context.Background(), doc.ID, &buf)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if meta.Nombre != "Poder" || buf.String() != "contenido" {
		t.Fatalf("round trip mismatch: %q / %q", meta.Nombre, buf.String())
	}
}

func TestDocumentoService_Upload_Validation(t *testing.T) {
	svc := NewDocumentoService(newStubDocumentoRepo(), newMemStorage(), zerolog.Nop())

	if _, err := svc.Upload(context.Background(), ports.UploadDocumentoInput{Nombre: "x"}); err != errDocumentoSinArchivo {
		t.Fatalf("expected errDocumentoSinArchivo, got %v", err)
	}
	if _, err := svc.Upload(context.Background(), ports.UploadDocumentoInput{File: strings.NewReader("d")}); err != errDocumentoSinNombre {
		t.Fatalf("expected errDocumentoSinNombre, got %v", err)
	}
}
