package domain

import (
	"errors"
	"time"
)

var ErrDocumentoNoEncontrado = errors.New("documento no encontrado")

// Documento is the metadata row of a stored file; the blob itself lives in
// object storage under StoragePath.
type Documento struct {
	ID             string     `json:"id"`
	Nombre         string     `json:"nombre"`
	NombreArchivo  string     `json:"nombre_archivo"`
	TipoDocumento  string     `json:"tipo_documento"`
	MimeType       string     `json:"mime_type,omitempty"`
	TamanoBytes    int64      `json:"tamano_bytes"`
	StoragePath    string     `json:"storage_path"`
	Descripcion    string     `json:"descripcion,omitempty"`
	CasoID         string     `json:"caso_id,omitempty"`
	ClienteID      string     `json:"cliente_id,omitempty"`
	SubidoPor      string     `json:"subido_por,omitempty"`
	EsConfidencial bool       `json:"es_confidencial"`
	FechaDocumento *time.Time `json:"fecha_documento,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
