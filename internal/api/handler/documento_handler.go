package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lexfirma/case-management/internal/api/middleware"
	"github.com/lexfirma/case-management/internal/core/ports"
)

// DocumentoHandler handles document upload, listing, download and removal.
type DocumentoHandler struct {
	service ports.DocumentoService
}

func NewDocumentoHandler(service ports.DocumentoService) *DocumentoHandler {
	return &DocumentoHandler{service: service}
}

// List handles GET /api/documentos with optional ?caso_id= / ?cliente_id=
// filters.
//
// @Summary      Listar documentos
// @Tags         documentos
// @Produce      json
// @Security     BearerAuth
// @Param        caso_id     query     string  false  "Filtrar por caso"
// @Param        cliente_id  query     string  false  "Filtrar por cliente"
// @Success      200         {array}   domain.Documento
// @Failure      403         {object}  map[string]string
// @Router       /api/documentos [get]
func (h *DocumentoHandler) List(c echo.Context) error {
	documentos, err := h.service.List(c.Request().Context(), ports.DocumentoFilter{
		CasoID:    c.QueryParam("caso_id"),
		ClienteID: c.QueryParam("cliente_id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, documentos)
}

// Get handles GET /api/documentos/:id — metadata only.
//
// @Summary      Obtener los metadatos de un documento
// @Tags         documentos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  domain.Documento
// @Failure      404  {object}  map[string]string
// @Router       /api/documentos/{id} [get]
func (h *DocumentoHandler) Get(c echo.Context) error {
	documento, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, documento)
}

// Upload handles POST /api/documentos as multipart/form-data. The file part
// is required; the remaining metadata arrives as form fields.
//
// @Summary      Subir un documento
// @Tags         documentos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file             formData  file    true   "Archivo"
// @Param        nombre           formData  string  true   "Nombre descriptivo"
// @Param        tipo_documento   formData  string  false  "Tipo (contrato, demanda, ...)"
// @Param        descripcion      formData  string  false  "Descripción"
// @Param        caso_id          formData  string  false  "Caso asociado"
// @Param        cliente_id       formData  string  false  "Cliente asociado"
// @Param        es_confidencial  formData  bool    false  "Confidencial"
// @Param        fecha_documento  formData  string  false  "Fecha del documento (RFC 3339)"
// @Success      201  {object}  domain.Documento
// @Failure      400  {object}  map[string]string
// @Router       /api/documentos [post]
func (h *DocumentoHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "se requiere el archivo")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("abrir archivo subido: %w", err)
	}
	defer file.Close()

	var fechaDocumento *time.Time
	if raw := c.FormValue("fecha_documento"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "fecha_documento inválida")
		}
		fechaDocumento = &parsed
	}

	subidoPor, _ := c.Get(middleware.CtxUserID).(string)

	documento, err := h.service.Upload(c.Request().Context(), ports.UploadDocumentoInput{
		Nombre:         c.FormValue("nombre"),
		NombreArchivo:  fileHeader.Filename,
		TipoDocumento:  c.FormValue("tipo_documento"),
		MimeType:       fileHeader.Header.Get("Content-Type"),
		TamanoBytes:    fileHeader.Size,
		Descripcion:    c.FormValue("descripcion"),
		CasoID:         c.FormValue("caso_id"),
		ClienteID:      c.FormValue("cliente_id"),
		SubidoPor:      subidoPor,
		EsConfidencial: c.FormValue("es_confidencial") == "true",
		FechaDocumento: fechaDocumento,
		File:           file,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, documento)
}

// Download handles GET /api/documentos/:id/descargar and streams the blob.
//
// @Summary      Descargar un documento
// @Tags         documentos
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del documento"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /api/documentos/{id}/descargar [get]
func (h *DocumentoHandler) Download(c echo.Context) error {
	// Metadata first: response headers must be written before the stream.
	meta, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	contentType := meta.MimeType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, contentType)
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", meta.NombreArchivo))
	res.WriteHeader(http.StatusOK)

	_, err = h.service.Download(c.Request().Context(), meta.ID, res)
	return err
}

// Delete handles DELETE /api/documentos/:id — removes blob and metadata.
//
// @Summary      Eliminar un documento
// @Tags         documentos
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del documento"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/documentos/{id} [delete]
func (h *DocumentoHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
