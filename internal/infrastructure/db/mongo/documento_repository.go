package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

const documentosCollection = "documentos"

type DocumentoRepository struct {
	coll *mongo.Collection
}

func NewDocumentoRepository(db *mongo.Database) *DocumentoRepository {
	return &DocumentoRepository{coll: db.Collection(documentosCollection)}
}

type documentoDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Nombre         string             `bson:"nombre"`
	NombreArchivo  string             `bson:"nombre_archivo"`
	TipoDocumento  string             `bson:"tipo_documento"`
	MimeType       string             `bson:"mime_type,omitempty"`
	TamanoBytes    int64              `bson:"tamano_bytes"`
	StoragePath    string             `bson:"storage_path"`
	Descripcion    string             `bson:"descripcion,omitempty"`
	CasoID         string             `bson:"caso_id,omitempty"`
	ClienteID      string             `bson:"cliente_id,omitempty"`
	SubidoPor      string             `bson:"subido_por,omitempty"`
	EsConfidencial bool               `bson:"es_confidencial"`
	FechaDocumento *time.Time         `bson:"fecha_documento,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (r *DocumentoRepository) FindByID(ctx context.Context, id string) (*domain.Documento, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDocumentoNoEncontrado
	}
	var doc documentoDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDocumentoNoEncontrado
		}
		return nil, fmt.Errorf("find documento: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *DocumentoRepository) List(ctx context.Context, filter ports.DocumentoFilter) ([]*domain.Documento, error) {
	q := bson.M{}
	if filter.CasoID != "" {
		q["caso_id"] = filter.CasoID
	}
	if filter.ClienteID != "" {
		q["cliente_id"] = filter.ClienteID
	}

	cur, err := r.coll.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Documento
	for cur.Next(ctx) {
		var doc documentoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode documento: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *DocumentoRepository) Create(ctx context.Context, d *domain.Documento) (*domain.Documento, error) {
	res, err := r.coll.InsertOne(ctx, fromDomainDocumento(d))
	if err != nil {
		return nil, fmt.Errorf("insert documento: %w", err)
	}
	created := *d
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *DocumentoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDocumentoNoEncontrado
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete documento: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDocumentoNoEncontrado
	}
	return nil
}

func (d *documentoDoc) toDomain() *domain.Documento {
	return &domain.Documento{
		ID:             d.ID.Hex(),
		Nombre:         d.Nombre,
		NombreArchivo:  d.NombreArchivo,
		TipoDocumento:  d.TipoDocumento,
		MimeType:       d.MimeType,
		TamanoBytes:    d.TamanoBytes,
		StoragePath:    d.StoragePath,
		Descripcion:    d.Descripcion,
		CasoID:         d.CasoID,
		ClienteID:      d.ClienteID,
		SubidoPor:      d.SubidoPor,
		EsConfidencial: d.EsConfidencial,
		FechaDocumento: d.FechaDocumento,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func fromDomainDocumento(d *domain.Documento) documentoDoc {
	doc := documentoDoc{
		Nombre:         d.Nombre,
		NombreArchivo:  d.NombreArchivo,
		TipoDocumento:  d.TipoDocumento,
		MimeType:       d.MimeType,
		TamanoBytes:    d.TamanoBytes,
		StoragePath:    d.StoragePath,
		Descripcion:    d.Descripcion,
		CasoID:         d.CasoID,
		ClienteID:      d.ClienteID,
		SubidoPor:      d.SubidoPor,
		EsConfidencial: d.EsConfidencial,
		FechaDocumento: d.FechaDocumento,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(d.ID); err == nil {
		doc.ID = oid
	}
	return doc
}
