package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lexfirma/case-management/internal/core/domain"
)

const rolesCollection = "roles"

type RolRepository struct {
	coll *mongo.Collection
}

func NewRolRepository(db *mongo.Database) *RolRepository {
	return &RolRepository{coll: db.Collection(rolesCollection)}
}

type rolDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Nombre      string             `bson:"nombre"`
	Descripcion string             `bson:"descripcion,omitempty"`
	Permisos    map[string]bool    `bson:"permisos,omitempty"`
	Activo      bool               `bson:"activo"`
}

func (r *RolRepository) FindByID(ctx context.Context, id string) (*domain.Rol, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRolNoEncontrado
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *RolRepository) FindByNombre(ctx context.Context, nombre string) (*domain.Rol, error) {
	return r.findOne(ctx, bson.M{"nombre": nombre})
}

func (r *RolRepository) findOne(ctx context.Context, filter bson.M) (*domain.Rol, error) {
	var doc rolDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRolNoEncontrado
		}
		return nil, fmt.Errorf("find rol: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RolRepository) ListActivos(ctx context.Context) ([]*domain.Rol, error) {
	cur, err := r.coll.Find(ctx, bson.M{"activo": true}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Rol
	for cur.Next(ctx) {
		var doc rolDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode rol: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (d *rolDoc) toDomain() *domain.Rol {
	return &domain.Rol{
		ID:          d.ID.Hex(),
		Nombre:      d.Nombre,
		Descripcion: d.Descripcion,
		Permisos:    d.Permisos,
		Activo:      d.Activo,
	}
}
