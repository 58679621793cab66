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
)

const empleadosCollection = "empleados"

type EmpleadoRepository struct {
	coll *mongo.Collection
}

func NewEmpleadoRepository(db *mongo.Database) *EmpleadoRepository {
	return &EmpleadoRepository{coll: db.Collection(empleadosCollection)}
}

type empleadoDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Nombre         string             `bson:"nombre"`
	Email          string             `bson:"email,omitempty"`
	Telefono       string             `bson:"telefono,omitempty"`
	Rol            string             `bson:"rol"`
	Especialidad   string             `bson:"especialidad,omitempty"`
	AvatarURL      string             `bson:"avatar_url,omitempty"`
	Direccion      string             `bson:"direccion,omitempty"`
	FechaIngreso   *time.Time         `bson:"fecha_ingreso,omitempty"`
	Salario        float64            `bson:"salario,omitempty"`
	NumeroEmpleado string             `bson:"numero_empleado,omitempty"`
	Activo         bool               `bson:"activo"`
	Notas          string             `bson:"notas,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (r *EmpleadoRepository) FindByID(ctx context.Context, id string) (*domain.Empleado, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmpleadoNoEncontrado
	}
	var doc empleadoDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEmpleadoNoEncontrado
		}
		return nil, fmt.Errorf("find empleado: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EmpleadoRepository) List(ctx context.Context) ([]*domain.Empleado, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list empleados: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Empleado
	for cur.Next(ctx) {
		var doc empleadoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode empleado: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *EmpleadoRepository) Create(ctx context.Context, e *domain.Empleado) (*domain.Empleado, error) {
	res, err := r.coll.InsertOne(ctx, fromDomainEmpleado(e))
	if err != nil {
		return nil, fmt.Errorf("insert empleado: %w", err)
	}
	created := *e
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *EmpleadoRepository) Update(ctx context.Context, e *domain.Empleado) error {
	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return domain.ErrEmpleadoNoEncontrado
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, fromDomainEmpleado(e))
	if err != nil {
		return fmt.Errorf("update empleado: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmpleadoNoEncontrado
	}
	return nil
}

func (r *EmpleadoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEmpleadoNoEncontrado
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete empleado: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmpleadoNoEncontrado
	}
	return nil
}

func (d *empleadoDoc) toDomain() *domain.Empleado {
	return &domain.Empleado{
		ID:             d.ID.Hex(),
		Nombre:         d.Nombre,
		Email:          d.Email,
		Telefono:       d.Telefono,
		Rol:            d.Rol,
		Especialidad:   d.Especialidad,
		AvatarURL:      d.AvatarURL,
		Direccion:      d.Direccion,
		FechaIngreso:   d.FechaIngreso,
		Salario:        d.Salario,
		NumeroEmpleado: d.NumeroEmpleado,
		Activo:         d.Activo,
		Notas:          d.Notas,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func fromDomainEmpleado(e *domain.Empleado) empleadoDoc {
	doc := empleadoDoc{
		Nombre:         e.Nombre,
		Email:          e.Email,
		Telefono:       e.Telefono,
		Rol:            e.Rol,
		Especialidad:   e.Especialidad,
		AvatarURL:      e.AvatarURL,
		Direccion:      e.Direccion,
		FechaIngreso:   e.FechaIngreso,
		Salario:        e.Salario,
		NumeroEmpleado: e.NumeroEmpleado,
		Activo:         e.Activo,
		Notas:          e.Notas,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(e.ID); err == nil {
		doc.ID = oid
	}
	return doc
}
