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

const clientesCollection = "clientes"

type ClienteRepository struct {
	coll *mongo.Collection
}

func NewClienteRepository(db *mongo.Database) *ClienteRepository {
	return &ClienteRepository{coll: db.Collection(clientesCollection)}
}

type clienteDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Nombre          string             `bson:"nombre"`
	TipoCliente     string             `bson:"tipo_cliente"`
	Cedula          string             `bson:"cedula"`
	Email           string             `bson:"email"`
	Telefono        string             `bson:"telefono,omitempty"`
	Direccion       string             `bson:"direccion,omitempty"`
	Ciudad          string             `bson:"ciudad,omitempty"`
	Estado          string             `bson:"estado,omitempty"`
	CodigoPostal    string             `bson:"codigo_postal,omitempty"`
	Pais            string             `bson:"pais,omitempty"`
	PersonaContacto string             `bson:"persona_contacto,omitempty"`
	CargoContacto   string             `bson:"cargo_contacto,omitempty"`
	Notas           string             `bson:"notas,omitempty"`
	Activo          bool               `bson:"activo"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (r *ClienteRepository) FindByID(ctx context.Context, id string) (*domain.Cliente, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClienteNoEncontrado
	}
	var doc clienteDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClienteNoEncontrado
		}
		return nil, fmt.Errorf("find cliente: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClienteRepository) List(ctx context.Context, emailFilter string) ([]*domain.Cliente, error) {
	filter := bson.M{}
	if emailFilter != "" {
		filter["email"] = emailFilter
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Cliente
	for cur.Next(ctx) {
		var doc clienteDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode cliente: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *ClienteRepository) Create(ctx context.Context, c *domain.Cliente) (*domain.Cliente, error) {
	doc := fromDomainCliente(c)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert cliente: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ClienteRepository) Update(ctx context.Context, c *domain.Cliente) error {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return domain.ErrClienteNoEncontrado
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, fromDomainCliente(c))
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClienteNoEncontrado
	}
	return nil
}

func (r *ClienteRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClienteNoEncontrado
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClienteNoEncontrado
	}
	return nil
}

func (d *clienteDoc) toDomain() *domain.Cliente {
	return &domain.Cliente{
		ID:              d.ID.Hex(),
		Nombre:          d.Nombre,
		TipoCliente:     d.TipoCliente,
		Cedula:          d.Cedula,
		Email:           d.Email,
		Telefono:        d.Telefono,
		Direccion:       d.Direccion,
		Ciudad:          d.Ciudad,
		Estado:          d.Estado,
		CodigoPostal:    d.CodigoPostal,
		Pais:            d.Pais,
		PersonaContacto: d.PersonaContacto,
		CargoContacto:   d.CargoContacto,
		Notas:           d.Notas,
		Activo:          d.Activo,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func fromDomainCliente(c *domain.Cliente) clienteDoc {
	doc := clienteDoc{
		Nombre:          c.Nombre,
		TipoCliente:     c.TipoCliente,
		Cedula:          c.Cedula,
		Email:           c.Email,
		Telefono:        c.Telefono,
		Direccion:       c.Direccion,
		Ciudad:          c.Ciudad,
		Estado:          c.Estado,
		CodigoPostal:    c.CodigoPostal,
		Pais:            c.Pais,
		PersonaContacto: c.PersonaContacto,
		CargoContacto:   c.CargoContacto,
		Notas:           c.Notas,
		Activo:          c.Activo,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(c.ID); err == nil {
		doc.ID = oid
	}
	return doc
}
