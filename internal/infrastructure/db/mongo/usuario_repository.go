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

const usuariosCollection = "usuarios"

type UsuarioRepository struct {
	coll  *mongo.Collection
	roles *RolRepository
}

func NewUsuarioRepository(db *mongo.Database, roles *RolRepository) *UsuarioRepository {
	return &UsuarioRepository{coll: db.Collection(usuariosCollection), roles: roles}
}

type usuarioDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Username         string             `bson:"username"`
	Email            string             `bson:"email"`
	PasswordHash     string             `bson:"password_hash"`
	NombreCompleto   string             `bson:"nombre_completo,omitempty"`
	Telefono         string             `bson:"telefono,omitempty"`
	AvatarURL        string             `bson:"avatar_url,omitempty"`
	Activo           bool               `bson:"activo"`
	Verificado       bool               `bson:"verificado"`
	IntentosFallidos int                `bson:"intentos_fallidos"`
	BloqueadoHasta   *time.Time         `bson:"bloqueado_hasta,omitempty"`
	UltimoAcceso     *time.Time         `bson:"ultimo_acceso,omitempty"`
	RolID            string             `bson:"rol_id,omitempty"`
	ClienteID        string             `bson:"cliente_id,omitempty"`
	EmpleadoID       string             `bson:"empleado_id,omitempty"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

// EnsureIndexes creates the unique indexes the single-record lookup contract
// relies on. Call once at startup.
func (r *UsuarioRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create usuario indexes: %w", err)
	}
	return nil
}

func (r *UsuarioRepository) FindByID(ctx context.Context, id string) (*domain.Usuario, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UsuarioRepository) FindByUsername(ctx context.Context, username string) (*domain.Usuario, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UsuarioRepository) FindByEmail(ctx context.Context, email string) (*domain.Usuario, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UsuarioRepository) findOne(ctx context.Context, filter bson.M) (*domain.Usuario, error) {
	var doc usuarioDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUsuarioNoEncontrado
		}
		return nil, fmt.Errorf("find usuario: %w", err)
	}
	return r.toDomain(ctx, &doc), nil
}

func (r *UsuarioRepository) List(ctx context.Context) ([]*domain.Usuario, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Usuario
	for cur.Next(ctx) {
		var doc usuarioDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode usuario: %w", err)
		}
		out = append(out, r.toDomain(ctx, &doc))
	}
	return out, cur.Err()
}

func (r *UsuarioRepository) Create(ctx context.Context, u *domain.Usuario) (*domain.Usuario, error) {
	doc := fromDomainUsuario(u)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsuarioExiste
		}
		return nil, fmt.Errorf("insert usuario: %w", err)
	}

	created := *u
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UsuarioRepository) Update(ctx context.Context, u *domain.Usuario) error {
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return domain.ErrUsuarioNoEncontrado
	}
	doc := fromDomainUsuario(u)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUsuarioExiste
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUsuarioNoEncontrado
	}
	return nil
}

func (r *UsuarioRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUsuarioNoEncontrado
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUsuarioNoEncontrado
	}
	return nil
}

// RegistrarIntentoFallido writes the caller-computed counter and, on the
// locking attempt, the lockout deadline in one update. Plain $set rather than
// $inc: concurrent failures may lose an update, which the lockout design
// tolerates.
func (r *UsuarioRepository) RegistrarIntentoFallido(ctx context.Context, id string, intentos int, bloqueadoHasta *time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUsuarioNoEncontrado
	}

	set := bson.M{
		"intentos_fallidos": intentos,
		"updated_at":        time.Now().UTC(),
	}
	if bloqueadoHasta != nil {
		set["bloqueado_hasta"] = *bloqueadoHasta
	}

	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("registrar intento fallido: %w", err)
	}
	return nil
}

func (r *UsuarioRepository) RegistrarAccesoExitoso(ctx context.Context, id string, ahora time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUsuarioNoEncontrado
	}

	update := bson.M{
		"$set": bson.M{
			"intentos_fallidos": 0,
			"ultimo_acceso":     ahora.UTC(),
			"updated_at":        ahora.UTC(),
		},
		"$unset": bson.M{"bloqueado_hasta": ""},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("registrar acceso exitoso: %w", err)
	}
	return nil
}

// toDomain resolves the nested rol reference; a missing rol leaves the field
// nil rather than failing the lookup.
func (r *UsuarioRepository) toDomain(ctx context.Context, doc *usuarioDoc) *domain.Usuario {
	u := &domain.Usuario{
		ID:               doc.ID.Hex(),
		Username:         doc.Username,
		Email:            doc.Email,
		PasswordHash:     doc.PasswordHash,
		NombreCompleto:   doc.NombreCompleto,
		Telefono:         doc.Telefono,
		AvatarURL:        doc.AvatarURL,
		Activo:           doc.Activo,
		Verificado:       doc.Verificado,
		IntentosFallidos: doc.IntentosFallidos,
		BloqueadoHasta:   doc.BloqueadoHasta,
		UltimoAcceso:     doc.UltimoAcceso,
		RolID:            doc.RolID,
		ClienteID:        doc.ClienteID,
		EmpleadoID:       doc.EmpleadoID,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
	if doc.RolID != "" {
		if rol, err := r.roles.FindByID(ctx, doc.RolID); err == nil {
			u.Rol = rol
		}
	}
	return u
}

func fromDomainUsuario(u *domain.Usuario) usuarioDoc {
	doc := usuarioDoc{
		Username:         u.Username,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		NombreCompleto:   u.NombreCompleto,
		Telefono:         u.Telefono,
		AvatarURL:        u.AvatarURL,
		Activo:           u.Activo,
		Verificado:       u.Verificado,
		IntentosFallidos: u.IntentosFallidos,
		BloqueadoHasta:   u.BloqueadoHasta,
		UltimoAcceso:     u.UltimoAcceso,
		RolID:            u.RolID,
		ClienteID:        u.ClienteID,
		EmpleadoID:       u.EmpleadoID,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
		doc.ID = oid
	}
	return doc
}
