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

const (
	casosCollection        = "casos"
	asignacionesCollection = "empleados_casos"
)

type CasoRepository struct {
	casos        *mongo.Collection
	asignaciones *mongo.Collection
	empleados    *EmpleadoRepository
}

func NewCasoRepository(db *mongo.Database, empleados *EmpleadoRepository) *CasoRepository {
	return &CasoRepository{
		casos:        db.Collection(casosCollection),
		asignaciones: db.Collection(asignacionesCollection),
		empleados:    empleados,
	}
}

type casoDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Title             string             `bson:"title"`
	Description       string             `bson:"description,omitempty"`
	ClientName        string             `bson:"client_name"`
	ClienteID         string             `bson:"cliente_id,omitempty"`
	ContactPerson     string             `bson:"contact_person,omitempty"`
	ClientEmail       string             `bson:"client_email,omitempty"`
	ClientPhone       string             `bson:"client_phone,omitempty"`
	PracticeArea      string             `bson:"practice_area,omitempty"`
	CaseType          string             `bson:"case_type,omitempty"`
	Opponent          string             `bson:"opponent,omitempty"`
	OpponentLawyer    string             `bson:"opponent_lawyer,omitempty"`
	FileNumber        string             `bson:"file_number,omitempty"`
	Court             string             `bson:"court,omitempty"`
	Jurisdiction      string             `bson:"jurisdiction,omitempty"`
	Judge             string             `bson:"judge,omitempty"`
	Status            string             `bson:"status"`
	NextHearing       *time.Time         `bson:"next_hearing,omitempty"`
	Amount            float64            `bson:"amount,omitempty"`
	Fees              string             `bson:"fees,omitempty"`
	ResponsibleLawyer string             `bson:"responsible_lawyer,omitempty"`
	Assistants        string             `bson:"assistants,omitempty"`
	Strategy          string             `bson:"strategy,omitempty"`
	Risks             string             `bson:"risks,omitempty"`
	Observaciones     string             `bson:"observaciones,omitempty"`
	StartDate         *time.Time         `bson:"start_date,omitempty"`
	EndDate           *time.Time         `bson:"end_date,omitempty"`
	CreatedBy         string             `bson:"created_by,omitempty"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

type asignacionDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	CasoID          string             `bson:"caso_id"`
	EmpleadoID      string             `bson:"empleado_id"`
	RolEnCaso       string             `bson:"rol_en_caso"`
	Notas           string             `bson:"notas,omitempty"`
	FechaAsignacion time.Time          `bson:"fecha_asignacion"`
}

// EnsureIndexes enforces one assignment per (caso, empleado) pair.
func (r *CasoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.asignaciones.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "caso_id", Value: 1}, {Key: "empleado_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create asignacion index: %w", err)
	}
	return nil
}

func (r *CasoRepository) FindByID(ctx context.Context, id string) (*domain.Caso, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCasoNoEncontrado
	}
	var doc casoDoc
	if err := r.casos.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCasoNoEncontrado
		}
		return nil, fmt.Errorf("find caso: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CasoRepository) List(ctx context.Context) ([]*domain.Caso, error) {
	return r.list(ctx, bson.M{})
}

func (r *CasoRepository) ListByCliente(ctx context.Context, clienteID string) ([]*domain.Caso, error) {
	return r.list(ctx, bson.M{"cliente_id": clienteID})
}

func (r *CasoRepository) list(ctx context.Context, filter bson.M) ([]*domain.Caso, error) {
	cur, err := r.casos.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list casos: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Caso
	for cur.Next(ctx) {
		var doc casoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode caso: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *CasoRepository) Create(ctx context.Context, c *domain.Caso) (*domain.Caso, error) {
	res, err := r.casos.InsertOne(ctx, fromDomainCaso(c))
	if err != nil {
		return nil, fmt.Errorf("insert caso: %w", err)
	}
	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CasoRepository) Update(ctx context.Context, c *domain.Caso) error {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return domain.ErrCasoNoEncontrado
	}
	res, err := r.casos.ReplaceOne(ctx, bson.M{"_id": oid}, fromDomainCaso(c))
	if err != nil {
		return fmt.Errorf("update caso: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCasoNoEncontrado
	}
	return nil
}

func (r *CasoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCasoNoEncontrado
	}
	res, err := r.casos.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete caso: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCasoNoEncontrado
	}
	// Assignments are meaningless without their case.
	if _, err := r.asignaciones.DeleteMany(ctx, bson.M{"caso_id": id}); err != nil {
		return fmt.Errorf("delete asignaciones: %w", err)
	}
	return nil
}

func (r *CasoRepository) ListAsignaciones(ctx context.Context, casoID string) ([]*domain.Asignacion, error) {
	cur, err := r.asignaciones.Find(ctx, bson.M{"caso_id": casoID})
	if err != nil {
		return nil, fmt.Errorf("list asignaciones: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Asignacion
	for cur.Next(ctx) {
		var doc asignacionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode asignacion: %w", err)
		}
		a := doc.toDomain()
		if empleado, eerr := r.empleados.FindByID(ctx, doc.EmpleadoID); eerr == nil {
			a.Empleado = empleado
		}
		out = append(out, a)
	}
	return out, cur.Err()
}

func (r *CasoRepository) CreateAsignacion(ctx context.Context, a *domain.Asignacion) (*domain.Asignacion, error) {
	doc := asignacionDoc{
		CasoID:          a.CasoID,
		EmpleadoID:      a.EmpleadoID,
		RolEnCaso:       a.RolEnCaso,
		Notas:           a.Notas,
		FechaAsignacion: a.FechaAsignacion,
	}
	res, err := r.asignaciones.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmpleadoYaAsignado
		}
		return nil, fmt.Errorf("insert asignacion: %w", err)
	}

	created := *a
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CasoRepository) DeleteAsignacion(ctx context.Context, casoID, empleadoID string) error {
	res, err := r.asignaciones.DeleteOne(ctx, bson.M{"caso_id": casoID, "empleado_id": empleadoID})
	if err != nil {
		return fmt.Errorf("delete asignacion: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmpleadoNoEncontrado
	}
	return nil
}

func (d *casoDoc) toDomain() *domain.Caso {
	return &domain.Caso{
		ID:                d.ID.Hex(),
		Title:             d.Title,
		Description:       d.Description,
		ClientName:        d.ClientName,
		ClienteID:         d.ClienteID,
		ContactPerson:     d.ContactPerson,
		ClientEmail:       d.ClientEmail,
		ClientPhone:       d.ClientPhone,
		PracticeArea:      d.PracticeArea,
		CaseType:          d.CaseType,
		Opponent:          d.Opponent,
		OpponentLawyer:    d.OpponentLawyer,
		FileNumber:        d.FileNumber,
		Court:             d.Court,
		Jurisdiction:      d.Jurisdiction,
		Judge:             d.Judge,
		Status:            domain.CasoStatus(d.Status),
		NextHearing:       d.NextHearing,
		Amount:            d.Amount,
		Fees:              d.Fees,
		ResponsibleLawyer: d.ResponsibleLawyer,
		Assistants:        d.Assistants,
		Strategy:          d.Strategy,
		Risks:             d.Risks,
		Observaciones:     d.Observaciones,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		CreatedBy:         d.CreatedBy,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (d *asignacionDoc) toDomain() *domain.Asignacion {
	return &domain.Asignacion{
		ID:              d.ID.Hex(),
		CasoID:          d.CasoID,
		EmpleadoID:      d.EmpleadoID,
		RolEnCaso:       d.RolEnCaso,
		Notas:           d.Notas,
		FechaAsignacion: d.FechaAsignacion,
	}
}

func fromDomainCaso(c *domain.Caso) casoDoc {
	doc := casoDoc{
		Title:             c.Title,
		Description:       c.Description,
		ClientName:        c.ClientName,
		ClienteID:         c.ClienteID,
		ContactPerson:     c.ContactPerson,
		ClientEmail:       c.ClientEmail,
		ClientPhone:       c.ClientPhone,
		PracticeArea:      c.PracticeArea,
		CaseType:          c.CaseType,
		Opponent:          c.Opponent,
		OpponentLawyer:    c.OpponentLawyer,
		FileNumber:        c.FileNumber,
		Court:             c.Court,
		Jurisdiction:      c.Jurisdiction,
		Judge:             c.Judge,
		Status:            string(c.Status),
		NextHearing:       c.NextHearing,
		Amount:            c.Amount,
		Fees:              c.Fees,
		ResponsibleLawyer: c.ResponsibleLawyer,
		Assistants:        c.Assistants,
		Strategy:          c.Strategy,
		Risks:             c.Risks,
		Observaciones:     c.Observaciones,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		CreatedBy:         c.CreatedBy,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(c.ID); err == nil {
		doc.ID = oid
	}
	return doc
}
