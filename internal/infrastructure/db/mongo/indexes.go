package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every index the repositories rely on. Run once at
// startup, before the server accepts traffic: the login lookups and the
// assignment uniqueness guarantee both depend on them.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	roles := NewRolRepository(db)
	if err := NewUsuarioRepository(db, roles).EnsureIndexes(ctx); err != nil {
		return err
	}

	empleados := NewEmpleadoRepository(db)
	return NewCasoRepository(db, empleados).EnsureIndexes(ctx)
}
