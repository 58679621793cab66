package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

func TestUsuarioService_Create(t *testing.T) {
	ctx := context.Background()
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo, newStubRolRepo(), &stubHasher{}, zerolog.Nop())

	created, err := svc.Create(ctx, ports.CreateUsuarioInput{
		Username:       "mgarcia",
		Email:          "mgarcia@lexfirma.ec",
		Password:       "secreta",
		RolID:          "r2",
		NombreCompleto: "María García",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.PasswordHash != "" {
		t.Fatalf("hash leaked from Create")
	}
	if created.Rol == nil || created.Rol.Nombre != domain.RolEmpleado {
		t.Fatalf("rol not resolved: %+v", created.Rol)
	}
	if !created.Activo || created.Verificado {
		t.Fatalf("unexpected flags: activo=%v verificado=%v", created.Activo, created.Verificado)
	}

	stored, err := repo.FindByUsername(ctx, "mgarcia")
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.PasswordHash != "hashed:secreta" {
		t.Fatalf("password not hashed through the port: %q", stored.PasswordHash)
	}
}

func TestUsuarioService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewUsuarioService(newStubUsuarioRepo(), newStubRolRepo(), &stubHasher{}, zerolog.Nop())

	cases := []ports.CreateUsuarioInput{
		{Email: "a@b.ec", Password: "x", RolID: "r1"},
		{Username: "a", Password: "x", RolID: "r1"},
		{Username: "a", Email: "a@b.ec", RolID: "r1"},
		{Username: "a", Email: "a@b.ec", Password: "x"},
	}
	for _, input := range cases {
		if _, err := svc.Create(ctx, input); !errors.Is(err, domain.ErrCredencialesFaltantes) {
			t.Fatalf("input %+v: got %v, want ErrCredencialesFaltantes", input, err)
		}
	}
}

func TestUsuarioService_Create_Duplicates(t *testing.T) {
	ctx := context.Background()
	repo := newStubUsuarioRepo(&domain.Usuario{ID: "u1", Username: "mgarcia", Email: "mgarcia@lexfirma.ec"})
	svc := NewUsuarioService(repo, newStubRolRepo(), &stubHasher{}, zerolog.Nop())

	_, err := svc.Create(ctx, ports.CreateUsuarioInput{
		Username: "mgarcia", Email: "otro@lexfirma.ec", Password: "x", RolID: "r2",
	})
	if !errors.Is(err, domain.ErrUsuarioExiste) {
		t.Fatalf("duplicate username: got %v", err)
	}

	_, err = svc.Create(ctx, ports.CreateUsuarioInput{
		Username: "otro", Email: "mgarcia@lexfirma.ec", Password: "x", RolID: "r2",
	})
	if !errors.Is(err, domain.ErrUsuarioExiste) {
		t.Fatalf("duplicate email: got %v", err)
	}
}

func TestUsuarioService_Create_UnknownRol(t *testing.T) {
	ctx := context.Background()
	svc := NewUsuarioService(newStubUsuarioRepo(), newStubRolRepo(), &stubHasher{}, zerolog.Nop())

	_, err := svc.Create(ctx, ports.CreateUsuarioInput{
		Username: "a", Email: "a@b.ec", Password: "x", RolID: "r99",
	})
	if !errors.Is(err, domain.ErrRolNoEncontrado) {
		t.Fatalf("got %v, want ErrRolNoEncontrado", err)
	}
}

func TestUsuarioService_Update_PartialPatchAndRehash(t *testing.T) {
	ctx := context.Background()
	repo := newStubUsuarioRepo(&domain.Usuario{
		ID: "u1", Username: "mgarcia", Email: "mgarcia@lexfirma.ec",
		PasswordHash: "hashed:vieja", NombreCompleto: "María García", Activo: true, RolID: "r2",
	})
	svc := NewUsuarioService(repo, newStubRolRepo(), &stubHasher{}, zerolog.Nop())

	nombre := "María García López"
	updated, err := svc.Update(ctx, "u1", ports.UpdateUsuarioInput{
		NombreCompleto: &nombre,
		Password:       "nueva",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.NombreCompleto != nombre {
		t.Fatalf("name not patched: %q", updated.NombreCompleto)
	}
	if updated.Email != "mgarcia@lexfirma.ec" {
		t.Fatalf("untouched field changed: %q", updated.Email)
	}

	stored, _ := repo.FindByUsername(ctx, "mgarcia")
	if stored.PasswordHash != "hashed:nueva" {
		t.Fatalf("password not re-hashed: %q", stored.PasswordHash)
	}
}

func TestUsuarioService_ListSanitizes(t *testing.T) {
	ctx := context.Background()
	repo := newStubUsuarioRepo(&domain.Usuario{ID: "u1", Username: "mgarcia", PasswordHash: "hashed:x"})
	svc := NewUsuarioService(repo, newStubRolRepo(), &stubHasher{}, zerolog.Nop())

	usuarios, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, u := range usuarios {
		if u.PasswordHash != "" {
			t.Fatalf("hash leaked from List: %+v", u)
		}
	}
	if len(usuarios) != 1 {
		t.Fatalf("expected 1 usuario, got %d", len(usuarios))
	}
}
