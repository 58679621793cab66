package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

func TestEmpleadoService_Create_AppliesDefaults(t *testing.T) {
	repo := newStubEmpleadoRepo()
	svc := NewEmpleadoService(repo, zerolog.Nop())

	empleado, err := svc.Create(context.Background(), ports.CreateEmpleadoInput{
		Nombre: "María Pérez",
		Email:  "mperez@lexfirma.ec",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if empleado.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if empleado.Rol != "Abogado" {
		t.Fatalf("expected default rol Abogado, got %q", empleado.Rol)
	}
	if !empleado.Activo {
		t.Fatalf("expected empleado active by default")
	}
	if empleado.FechaIngreso == nil {
		t.Fatalf("expected fecha de ingreso defaulted to today")
	}
}

func TestEmpleadoService_Create_RequiresNombre(t *testing.T) {
	repo := newStubEmpleadoRepo()
	svc := NewEmpleadoService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateEmpleadoInput{Email: "x@lexfirma.ec"}); err == nil {
		t.Fatalf("expected validation error without nombre")
	}
	if len(repo.empleados) != 0 {
		t.Fatalf("expected nothing stored on validation failure")
	}
}

func TestEmpleadoService_Update_PartialPatch(t *testing.T) {
	ingreso := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inactivo := false
	repo := newStubEmpleadoRepo(&domain.Empleado{
		ID:           "e1",
		Nombre:       "María Pérez",
		Rol:          "Abogado",
		Especialidad: "Penal",
		Salario:      1200,
		FechaIngreso: &ingreso,
		Activo:       true,
	})
	svc := NewEmpleadoService(repo, zerolog.Nop())

	// Empty nombre, rol, salario and fecha keep their stored values; activo
	// and especialidad are overwritten.
	empleado, err := svc.Update(context.Background(), "e1", ports.CreateEmpleadoInput{
		Especialidad: "Laboral",
		Activo:       &inactivo,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if empleado.Nombre != "María Pérez" || empleado.Rol != "Abogado" || empleado.Salario != 1200 {
		t.Fatalf("fields lost on partial update: %+v", empleado)
	}
	if empleado.FechaIngreso == nil || !empleado.FechaIngreso.Equal(ingreso) {
		t.Fatalf("fecha de ingreso lost on partial update: %v", empleado.FechaIngreso)
	}
	if empleado.Especialidad != "Laboral" || empleado.Activo {
		t.Fatalf("patched fields not applied: %+v", empleado)
	}
}

func TestEmpleadoService_Update_NotFound(t *testing.T) {
	svc := NewEmpleadoService(newStubEmpleadoRepo(), zerolog.Nop())

	if _, err := svc.Update(context.Background(), "e99", ports.CreateEmpleadoInput{Nombre: "X"}); err != domain.ErrEmpleadoNoEncontrado {
		t.Fatalf("got %v, want ErrEmpleadoNoEncontrado", err)
	}
}

func TestEmpleadoService_Delete(t *testing.T) {
	repo := newStubEmpleadoRepo(&domain.Empleado{ID: "e1", Nombre: "María Pérez"})
	svc := NewEmpleadoService(repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), "e1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), "e1"); err != domain.ErrEmpleadoNoEncontrado {
		t.Fatalf("got %v, want ErrEmpleadoNoEncontrado", err)
	}
}
