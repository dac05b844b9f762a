//go:build integration

package repository

// Integration tests against a real Postgres via testcontainers.
// Run with: go test -tags integration ./internal/repository/... -v

import (
	"context"
	"testing"
	"time"

	"pizzapos/internal/infra"
	"pizzapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("pizzapos_test"),
		tcPostgres.WithUsername("pizzapos"),
		tcPostgres.WithPassword("pizzapos"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)
	return db
}

func seedEmpleado(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	e := model.Empleado{Username: "cajero-" + uuid.NewString()[:8], Nombre: "Cajero Test", PasswordHash: "x", Rol: "cajero", Activo: true}
	require.NoError(t, db.Create(&e).Error)
	return e.ID
}

func seedMetodo(t *testing.T, db *gorm.DB, nombre string) uuid.UUID {
	t.Helper()
	m := model.MetodoPago{Nombre: nombre, Activo: true}
	require.NoError(t, db.Create(&m).Error)
	return m.ID
}

func TestCajaRepo_SoloUnaSesionAbierta(t *testing.T) {
	db := setupDB(t)
	repo := NewCajaRepository(db)
	ctx := context.Background()
	empleado := seedEmpleado(t, db)

	s1 := &model.SesionCaja{Estado: model.SesionAbierta, MontoApertura: decimal.NewFromInt(1000), AbiertaPorID: empleado, OpenedAt: time.Now()}
	require.NoError(t, repo.CreateSesion(ctx, s1))

	// The partial unique index rejects a second concurrent open regardless
	// of any service-level check.
	s2 := &model.SesionCaja{Estado: model.SesionAbierta, MontoApertura: decimal.NewFromInt(500), AbiertaPorID: empleado, OpenedAt: time.Now()}
	err := repo.CreateSesion(ctx, s2)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Closing the first frees the slot.
	cerrada := model.SesionCerrada
	s1.Estado = cerrada
	now := time.Now()
	s1.ClosedAt = &now
	total := decimal.NewFromInt(1000)
	s1.TotalFinal = &total
	s1.CerradaPorID = &empleado
	require.NoError(t, repo.UpdateSesion(ctx, s1))
	require.NoError(t, repo.CreateSesion(ctx, s2))
}

func TestCajaRepo_LedgerYTotales(t *testing.T) {
	db := setupDB(t)
	repo := NewCajaRepository(db)
	ctx := context.Background()
	empleado := seedEmpleado(t, db)
	efectivo := seedMetodo(t, db, "efectivo")
	credito := seedMetodo(t, db, "credito")

	s := &model.SesionCaja{Estado: model.SesionAbierta, MontoApertura: decimal.NewFromInt(1000), AbiertaPorID: empleado, OpenedAt: time.Now()}
	require.NoError(t, repo.CreateSesion(ctx, s))

	movs := []model.MovimientoCaja{
		{SesionCajaID: s.ID, Tipo: model.MovIngreso, MetodoPagoID: credito, Monto: decimal.NewFromInt(500)},
		{SesionCajaID: s.ID, Tipo: model.MovIngreso, MetodoPagoID: efectivo, Monto: decimal.NewFromInt(200)},
		{SesionCajaID: s.ID, Tipo: model.MovEgreso, MetodoPagoID: efectivo, Monto: decimal.NewFromInt(50)},
	}
	for i := range movs {
		require.NoError(t, repo.CreateMovimiento(ctx, &movs[i]))
	}

	// Ledger comes back oldest first with the method relation loaded.
	listado, err := repo.ListMovimientos(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, listado, 3)
	assert.Equal(t, "credito", listado[0].MetodoNombre())
	assert.Equal(t, "efectivo", listado[1].MetodoNombre())

	desde := time.Now().Add(-time.Hour)
	ingresos, egresos, err := repo.TotalesEntre(ctx, desde, desde.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, ingresos.Equal(decimal.NewFromInt(700)))
	assert.True(t, egresos.Equal(decimal.NewFromInt(50)))
}

func TestCajaRepo_MontoNoPositivoRechazado(t *testing.T) {
	db := setupDB(t)
	repo := NewCajaRepository(db)
	ctx := context.Background()
	empleado := seedEmpleado(t, db)
	efectivo := seedMetodo(t, db, "efectivo")

	s := &model.SesionCaja{Estado: model.SesionAbierta, MontoApertura: decimal.Zero, AbiertaPorID: empleado, OpenedAt: time.Now()}
	require.NoError(t, repo.CreateSesion(ctx, s))

	// The CHECK constraint is the last line of defense behind caja.ValidarMonto.
	err := repo.CreateMovimiento(ctx, &model.MovimientoCaja{
		SesionCajaID: s.ID, Tipo: model.MovIngreso, MetodoPagoID: efectivo, Monto: decimal.Zero,
	})
	require.Error(t, err)
}

func TestCajaRepo_HistorialSoloCerradas(t *testing.T) {
	db := setupDB(t)
	repo := NewCajaRepository(db)
	ctx := context.Background()
	empleado := seedEmpleado(t, db)

	abierta := &model.SesionCaja{Estado: model.SesionAbierta, MontoApertura: decimal.NewFromInt(100), AbiertaPorID: empleado, OpenedAt: time.Now()}
	require.NoError(t, repo.CreateSesion(ctx, abierta))

	now := time.Now()
	total := decimal.NewFromInt(100)
	cerrada := &model.SesionCaja{
		Estado: model.SesionCerrada, MontoApertura: decimal.NewFromInt(100),
		AbiertaPorID: empleado, CerradaPorID: &empleado,
		TotalFinal: &total, OpenedAt: now.Add(-8 * time.Hour), ClosedAt: &now,
	}
	require.NoError(t, db.Create(cerrada).Error)

	sesiones, totalCount, err := repo.ListSesionesCerradas(ctx, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, totalCount)
	require.Len(t, sesiones, 1)
	assert.Equal(t, cerrada.ID, sesiones[0].ID)
}
