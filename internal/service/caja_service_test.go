package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pizzapos/internal/caja"
	"pizzapos/internal/dto"
	"pizzapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory fakes ──────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	sesiones    map[uuid.UUID]*model.SesionCaja
	movimientos []model.MovimientoCaja
	metodos     *fakeMetodoPagoRepo
}

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{sesiones: make(map[uuid.UUID]*model.SesionCaja)}
}

func (r *fakeCajaRepo) CreateSesion(_ context.Context, s *model.SesionCaja) error {
	for _, existente := range r.sesiones {
		if existente.Estado == model.SesionAbierta {
			return gorm.ErrDuplicatedKey
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sesiones[s.ID] = s
	return nil
}

func (r *fakeCajaRepo) FindSesionAbierta(_ context.Context) (*model.SesionCaja, error) {
	for _, s := range r.sesiones {
		if s.Estado == model.SesionAbierta {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCajaRepo) FindSesionByID(_ context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	s, ok := r.sesiones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeCajaRepo) UpdateSesion(_ context.Context, s *model.SesionCaja) error {
	r.sesiones[s.ID] = s
	return nil
}

func (r *fakeCajaRepo) CreateMovimiento(_ context.Context, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

// ListMovimientos resolves the MetodoPago relation the way the production
// repo's Preload does, so aggregations see the method names.
func (r *fakeCajaRepo) ListMovimientos(_ context.Context, sesionID uuid.UUID) ([]model.MovimientoCaja, error) {
	var result []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.SesionCajaID != sesionID {
			continue
		}
		if r.metodos != nil {
			if metodo, err := r.metodos.FindByID(context.Background(), m.MetodoPagoID); err == nil {
				m.MetodoPago = metodo
			}
		}
		result = append(result, m)
	}
	return result, nil
}

func (r *fakeCajaRepo) ListSesionesCerradas(_ context.Context, page, limit int) ([]model.SesionCaja, int64, error) {
	var result []model.SesionCaja
	for _, s := range r.sesiones {
		if s.Estado == model.SesionCerrada {
			result = append(result, *s)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeCajaRepo) TotalesEntre(_ context.Context, desde, hasta time.Time) (decimal.Decimal, decimal.Decimal, error) {
	ingresos, egresos := decimal.Zero, decimal.Zero
	for _, m := range r.movimientos {
		if m.CreatedAt.Before(desde) || !m.CreatedAt.Before(hasta) {
			continue
		}
		switch m.Tipo {
		case model.MovIngreso:
			ingresos = ingresos.Add(m.Monto)
		case model.MovEgreso:
			egresos = egresos.Add(m.Monto)
		}
	}
	return ingresos, egresos, nil
}

type fakeMetodoPagoRepo struct {
	metodos map[string]*model.MetodoPago
}

func newFakeMetodoPagoRepo(nombres ...string) *fakeMetodoPagoRepo {
	r := &fakeMetodoPagoRepo{metodos: make(map[string]*model.MetodoPago)}
	for _, n := range nombres {
		r.metodos[n] = &model.MetodoPago{ID: uuid.New(), Nombre: n, Activo: true}
	}
	return r
}

func (r *fakeMetodoPagoRepo) Create(_ context.Context, m *model.MetodoPago) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.metodos[m.Nombre] = m
	return nil
}

func (r *fakeMetodoPagoRepo) FindByNombre(_ context.Context, nombre string) (*model.MetodoPago, error) {
	m, ok := r.metodos[nombre]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *fakeMetodoPagoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MetodoPago, error) {
	for _, m := range r.metodos {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMetodoPagoRepo) List(_ context.Context) ([]model.MetodoPago, error) {
	var result []model.MetodoPago
	for _, m := range r.metodos {
		result = append(result, *m)
	}
	return result, nil
}

func nuevoCajaService() (CajaService, *fakeCajaRepo, *fakeMetodoPagoRepo) {
	repo := newFakeCajaRepo()
	metodos := newFakeMetodoPagoRepo("efectivo", "debito", "credito", "transferencia")
	repo.metodos = metodos
	return NewCajaService(repo, metodos, nil, nil), repo, metodos
}

// ── Abrir ────────────────────────────────────────────────────────────────────

func TestCajaService_Abrir(t *testing.T) {
	svc, _, _ := nuevoCajaService()
	empleado := uuid.New()

	resp, err := svc.Abrir(context.Background(), empleado, dto.AbrirCajaRequest{
		MontoApertura: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, "abierta", resp.Estado)
	assert.True(t, resp.MontoApertura.Equal(decimal.NewFromInt(1000)))
	assert.Nil(t, resp.TotalFinal)
}

func TestCajaService_Abrir_ConSesionYaAbierta(t *testing.T) {
	svc, _, _ := nuevoCajaService()

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		MontoApertura: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	_, err = svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		MontoApertura: decimal.NewFromInt(800),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, caja.ErrEstadoInvalido))

	// The rejected open left the original session untouched.
	sesion, err := svc.SesionAbierta(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SesionAbierta, sesion.Estado)
	assert.True(t, sesion.MontoApertura.Equal(decimal.NewFromInt(500)))
}

func TestCajaService_Abrir_MontoNegativo(t *testing.T) {
	svc, _, _ := nuevoCajaService()

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		MontoApertura: decimal.NewFromInt(-100),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, caja.ErrValidacion))
}

// ── RegistrarMovimiento ──────────────────────────────────────────────────────

func TestCajaService_RegistrarMovimiento(t *testing.T) {
	svc, repo, _ := nuevoCajaService()
	abrirSesion(t, svc, 1000)

	resp, err := svc.RegistrarMovimiento(context.Background(), dto.MovimientoCajaRequest{
		Tipo:       model.MovIngreso,
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	assert.Equal(t, "ingreso", resp.Tipo)
	assert.Equal(t, "efectivo", resp.MetodoPago)
	assert.Len(t, repo.movimientos, 1)
}

func TestCajaService_RegistrarMovimiento_MontoInvalido(t *testing.T) {
	svc, repo, _ := nuevoCajaService()
	abrirSesion(t, svc, 1000)

	for _, monto := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := svc.RegistrarMovimiento(context.Background(), dto.MovimientoCajaRequest{
			Tipo:       model.MovEgreso,
			MetodoPago: "efectivo",
			Monto:      monto,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, caja.ErrValidacion))
	}
	assert.Empty(t, repo.movimientos)
}

func TestCajaService_RegistrarMovimiento_SinSesionAbierta(t *testing.T) {
	svc, _, _ := nuevoCajaService()

	_, err := svc.RegistrarMovimiento(context.Background(), dto.MovimientoCajaRequest{
		Tipo:       model.MovIngreso,
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, caja.ErrEstadoInvalido))
}

func TestCajaService_RegistrarMovimiento_SesionCerrada(t *testing.T) {
	svc, _, _ := nuevoCajaService()
	abrirSesion(t, svc, 1000)

	_, err := svc.Cerrar(context.Background(), uuid.New(), dto.CerrarCajaRequest{})
	require.NoError(t, err)

	_, err = svc.RegistrarMovimiento(context.Background(), dto.MovimientoCajaRequest{
		Tipo:       model.MovIngreso,
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, caja.ErrEstadoInvalido))
}

func TestCajaService_RegistrarMovimiento_MetodoDesconocido(t *testing.T) {
	svc, _, _ := nuevoCajaService()
	abrirSesion(t, svc, 1000)

	_, err := svc.RegistrarMovimiento(context.Background(), dto.MovimientoCajaRequest{
		Tipo:       model.MovIngreso,
		MetodoPago: "criptomoneda",
		Monto:      decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, caja.ErrReferencia))
}

// ── Cerrar ───────────────────────────────────────────────────────────────────

func TestCajaService_Cerrar(t *testing.T) {
	svc, repo, _ := nuevoCajaService()
	abrirSesion(t, svc, 1000)

	registrar(t, svc, model.MovIngreso, "efectivo", 200)
	registrar(t, svc, model.MovEgreso, "efectivo", 50)

	obs := "cierre de turno noche"
	resp, err := svc.Cerrar(context.Background(), uuid.New(), dto.CerrarCajaRequest{Observaciones: &obs})
	require.NoError(t, err)

	// Closing never touches the ledger itself.
	assert.Len(t, repo.movimientos, 2)
	assert.True(t, resp.TotalFinal.Equal(decimal.NewFromInt(1150)))
	assert.True(t, resp.EfectivoDisponible.Equal(decimal.NewFromInt(1150)))
	assert.Equal(t, "+$1150.00", resp.TotalFinalFmt)

	_, err = svc.SesionAbierta(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, caja.ErrEstadoInvalido))
}

func TestCajaService_Cerrar_SinSesionAbierta(t *testing.T) {
	svc, _, _ := nuevoCajaService()

	_, err := svc.Cerrar(context.Background(), uuid.New(), dto.CerrarCajaRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, caja.ErrEstadoInvalido))
}

func TestCajaService_Cerrar_TarjetaNoSumaEfectivo(t *testing.T) {
	svc, _, _ := nuevoCajaService()
	abrirSesion(t, svc, 1000)

	registrar(t, svc, model.MovIngreso, "credito", 500)

	resp, err := svc.Cerrar(context.Background(), uuid.New(), dto.CerrarCajaRequest{})
	require.NoError(t, err)

	assert.True(t, resp.TotalFinal.Equal(decimal.NewFromInt(1500)))
	assert.True(t, resp.EfectivoDisponible.Equal(decimal.NewFromInt(1000)))
}

// ── ResumenTurno / TotalesHoy ────────────────────────────────────────────────

func TestCajaService_ResumenTurno(t *testing.T) {
	svc, _, _ := nuevoCajaService()
	abrirSesion(t, svc, 300)

	registrar(t, svc, model.MovIngreso, "efectivo", 120)
	registrar(t, svc, model.MovIngreso, "debito", 80)

	resumen, err := svc.ResumenTurno(context.Background())
	require.NoError(t, err)
	assert.True(t, resumen.Totales.Ingresos.Equal(decimal.NewFromInt(200)))
	assert.True(t, resumen.EfectivoDisponible.Equal(decimal.NewFromInt(420)))
	assert.Len(t, resumen.Movimientos, 2)
	assert.Len(t, resumen.Metodos, 2)
}

func TestCajaService_TotalesHoy_SinRedis(t *testing.T) {
	svc, _, _ := nuevoCajaService()
	abrirSesion(t, svc, 100)

	registrar(t, svc, model.MovIngreso, "efectivo", 250)
	registrar(t, svc, model.MovEgreso, "efectivo", 40)

	resp, err := svc.TotalesHoy(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Ingresos.Equal(decimal.NewFromInt(250)))
	assert.True(t, resp.Egresos.Equal(decimal.NewFromInt(40)))
}

// ── helpers ──────────────────────────────────────────────────────────────────

func abrirSesion(t *testing.T, svc CajaService, monto int64) {
	t.Helper()
	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		MontoApertura: decimal.NewFromInt(monto),
	})
	require.NoError(t, err)
}

func registrar(t *testing.T, svc CajaService, tipo, metodo string, monto int64) {
	t.Helper()
	_, err := svc.RegistrarMovimiento(context.Background(), dto.MovimientoCajaRequest{
		Tipo:       tipo,
		MetodoPago: metodo,
		Monto:      decimal.NewFromInt(monto),
	})
	require.NoError(t, err)
}
