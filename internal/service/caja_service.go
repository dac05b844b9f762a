package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pizzapos/internal/caja"
	"pizzapos/internal/dto"
	"pizzapos/internal/model"
	"pizzapos/internal/repository"
	"pizzapos/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	totalesHoyKey = "caja:totales:"
	totalesHoyTTL = 30 * time.Second
)

type CajaService interface {
	Abrir(ctx context.Context, empleadoID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error)
	Cerrar(ctx context.Context, empleadoID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error)
	RegistrarMovimiento(ctx context.Context, req dto.MovimientoCajaRequest) (*dto.MovimientoCajaResponse, error)
	ResumenTurno(ctx context.Context) (*dto.ResumenTurnoResponse, error)
	TotalesHoy(ctx context.Context) (*dto.TotalesHoyResponse, error)
	Historial(ctx context.Context, page, limit int) (*dto.HistorialCajaResponse, error)
	Detalle(ctx context.Context, id uuid.UUID) (*dto.DetalleSesionResponse, error)

	// SesionAbierta is used by VentaService/CompraService to attach their
	// movements to the open session.
	SesionAbierta(ctx context.Context) (*model.SesionCaja, error)
	// InvalidarTotalesHoy drops the cached daily totals after any caller
	// appends movements outside RegistrarMovimiento.
	InvalidarTotalesHoy(ctx context.Context)
}

type cajaService struct {
	repo       repository.CajaRepository
	metodos    repository.MetodoPagoRepository
	rdb        *redis.Client      // optional: nil disables caching
	dispatcher *worker.Dispatcher // optional: nil disables the closing report
}

func NewCajaService(repo repository.CajaRepository, metodos repository.MetodoPagoRepository, rdb *redis.Client, dispatcher *worker.Dispatcher) CajaService {
	return &cajaService{repo: repo, metodos: metodos, rdb: rdb, dispatcher: dispatcher}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, empleadoID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error) {
	if existente, err := s.repo.FindSesionAbierta(ctx); err == nil && existente != nil {
		return nil, &caja.EstadoError{Op: "abrir", Estado: model.SesionAbierta}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sesion, err := caja.Abrir(req.MontoApertura, empleadoID, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateSesion(ctx, sesion); err != nil {
		// The partial unique index on estado='abierta' backs the guard above:
		// losing that race is the same estado conflict, not a fatal error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &caja.EstadoError{Op: "abrir", Estado: model.SesionAbierta}
		}
		return nil, err
	}

	resp := sesionToDTO(sesion)
	return &resp, nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────

func (s *cajaService) Cerrar(ctx context.Context, empleadoID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &caja.EstadoError{Op: "cerrar", Estado: model.SesionCerrada}
		}
		return nil, err
	}

	movimientos, err := s.repo.ListMovimientos(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}

	cierre, err := caja.Cerrar(sesion, empleadoID, movimientos, time.Now())
	if err != nil {
		return nil, err
	}
	sesion.Observaciones = req.Observaciones

	if err := s.repo.UpdateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		payload := worker.CierreCajaPayload{
			SesionID: sesion.ID.String(),
			OpenedAt: sesion.OpenedAt,
			ClosedAt: *sesion.ClosedAt,
			Cierre:   *cierre,
		}
		if err := s.dispatcher.EnqueueCierreCaja(ctx, payload); err != nil {
			// Report delivery is best-effort; the close itself already stuck.
			log.Warn().Err(err).Str("sesion_id", payload.SesionID).Msg("no se pudo encolar el reporte de cierre")
		}
	}

	return &dto.CierreCajaResponse{
		SesionCajaID:       sesion.ID.String(),
		MontoApertura:      cierre.MontoApertura,
		Ingresos:           cierre.Ingresos,
		Egresos:            cierre.Egresos,
		TotalFinal:         cierre.TotalFinal,
		TotalFinalFmt:      caja.FormatoSigno(cierre.TotalFinal),
		EfectivoDisponible: cierre.EfectivoDisponible,
		EfectivoFmt:        caja.FormatoSigno(cierre.EfectivoDisponible),
		Metodos:            cierre.Metodos,
		ClosedAt:           sesion.ClosedAt.Format(time.RFC3339),
	}, nil
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────
// Ingreso / egreso manual. Movements are immutable — no update, no delete;
// a mistake is corrected by a compensating movement of the opposite tipo.

func (s *cajaService) RegistrarMovimiento(ctx context.Context, req dto.MovimientoCajaRequest) (*dto.MovimientoCajaResponse, error) {
	if err := caja.ValidarMonto(req.Monto); err != nil {
		return nil, err
	}

	sesion, err := s.repo.FindSesionAbierta(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, caja.PuedeRegistrar(nil)
		}
		return nil, err
	}
	if err := caja.PuedeRegistrar(sesion); err != nil {
		return nil, err
	}

	metodo, err := s.metodos.FindByNombre(ctx, req.MetodoPago)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &caja.ReferenciaError{Entidad: "metodo de pago", Valor: req.MetodoPago}
		}
		return nil, err
	}

	mov := &model.MovimientoCaja{
		SesionCajaID: sesion.ID,
		Tipo:         req.Tipo,
		MetodoPagoID: metodo.ID,
		Monto:        req.Monto,
		Descripcion:  req.Descripcion,
	}
	if err := s.repo.CreateMovimiento(ctx, mov); err != nil {
		return nil, err
	}
	s.InvalidarTotalesHoy(ctx)

	resp := movimientoToDTO(mov, metodo.Nombre)
	return &resp, nil
}

// ── ResumenTurno ──────────────────────────────────────────────────────────────

func (s *cajaService) ResumenTurno(ctx context.Context) (*dto.ResumenTurnoResponse, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx)
	if err != nil {
		return nil, err
	}
	movimientos, err := s.repo.ListMovimientos(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}

	efectivo := caja.EfectivoDisponible(sesion.MontoApertura, movimientos)
	return &dto.ResumenTurnoResponse{
		Sesion:             sesionToDTO(sesion),
		Totales:            caja.AgregarTotales(movimientos),
		Metodos:            caja.AgregarPorMetodo(movimientos),
		EfectivoDisponible: efectivo,
		EfectivoFmt:        caja.FormatoSigno(efectivo),
		Movimientos:        movimientosToDTO(movimientos),
	}, nil
}

// ── TotalesHoy ────────────────────────────────────────────────────────────────
// Cached in redis with a short TTL; mutations drop the key so the next read
// recomputes from the database (the server stays the sole source of truth).

func (s *cajaService) TotalesHoy(ctx context.Context) (*dto.TotalesHoyResponse, error) {
	key := totalesHoyKey + time.Now().Format("2006-01-02")

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var cached dto.TotalesHoyResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	ahora := time.Now()
	desde := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
	ingresos, egresos, err := s.repo.TotalesEntre(ctx, desde, desde.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	resp := &dto.TotalesHoyResponse{Ingresos: ingresos, Egresos: egresos}
	if s.rdb != nil {
		if encoded, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, encoded, totalesHoyTTL).Err(); err != nil {
				log.Debug().Err(err).Msg("cache de totales no disponible")
			}
		}
	}
	return resp, nil
}

func (s *cajaService) InvalidarTotalesHoy(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	key := totalesHoyKey + time.Now().Format("2006-01-02")
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		log.Debug().Err(err).Msg("no se pudo invalidar cache de totales")
	}
}

// ── Historial / Detalle ───────────────────────────────────────────────────────

func (s *cajaService) Historial(ctx context.Context, page, limit int) (*dto.HistorialCajaResponse, error) {
	sesiones, total, err := s.repo.ListSesionesCerradas(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SesionCajaResponse, len(sesiones))
	for i := range sesiones {
		items[i] = sesionToDTO(&sesiones[i])
	}
	return &dto.HistorialCajaResponse{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *cajaService) Detalle(ctx context.Context, id uuid.UUID) (*dto.DetalleSesionResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	movimientos, err := s.repo.ListMovimientos(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}
	return &dto.DetalleSesionResponse{
		Sesion:             sesionToDTO(sesion),
		Totales:            caja.AgregarTotales(movimientos),
		Metodos:            caja.AgregarPorMetodo(movimientos),
		EfectivoDisponible: caja.EfectivoDisponible(sesion.MontoApertura, movimientos),
		Movimientos:        movimientosToDTO(movimientos),
	}, nil
}

// ── SesionAbierta ─────────────────────────────────────────────────────────────

func (s *cajaService) SesionAbierta(ctx context.Context) (*model.SesionCaja, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, caja.PuedeRegistrar(nil)
		}
		return nil, err
	}
	return sesion, nil
}

// ── DTO helpers ───────────────────────────────────────────────────────────────

func sesionToDTO(s *model.SesionCaja) dto.SesionCajaResponse {
	resp := dto.SesionCajaResponse{
		ID:            s.ID.String(),
		Estado:        s.Estado,
		MontoApertura: s.MontoApertura,
		AbiertaPor:    empleadoNombre(s.AbiertaPor, s.AbiertaPorID),
		Observaciones: s.Observaciones,
		OpenedAt:      s.OpenedAt.Format(time.RFC3339),
	}
	if s.CerradaPorID != nil {
		nombre := empleadoNombre(s.CerradaPor, *s.CerradaPorID)
		resp.CerradaPor = &nombre
	}
	if s.TotalFinal != nil {
		resp.TotalFinal = s.TotalFinal
		fmt := caja.FormatoSigno(*s.TotalFinal)
		resp.TotalFinalFmt = &fmt
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	return resp
}

func empleadoNombre(e *model.Empleado, id uuid.UUID) string {
	if e != nil {
		return e.Nombre
	}
	return id.String()
}

func movimientoToDTO(m *model.MovimientoCaja, metodo string) dto.MovimientoCajaResponse {
	resp := dto.MovimientoCajaResponse{
		ID:           m.ID.String(),
		SesionCajaID: m.SesionCajaID.String(),
		Tipo:         m.Tipo,
		MetodoPago:   metodo,
		Monto:        m.Monto,
		Descripcion:  m.Descripcion,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
	if m.VentaID != nil {
		id := m.VentaID.String()
		resp.VentaID = &id
	}
	if m.CompraID != nil {
		id := m.CompraID.String()
		resp.CompraID = &id
	}
	return resp
}

func movimientosToDTO(movs []model.MovimientoCaja) []dto.MovimientoCajaResponse {
	out := make([]dto.MovimientoCajaResponse, len(movs))
	for i := range movs {
		out[i] = movimientoToDTO(&movs[i], movs[i].MetodoNombre())
	}
	return out
}
