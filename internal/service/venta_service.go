package service

import (
	"context"
	"errors"
	"time"

	"pizzapos/internal/caja"
	"pizzapos/internal/dto"
	"pizzapos/internal/model"
	"pizzapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaService interface {
	Registrar(ctx context.Context, empleadoID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Listar(ctx context.Context, page, limit int) (*dto.ListarVentasResponse, error)
	// Anular never deletes the sale: it flips Anulada and appends a
	// compensating egreso movement to the open session's ledger.
	Anular(ctx context.Context, id, empleadoID uuid.UUID) error
}

type ventaService struct {
	repo    repository.VentaRepository
	metodos repository.MetodoPagoRepository
	cajaSvc CajaService
}

func NewVentaService(repo repository.VentaRepository, metodos repository.MetodoPagoRepository, cajaSvc CajaService) VentaService {
	return &ventaService{repo: repo, metodos: metodos, cajaSvc: cajaSvc}
}

func (s *ventaService) Registrar(ctx context.Context, empleadoID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if err := caja.ValidarMonto(req.Monto); err != nil {
		return nil, err
	}

	sesion, err := s.cajaSvc.SesionAbierta(ctx)
	if err != nil {
		return nil, err
	}

	metodo, err := s.metodos.FindByNombre(ctx, req.MetodoPago)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &caja.ReferenciaError{Entidad: "metodo de pago", Valor: req.MetodoPago}
		}
		return nil, err
	}

	venta := &model.Venta{
		EmpleadoID:   empleadoID,
		MetodoPagoID: metodo.ID,
		Monto:        req.Monto,
		Descripcion:  req.Descripcion,
	}
	descripcion := "Venta"
	if req.Descripcion != nil {
		descripcion = "Venta: " + *req.Descripcion
	}
	mov := &model.MovimientoCaja{
		SesionCajaID: sesion.ID,
		Tipo:         model.MovIngreso,
		MetodoPagoID: metodo.ID,
		Monto:        req.Monto,
		Descripcion:  &descripcion,
	}

	if err := s.repo.CreateConMovimiento(ctx, venta, mov); err != nil {
		return nil, err
	}
	s.cajaSvc.InvalidarTotalesHoy(ctx)

	return &dto.VentaResponse{
		ID:          venta.ID.String(),
		Empleado:    empleadoID.String(),
		MetodoPago:  metodo.Nombre,
		Monto:       venta.Monto,
		Descripcion: venta.Descripcion,
		Anulada:     false,
		CreatedAt:   venta.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *ventaService) Listar(ctx context.Context, page, limit int) (*dto.ListarVentasResponse, error) {
	ventas, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, len(ventas))
	for i := range ventas {
		v := &ventas[i]
		items[i] = dto.VentaResponse{
			ID:          v.ID.String(),
			Empleado:    empleadoNombre(v.Empleado, v.EmpleadoID),
			Monto:       v.Monto,
			Descripcion: v.Descripcion,
			Anulada:     v.Anulada,
			CreatedAt:   v.CreatedAt.Format(time.RFC3339),
		}
		if v.MetodoPago != nil {
			items[i].MetodoPago = v.MetodoPago.Nombre
		}
	}
	return &dto.ListarVentasResponse{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *ventaService) Anular(ctx context.Context, id, empleadoID uuid.UUID) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &caja.ReferenciaError{Entidad: "venta", Valor: id.String()}
		}
		return err
	}
	if venta.Anulada {
		return &caja.ValidacionError{Campo: "venta", Motivo: "ya esta anulada"}
	}

	sesion, err := s.cajaSvc.SesionAbierta(ctx)
	if err != nil {
		return err
	}

	descripcion := "Anulacion de venta " + venta.ID.String()
	mov := &model.MovimientoCaja{
		SesionCajaID: sesion.ID,
		Tipo:         model.MovEgreso,
		MetodoPagoID: venta.MetodoPagoID,
		Monto:        venta.Monto,
		Descripcion:  &descripcion,
	}
	if err := s.repo.AnularConMovimiento(ctx, venta, mov); err != nil {
		return err
	}
	s.cajaSvc.InvalidarTotalesHoy(ctx)
	return nil
}
