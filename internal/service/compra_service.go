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

type CompraService interface {
	Registrar(ctx context.Context, empleadoID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error)
	Listar(ctx context.Context, page, limit int) (*dto.ListarComprasResponse, error)
}

type compraService struct {
	repo    repository.CompraRepository
	metodos repository.MetodoPagoRepository
	cajaSvc CajaService
}

func NewCompraService(repo repository.CompraRepository, metodos repository.MetodoPagoRepository, cajaSvc CajaService) CompraService {
	return &compraService{repo: repo, metodos: metodos, cajaSvc: cajaSvc}
}

func (s *compraService) Registrar(ctx context.Context, empleadoID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error) {
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

	compra := &model.Compra{
		EmpleadoID:   empleadoID,
		MetodoPagoID: metodo.ID,
		Monto:        req.Monto,
		Proveedor:    req.Proveedor,
		Descripcion:  req.Descripcion,
	}
	descripcion := "Compra"
	if req.Proveedor != nil {
		descripcion = "Compra a " + *req.Proveedor
	}
	mov := &model.MovimientoCaja{
		SesionCajaID: sesion.ID,
		Tipo:         model.MovEgreso,
		MetodoPagoID: metodo.ID,
		Monto:        req.Monto,
		Descripcion:  &descripcion,
	}

	if err := s.repo.CreateConMovimiento(ctx, compra, mov); err != nil {
		return nil, err
	}
	s.cajaSvc.InvalidarTotalesHoy(ctx)

	return &dto.CompraResponse{
		ID:          compra.ID.String(),
		Empleado:    empleadoID.String(),
		MetodoPago:  metodo.Nombre,
		Monto:       compra.Monto,
		Proveedor:   compra.Proveedor,
		Descripcion: compra.Descripcion,
		CreatedAt:   compra.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *compraService) Listar(ctx context.Context, page, limit int) (*dto.ListarComprasResponse, error) {
	compras, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompraResponse, len(compras))
	for i := range compras {
		c := &compras[i]
		items[i] = dto.CompraResponse{
			ID:          c.ID.String(),
			Empleado:    empleadoNombre(c.Empleado, c.EmpleadoID),
			Monto:       c.Monto,
			Proveedor:   c.Proveedor,
			Descripcion: c.Descripcion,
			CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		}
		if c.MetodoPago != nil {
			items[i].MetodoPago = c.MetodoPago.Nombre
		}
	}
	return &dto.ListarComprasResponse{Items: items, Total: total, Page: page, Limit: limit}, nil
}
