package service

import (
	"context"

	"pizzapos/internal/dto"
	"pizzapos/internal/model"
	"pizzapos/internal/repository"
)

type MetodoPagoService interface {
	Crear(ctx context.Context, req dto.CrearMetodoPagoRequest) (*dto.MetodoPagoResponse, error)
	Listar(ctx context.Context) ([]dto.MetodoPagoResponse, error)
}

type metodoPagoService struct {
	repo repository.MetodoPagoRepository
}

func NewMetodoPagoService(repo repository.MetodoPagoRepository) MetodoPagoService {
	return &metodoPagoService{repo: repo}
}

func (s *metodoPagoService) Crear(ctx context.Context, req dto.CrearMetodoPagoRequest) (*dto.MetodoPagoResponse, error) {
	metodo := &model.MetodoPago{Nombre: req.Nombre, Activo: true}
	if err := s.repo.Create(ctx, metodo); err != nil {
		return nil, err
	}
	return &dto.MetodoPagoResponse{ID: metodo.ID.String(), Nombre: metodo.Nombre, Activo: metodo.Activo}, nil
}

func (s *metodoPagoService) Listar(ctx context.Context) ([]dto.MetodoPagoResponse, error) {
	metodos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MetodoPagoResponse, len(metodos))
	for i, m := range metodos {
		resp[i] = dto.MetodoPagoResponse{ID: m.ID.String(), Nombre: m.Nombre, Activo: m.Activo}
	}
	return resp, nil
}
