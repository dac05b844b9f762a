package repository

import (
	"context"
	"time"

	"pizzapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CajaRepository persists sessions and the append-only movement ledger.
// There is deliberately no update or delete for movements.
type CajaRepository interface {
	CreateSesion(ctx context.Context, s *model.SesionCaja) error
	FindSesionAbierta(ctx context.Context) (*model.SesionCaja, error)
	FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error)
	UpdateSesion(ctx context.Context, s *model.SesionCaja) error
	CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error
	ListMovimientos(ctx context.Context, sesionID uuid.UUID) ([]model.MovimientoCaja, error)
	ListSesionesCerradas(ctx context.Context, page, limit int) ([]model.SesionCaja, int64, error)
	// TotalesEntre sums movement amounts per tipo inside [desde, hasta).
	TotalesEntre(ctx context.Context, desde, hasta time.Time) (ingresos, egresos decimal.Decimal, err error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) CreateSesion(ctx context.Context, s *model.SesionCaja) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *cajaRepo) FindSesionAbierta(ctx context.Context) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).
		Preload("AbiertaPor").
		Where("estado = ?", model.SesionAbierta).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).
		Preload("AbiertaPor").
		Preload("CerradaPor").
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) UpdateSesion(ctx context.Context, s *model.SesionCaja) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *cajaRepo) CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, sesionID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).
		Preload("MetodoPago").
		Where("sesion_caja_id = ?", sesionID).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) ListSesionesCerradas(ctx context.Context, page, limit int) ([]model.SesionCaja, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.SesionCaja{}).Where("estado = ?", model.SesionCerrada)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sesiones []model.SesionCaja
	err := q.Preload("AbiertaPor").
		Preload("CerradaPor").
		Order("closed_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sesiones).Error
	return sesiones, total, err
}

func (r *cajaRepo) TotalesEntre(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var rows []struct {
		Tipo  string
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.MovimientoCaja{}).
		Select("tipo, COALESCE(SUM(monto), 0) AS total").
		Where("created_at >= ? AND created_at < ?", desde, hasta).
		Group("tipo").
		Scan(&rows).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	ingresos, egresos := decimal.Zero, decimal.Zero
	for _, row := range rows {
		switch row.Tipo {
		case model.MovIngreso:
			ingresos = row.Total
		case model.MovEgreso:
			egresos = row.Total
		}
	}
	return ingresos, egresos, nil
}
