package repository

import (
	"context"

	"pizzapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	// CreateConMovimiento persists the sale and its ingreso movement in one
	// transaction; neither exists without the other.
	CreateConMovimiento(ctx context.Context, v *model.Venta, mov *model.MovimientoCaja) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, page, limit int) ([]model.Venta, int64, error)
	// AnularConMovimiento flips Anulada and appends the compensating egreso
	// movement atomically. The original sale row is never deleted.
	AnularConMovimiento(ctx context.Context, v *model.Venta, mov *model.MovimientoCaja) error
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) CreateConMovimiento(ctx context.Context, v *model.Venta, mov *model.MovimientoCaja) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			return err
		}
		mov.VentaID = &v.ID
		return tx.Create(mov).Error
	})
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Empleado").
		Preload("MetodoPago").
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) List(ctx context.Context, page, limit int) ([]model.Venta, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Venta{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ventas []model.Venta
	err := q.Preload("Empleado").
		Preload("MetodoPago").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) AnularConMovimiento(ctx context.Context, v *model.Venta, mov *model.MovimientoCaja) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Venta{}).Where("id = ?", v.ID).Update("anulada", true).Error; err != nil {
			return err
		}
		mov.VentaID = &v.ID
		return tx.Create(mov).Error
	})
}
