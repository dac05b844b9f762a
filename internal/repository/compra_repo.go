package repository

import (
	"context"

	"pizzapos/internal/model"

	"gorm.io/gorm"
)

type CompraRepository interface {
	// CreateConMovimiento persists the purchase and its egreso movement in
	// one transaction.
	CreateConMovimiento(ctx context.Context, c *model.Compra, mov *model.MovimientoCaja) error
	List(ctx context.Context, page, limit int) ([]model.Compra, int64, error)
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) CreateConMovimiento(ctx context.Context, c *model.Compra, mov *model.MovimientoCaja) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		mov.CompraID = &c.ID
		return tx.Create(mov).Error
	})
}

func (r *compraRepo) List(ctx context.Context, page, limit int) ([]model.Compra, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Compra{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var compras []model.Compra
	err := q.Preload("Empleado").
		Preload("MetodoPago").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&compras).Error
	return compras, total, err
}
