package repository

import (
	"context"

	"pizzapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmpleadoRepository interface {
	Create(ctx context.Context, e *model.Empleado) error
	FindByUsername(ctx context.Context, username string) (*model.Empleado, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Empleado, error)
	List(ctx context.Context) ([]model.Empleado, error)
	ListAll(ctx context.Context) ([]model.Empleado, error)
	Update(ctx context.Context, e *model.Empleado) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type empleadoRepo struct{ db *gorm.DB }

func NewEmpleadoRepository(db *gorm.DB) EmpleadoRepository { return &empleadoRepo{db: db} }

func (r *empleadoRepo) Create(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empleadoRepo) FindByUsername(ctx context.Context, username string) (*model.Empleado, error) {
	var e model.Empleado
	// Accept login by username OR email (case-insensitive email match)
	err := r.db.WithContext(ctx).
		Where("(username = ? OR LOWER(email::text) = LOWER(?)) AND activo = true", username, username).
		First(&e).Error
	return &e, err
}

func (r *empleadoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *empleadoRepo) List(ctx context.Context) ([]model.Empleado, error) {
	var empleados []model.Empleado
	err := r.db.WithContext(ctx).Where("activo = true").Find(&empleados).Error
	return empleados, err
}

func (r *empleadoRepo) ListAll(ctx context.Context) ([]model.Empleado, error) {
	var empleados []model.Empleado
	err := r.db.WithContext(ctx).Find(&empleados).Error
	return empleados, err
}

func (r *empleadoRepo) Update(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *empleadoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Empleado{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *empleadoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Empleado{}).Where("id = ?", id).Update("activo", true).Error
}
