package repository

import (
	"context"

	"retailpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SucursalRepository interface {
	Create(ctx context.Context, s *model.Sucursal) error
	FindByID(ctx context.Context, usuarioID, id uuid.UUID) (*model.Sucursal, error)
	List(ctx context.Context, usuarioID uuid.UUID) ([]model.Sucursal, error)
}

type sucursalRepo struct{ db *gorm.DB }

func NewSucursalRepository(db *gorm.DB) SucursalRepository { return &sucursalRepo{db: db} }

func (r *sucursalRepo) Create(ctx context.Context, s *model.Sucursal) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sucursalRepo) FindByID(ctx context.Context, usuarioID, id uuid.UUID) (*model.Sucursal, error) {
	var s model.Sucursal
	err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sucursalRepo) List(ctx context.Context, usuarioID uuid.UUID) ([]model.Sucursal, error) {
	var sucursales []model.Sucursal
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("nombre ASC").Find(&sucursales).Error
	return sucursales, err
}
