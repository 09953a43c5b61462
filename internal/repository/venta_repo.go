package repository

import (
	"context"

	"retailpos/internal/dto"
	"retailpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	// Create persists the sale header and its items inside the given tx.
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, usuarioID, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, usuarioID uuid.UUID, filter dto.VentaFilter) ([]model.Venta, int64, error)
	// Count returns the number of sales for the tenant — input to the sale
	// number generator.
	Count(ctx context.Context, usuarioID uuid.UUID) (int64, error)
	ExistsNumero(ctx context.Context, usuarioID uuid.UUID, numero string) (bool, error)
	// MarcarCanceladaTx flips estado to Cancelada only if it is not already
	// cancelled, in one conditional update. Zero rows affected means another
	// transaction got there first (or the sale does not exist) — the caller
	// must not restock in that case.
	MarcarCanceladaTx(tx *gorm.DB, usuarioID, id uuid.UUID) (int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, usuarioID, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Cliente").Preload("Sucursal").
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) List(ctx context.Context, usuarioID uuid.UUID, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{}).Where("usuario_id = ?", usuarioID)

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.SucursalID != "" && filter.SucursalID != "all" {
		q = q.Where("sucursal_id = ?", filter.SucursalID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Preload("Cliente").Preload("Sucursal").
		Order("fecha DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) Count(ctx context.Context, usuarioID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("usuario_id = ?", usuarioID).
		Count(&count).Error
	return count, err
}

func (r *ventaRepo) ExistsNumero(ctx context.Context, usuarioID uuid.UUID, numero string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("usuario_id = ? AND numero_venta = ?", usuarioID, numero).
		Count(&count).Error
	return count > 0, err
}

func (r *ventaRepo) MarcarCanceladaTx(tx *gorm.DB, usuarioID, id uuid.UUID) (int64, error) {
	res := tx.Model(&model.Venta{}).
		Where("id = ? AND usuario_id = ? AND estado <> ?", id, usuarioID, model.VentaCancelada).
		Update("estado", model.VentaCancelada)
	return res.RowsAffected, res.Error
}
