package repository

import (
	"context"
	"strings"

	"retailpos/internal/dto"
	"retailpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via mocks. Every method is tenant-scoped by
// usuarioID — no query runs without it.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	// CreateBatchTx inserts all rows inside the given transaction — the bulk
	// import's atomic phase.
	CreateBatchTx(tx *gorm.DB, productos []model.Producto) error
	FindByID(ctx context.Context, usuarioID, id uuid.UUID) (*model.Producto, error)
	FindByIDTx(tx *gorm.DB, usuarioID, id uuid.UUID) (*model.Producto, error)
	FindBySku(ctx context.Context, usuarioID uuid.UUID, sku string) (*model.Producto, error)
	ExistsSku(ctx context.Context, usuarioID uuid.UUID, sku string) (bool, error)
	List(ctx context.Context, usuarioID uuid.UUID, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	ListStockBajo(ctx context.Context, usuarioID uuid.UUID, sucursalID *uuid.UUID) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, usuarioID, id uuid.UUID) error

	// DescontarStockTx performs the atomic conditional decrement
	// (stock = stock - cantidad WHERE stock >= cantidad) and returns the
	// number of rows affected: 0 means the product is missing or the stock
	// is insufficient — the caller decides which by re-reading the row.
	DescontarStockTx(tx *gorm.DB, usuarioID, id uuid.UUID, cantidad int) (int64, error)
	ReponerStockTx(tx *gorm.DB, usuarioID, id uuid.UUID, cantidad int) error
	UpdateEstadoTx(tx *gorm.DB, usuarioID, id uuid.UUID, estado string) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) CreateBatchTx(tx *gorm.DB, productos []model.Producto) error {
	return tx.Create(&productos).Error
}

func (r *productoRepo) FindByID(ctx context.Context, usuarioID, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Categoria").Preload("Sucursal").
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, usuarioID, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.Where("id = ? AND usuario_id = ?", id, usuarioID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindBySku(ctx context.Context, usuarioID uuid.UUID, sku string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND lower(sku) = lower(?)", usuarioID, sku).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) ExistsSku(ctx context.Context, usuarioID uuid.UUID, sku string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("usuario_id = ? AND lower(sku) = lower(?)", usuarioID, sku).
		Count(&count).Error
	return count > 0, err
}

func (r *productoRepo) List(ctx context.Context, usuarioID uuid.UUID, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{}).Where("usuario_id = ?", usuarioID)

	if filter.SucursalID != "" && filter.SucursalID != "all" {
		q = q.Where("sucursal_id = ?", filter.SucursalID)
	}
	if s := strings.TrimSpace(filter.Buscar); s != "" {
		pattern := "%" + s + "%"
		q = q.Where("nombre ILIKE ? OR sku ILIKE ? OR marca ILIKE ? OR color ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Categoria").Preload("Sucursal").
		Order("nombre ASC").Limit(filter.Limit).Offset(offset).
		Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) ListStockBajo(ctx context.Context, usuarioID uuid.UUID, sucursalID *uuid.UUID) ([]model.Producto, error) {
	var productos []model.Producto
	q := r.db.WithContext(ctx).
		Where("usuario_id = ? AND stock <= stock_minimo AND estado <> ?", usuarioID, model.EstadoDescontinuado)
	if sucursalID != nil {
		q = q.Where("sucursal_id = ?", *sucursalID)
	}
	err := q.Order("stock ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, usuarioID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Delete(&model.Producto{}).Error
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, usuarioID, id uuid.UUID, cantidad int) (int64, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND usuario_id = ? AND stock >= ?", id, usuarioID, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	return res.RowsAffected, res.Error
}

func (r *productoRepo) ReponerStockTx(tx *gorm.DB, usuarioID, id uuid.UUID, cantidad int) error {
	return tx.Model(&model.Producto{}).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Update("stock", gorm.Expr("stock + ?", cantidad)).Error
}

func (r *productoRepo) UpdateEstadoTx(tx *gorm.DB, usuarioID, id uuid.UUID, estado string) error {
	return tx.Model(&model.Producto{}).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Update("estado", estado).Error
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
