package repository

import (
	"context"
	"time"

	"retailpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, usuarioID, id uuid.UUID) (*model.Cliente, error)
	FindByDocumento(ctx context.Context, usuarioID uuid.UUID, numeroDocumento string) (*model.Cliente, error)
	List(ctx context.Context, usuarioID uuid.UUID, buscar string) ([]model.Cliente, error)
	// RegistrarCompraTx bumps total_compras and ultima_compra inside the sale
	// transaction — never outside one.
	RegistrarCompraTx(tx *gorm.DB, usuarioID, id uuid.UUID, fecha time.Time) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, usuarioID, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByDocumento(ctx context.Context, usuarioID uuid.UUID, numeroDocumento string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND numero_documento = ?", usuarioID, numeroDocumento).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context, usuarioID uuid.UUID, buscar string) ([]model.Cliente, error) {
	var clientes []model.Cliente
	q := r.db.WithContext(ctx).Where("usuario_id = ?", usuarioID)
	if buscar != "" {
		pattern := "%" + buscar + "%"
		q = q.Where("nombre ILIKE ? OR numero_documento ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}
	err := q.Order("nombre ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) RegistrarCompraTx(tx *gorm.DB, usuarioID, id uuid.UUID, fecha time.Time) error {
	return tx.Model(&model.Cliente{}).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Updates(map[string]interface{}{
			"total_compras": gorm.Expr("total_compras + 1"),
			"ultima_compra": fecha,
		}).Error
}
