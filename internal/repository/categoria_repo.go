package repository

import (
	"context"

	"retailpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoriaRepository defines CRUD operations for Categoria.
type CategoriaRepository interface {
	Crear(ctx context.Context, c *model.Categoria) error
	Listar(ctx context.Context, usuarioID uuid.UUID) ([]model.Categoria, error)
	ObtenerPorID(ctx context.Context, usuarioID, id uuid.UUID) (*model.Categoria, error)
	// ObtenerPorNombre matches case-insensitively.
	ObtenerPorNombre(ctx context.Context, usuarioID uuid.UUID, nombre string) (*model.Categoria, error)
}

type categoriaRepository struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepository{db: db}
}

func (r *categoriaRepository) Crear(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepository) Listar(ctx context.Context, usuarioID uuid.UUID) ([]model.Categoria, error) {
	var list []model.Categoria
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *categoriaRepository) ObtenerPorID(ctx context.Context, usuarioID, id uuid.UUID) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepository) ObtenerPorNombre(ctx context.Context, usuarioID uuid.UUID, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND lower(nombre) = lower(?)", usuarioID, nombre).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
