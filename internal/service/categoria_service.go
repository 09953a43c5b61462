package service

import (
	"context"
	"errors"

	"retailpos/internal/apierror"
	"retailpos/internal/dto"
	"retailpos/internal/model"
	"retailpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoriaService is the category-resolution collaborator of the bulk
// import, plus thin CRUD.
type CategoriaService interface {
	// ResolverPorNombre finds a category case-insensitively or creates it
	// with the given casing. The second return reports creation.
	ResolverPorNombre(ctx context.Context, usuarioID uuid.UUID, nombre string) (*model.Categoria, bool, error)
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context, usuarioID uuid.UUID) ([]dto.CategoriaResponse, error)
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) ResolverPorNombre(ctx context.Context, usuarioID uuid.UUID, nombre string) (*model.Categoria, bool, error) {
	cat, err := s.repo.ObtenerPorNombre(ctx, usuarioID, nombre)
	if err == nil {
		return cat, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	nueva := &model.Categoria{UsuarioID: usuarioID, Nombre: nombre, Activo: true}
	if err := s.repo.Crear(ctx, nueva); err != nil {
		return nil, false, err
	}
	return nueva, true, nil
}

func (s *categoriaService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	if _, err := s.repo.ObtenerPorNombre(ctx, usuarioID, req.Nombre); err == nil {
		return nil, apierror.Conflict("La categoría \"%s\" ya existe", req.Nombre)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c := &model.Categoria{
		UsuarioID:   usuarioID,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := s.repo.Crear(ctx, c); err != nil {
		return nil, err
	}
	resp := categoriaToResponse(c)
	return &resp, nil
}

func (s *categoriaService) Listar(ctx context.Context, usuarioID uuid.UUID) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.Listar(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaResponse, 0, len(categorias))
	for i := range categorias {
		resp = append(resp, categoriaToResponse(&categorias[i]))
	}
	return resp, nil
}

func categoriaToResponse(c *model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:          c.ID.String(),
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Activo:      c.Activo,
	}
}
