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

type SucursalService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearSucursalRequest) (*dto.SucursalResponse, error)
	ObtenerPorID(ctx context.Context, usuarioID, id uuid.UUID) (*dto.SucursalResponse, error)
	Listar(ctx context.Context, usuarioID uuid.UUID) ([]dto.SucursalResponse, error)
}

type sucursalService struct {
	repo repository.SucursalRepository
}

func NewSucursalService(repo repository.SucursalRepository) SucursalService {
	return &sucursalService{repo: repo}
}

func (s *sucursalService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearSucursalRequest) (*dto.SucursalResponse, error) {
	suc := &model.Sucursal{
		UsuarioID: usuarioID,
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		Telefono:  req.Telefono,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, suc); err != nil {
		return nil, err
	}
	resp := sucursalToResponse(suc)
	return &resp, nil
}

func (s *sucursalService) ObtenerPorID(ctx context.Context, usuarioID, id uuid.UUID) (*dto.SucursalResponse, error) {
	suc, err := s.repo.FindByID(ctx, usuarioID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Sucursal no encontrada")
		}
		return nil, err
	}
	resp := sucursalToResponse(suc)
	return &resp, nil
}

func (s *sucursalService) Listar(ctx context.Context, usuarioID uuid.UUID) ([]dto.SucursalResponse, error) {
	sucursales, err := s.repo.List(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SucursalResponse, 0, len(sucursales))
	for i := range sucursales {
		resp = append(resp, sucursalToResponse(&sucursales[i]))
	}
	return resp, nil
}

func sucursalToResponse(s *model.Sucursal) dto.SucursalResponse {
	return dto.SucursalResponse{
		ID:        s.ID.String(),
		Nombre:    s.Nombre,
		Direccion: s.Direccion,
		Telefono:  s.Telefono,
		Activo:    s.Activo,
	}
}
