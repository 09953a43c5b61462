package service

import (
	"context"
	"errors"
	"time"

	"retailpos/internal/apierror"
	"retailpos/internal/dto"
	"retailpos/internal/model"
	"retailpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, usuarioID, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, usuarioID uuid.UUID, buscar string) ([]dto.ClienteResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if _, err := s.repo.FindByDocumento(ctx, usuarioID, req.NumeroDocumento); err == nil {
		return nil, apierror.Conflict("El número de documento ya está registrado")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &model.Cliente{
		UsuarioID:       usuarioID,
		Nombre:          req.Nombre,
		TipoDocumento:   req.TipoDocumento,
		NumeroDocumento: req.NumeroDocumento,
		Email:           req.Email,
		Telefono:        req.Telefono,
		Direccion:       req.Direccion,
		FechaRegistro:   time.Now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, usuarioID, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, usuarioID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Cliente con ID %s no encontrado", id)
		}
		return nil, err
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) Listar(ctx context.Context, usuarioID uuid.UUID, buscar string) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, usuarioID, buscar)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		resp = append(resp, clienteToResponse(&clientes[i]))
	}
	return resp, nil
}

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	resp := dto.ClienteResponse{
		ID:              c.ID.String(),
		Nombre:          c.Nombre,
		TipoDocumento:   c.TipoDocumento,
		NumeroDocumento: c.NumeroDocumento,
		Email:           c.Email,
		Telefono:        c.Telefono,
		TotalCompras:    c.TotalCompras,
	}
	if c.UltimaCompra != nil {
		s := c.UltimaCompra.Format(time.RFC3339)
		resp.UltimaCompra = &s
	}
	return resp
}
