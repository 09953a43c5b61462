package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"retailpos/internal/apierror"
	"retailpos/internal/dto"
	"retailpos/internal/model"
	"retailpos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// precioCacheTTL bounds staleness of the price check endpoint. Sales bypass
// the cache entirely — only the read path uses it.
const precioCacheTTL = 30 * time.Second

type ProductoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, usuarioID, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, usuarioID uuid.UUID, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Eliminar(ctx context.Context, usuarioID, id uuid.UUID) error
	// ConsultaPrecio answers the price check by SKU, served from Redis when
	// fresh.
	ConsultaPrecio(ctx context.Context, usuarioID uuid.UUID, sku string) (*dto.ConsultaPrecioResponse, error)
}

type productoService struct {
	repo    repository.ProductoRepository
	codigos CodigoService
	rdb     *redis.Client
}

func NewProductoService(repo repository.ProductoRepository, codigos CodigoService, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, codigos: codigos, rdb: rdb}
}

func (s *productoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	sku := req.Sku
	if sku != "" {
		existe, err := s.repo.ExistsSku(ctx, usuarioID, sku)
		if err != nil {
			return nil, err
		}
		if existe {
			return nil, apierror.Conflict("El SKU ya está en uso")
		}
	} else {
		generado, err := s.codigos.GenerarSku(ctx, usuarioID, nil)
		if err != nil {
			return nil, err
		}
		sku = generado
	}

	p := &model.Producto{
		UsuarioID:    usuarioID,
		Sku:          sku,
		Nombre:       req.Nombre,
		Subcategoria: req.Subcategoria,
		Marca:        req.Marca,
		Color:        req.Color,
		Talla:        req.Talla,
		Genero:       req.Genero,
		Temporada:    req.Temporada,
		Material:     req.Material,
		PrecioCompra: req.PrecioCompra,
		PrecioVenta:  req.PrecioVenta,
		Stock:        req.Stock,
		StockMinimo:  req.StockMinimo,
		Ubicacion:    req.Ubicacion,
		Notas:        req.Notas,
		Estado:       model.EstadoPorStock("", req.Stock),
	}
	if req.CategoriaID != nil {
		id, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, apierror.InvalidRequest("categoria_id inválido")
		}
		p.CategoriaID = &id
	}
	if req.ProveedorID != nil {
		id, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, apierror.InvalidRequest("proveedor_id inválido")
		}
		p.ProveedorID = &id
	}
	if req.SucursalID != nil {
		id, err := uuid.Parse(*req.SucursalID)
		if err != nil {
			return nil, apierror.InvalidRequest("sucursal_id inválido")
		}
		p.SucursalID = &id
	}
	if req.FechaIngreso != nil {
		fecha, err := time.Parse("2006-01-02", *req.FechaIngreso)
		if err != nil {
			return nil, apierror.InvalidRequest("fecha_ingreso inválida, formato esperado YYYY-MM-DD")
		}
		p.FechaIngreso = &fecha
	} else {
		hoy := time.Now()
		p.FechaIngreso = &hoy
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, usuarioID, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, usuarioID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto con ID %s no encontrado", id)
		}
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, usuarioID uuid.UUID, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, usuarioID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Eliminar(ctx context.Context, usuarioID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, usuarioID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Producto con ID %s no encontrado", id)
		}
		return err
	}
	return s.repo.Delete(ctx, usuarioID, id)
}

func (s *productoService) ConsultaPrecio(ctx context.Context, usuarioID uuid.UUID, sku string) (*dto.ConsultaPrecioResponse, error) {
	cacheKey := fmt.Sprintf("precio:%s:%s", usuarioID, sku)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.ConsultaPrecioResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindBySku(ctx, usuarioID, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto con SKU %s no encontrado", sku)
		}
		return nil, err
	}

	resp := &dto.ConsultaPrecioResponse{
		Sku:         p.Sku,
		Nombre:      p.Nombre,
		PrecioVenta: p.PrecioVenta,
		Stock:       p.Stock,
		Estado:      p.Estado,
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, precioCacheTTL).Err(); err != nil {
				// Cache miss on the next read is the worst case.
				log.Debug().Err(err).Str("sku", sku).Msg("no se pudo cachear el precio")
			}
		}
	}
	return resp, nil
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:           p.ID.String(),
		Sku:          p.Sku,
		Nombre:       p.Nombre,
		Marca:        p.Marca,
		Color:        p.Color,
		Talla:        p.Talla,
		PrecioCompra: p.PrecioCompra,
		PrecioVenta:  p.PrecioVenta,
		Stock:        p.Stock,
		StockMinimo:  p.StockMinimo,
		Estado:       p.Estado,
	}
	if p.CategoriaID != nil {
		s := p.CategoriaID.String()
		resp.CategoriaID = &s
	}
	if p.Categoria != nil {
		resp.CategoriaNombre = p.Categoria.Nombre
	}
	if p.ProveedorID != nil {
		s := p.ProveedorID.String()
		resp.ProveedorID = &s
	}
	if p.SucursalID != nil {
		s := p.SucursalID.String()
		resp.SucursalID = &s
	}
	return resp
}
