package service

import (
	"context"
	"errors"
	"fmt"

	"retailpos/internal/apierror"
	"retailpos/internal/dto"
	"retailpos/internal/model"
	"retailpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// InventarioService is the stock ledger guard: the only two write paths into
// Producto.Stock. Both run inside a caller-owned transaction and keep the
// standing invariant stock >= 0. Estado is recomputed deterministically from
// the post-mutation stock (0 → Agotado, >0 → Disponible); Descontinuado is
// never overwritten.
type InventarioService interface {
	// ReservarStockTx atomically decrements stock by cantidad. The decrement
	// is conditional (stock >= cantidad) so two concurrent sales cannot both
	// pass a check before either writes — zero rows affected means
	// insufficient stock, never a clamp.
	ReservarStockTx(ctx context.Context, tx *gorm.DB, usuarioID, productoID uuid.UUID, cantidad int) error
	// LiberarStockTx returns cantidad units, the cancellation counterpart.
	LiberarStockTx(ctx context.Context, tx *gorm.DB, usuarioID, productoID uuid.UUID, cantidad int) error
	AlertasStockBajo(ctx context.Context, usuarioID uuid.UUID, sucursalID *uuid.UUID) ([]dto.ProductoResponse, error)
}

type inventarioService struct {
	repo repository.ProductoRepository
}

func NewInventarioService(repo repository.ProductoRepository) InventarioService {
	return &inventarioService{repo: repo}
}

func (s *inventarioService) ReservarStockTx(ctx context.Context, tx *gorm.DB, usuarioID, productoID uuid.UUID, cantidad int) error {
	rows, err := s.repo.DescontarStockTx(tx, usuarioID, productoID, cantidad)
	if err != nil {
		return fmt.Errorf("descontando stock: %w", err)
	}
	if rows == 0 {
		// The conditional update rejects both a missing product and an
		// insufficient one — re-read to tell them apart.
		p, err := s.repo.FindByIDTx(tx, usuarioID, productoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Producto con ID %s no encontrado", productoID)
			}
			return err
		}
		return apierror.InsufficientStock("Stock insuficiente para %s. Disponible: %d", p.Nombre, p.Stock)
	}
	return s.recalcularEstado(tx, usuarioID, productoID)
}

func (s *inventarioService) LiberarStockTx(ctx context.Context, tx *gorm.DB, usuarioID, productoID uuid.UUID, cantidad int) error {
	if err := s.repo.ReponerStockTx(tx, usuarioID, productoID, cantidad); err != nil {
		return fmt.Errorf("reponiendo stock: %w", err)
	}
	return s.recalcularEstado(tx, usuarioID, productoID)
}

func (s *inventarioService) recalcularEstado(tx *gorm.DB, usuarioID, productoID uuid.UUID) error {
	p, err := s.repo.FindByIDTx(tx, usuarioID, productoID)
	if err != nil {
		return err
	}
	nuevo := model.EstadoPorStock(p.Estado, p.Stock)
	if nuevo == p.Estado {
		return nil
	}
	if err := s.repo.UpdateEstadoTx(tx, usuarioID, productoID, nuevo); err != nil {
		return err
	}
	if nuevo == model.EstadoAgotado {
		log.Info().
			Str("producto_id", productoID.String()).
			Str("sku", p.Sku).
			Msg("producto agotado")
	}
	return nil
}

func (s *inventarioService) AlertasStockBajo(ctx context.Context, usuarioID uuid.UUID, sucursalID *uuid.UUID) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.ListStockBajo(ctx, usuarioID, sucursalID)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		alertas = append(alertas, productoToResponse(&productos[i]))
	}
	return alertas, nil
}
