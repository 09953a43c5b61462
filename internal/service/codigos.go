package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"retailpos/internal/repository"

	"github.com/google/uuid"
)

// CodigoService generates tenant-scoped identifiers. Both formats derive a
// base from timestamp components, so uniqueness is probabilistic by
// construction — the existence check against the store before returning is
// mandatory, not optional.
type CodigoService interface {
	// GenerarSku returns a free SKU (Q + day + month + hour + minute, plus an
	// incrementing suffix on collision). reservados holds lowercased SKUs
	// already claimed within the current batch; generated SKUs are checked
	// against it but NOT added — the caller owns that set.
	GenerarSku(ctx context.Context, usuarioID uuid.UUID, reservados map[string]bool) (string, error)
	// GenerarNumeroVenta returns a free sale number:
	// tenant prefix + sequence + MMDDHHmm.
	GenerarNumeroVenta(ctx context.Context, usuarioID uuid.UUID) (string, error)
}

type codigoService struct {
	productos repository.ProductoRepository
	ventas    repository.VentaRepository
	ahora     func() time.Time
}

func NewCodigoService(productos repository.ProductoRepository, ventas repository.VentaRepository) CodigoService {
	return &codigoService{productos: productos, ventas: ventas, ahora: time.Now}
}

// NewCodigoServiceConReloj injects a clock for tests.
func NewCodigoServiceConReloj(productos repository.ProductoRepository, ventas repository.VentaRepository, ahora func() time.Time) CodigoService {
	return &codigoService{productos: productos, ventas: ventas, ahora: ahora}
}

func (s *codigoService) GenerarSku(ctx context.Context, usuarioID uuid.UUID, reservados map[string]bool) (string, error) {
	now := s.ahora()
	base := fmt.Sprintf("Q%02d%02d%02d%02d", now.Day(), int(now.Month()), now.Hour(), now.Minute())

	sku := base
	for counter := 1; ; counter++ {
		if !reservados[strings.ToLower(sku)] {
			exists, err := s.productos.ExistsSku(ctx, usuarioID, sku)
			if err != nil {
				return "", err
			}
			if !exists {
				return sku, nil
			}
		}
		sku = fmt.Sprintf("%s%d", base, counter)
	}
}

func (s *codigoService) GenerarNumeroVenta(ctx context.Context, usuarioID uuid.UUID) (string, error) {
	count, err := s.ventas.Count(ctx, usuarioID)
	if err != nil {
		return "", err
	}
	now := s.ahora()
	ts := fmt.Sprintf("%02d%02d%02d%02d", int(now.Month()), now.Day(), now.Hour(), now.Minute())

	// Tenant component: first uuid group, 8 hex chars. The original numeric
	// tenant ids concatenated directly; uuids need truncating.
	prefix := strings.SplitN(usuarioID.String(), "-", 2)[0]

	for seq := count + 1; ; seq++ {
		numero := fmt.Sprintf("%s%d%s", prefix, seq, ts)
		exists, err := s.ventas.ExistsNumero(ctx, usuarioID, numero)
		if err != nil {
			return "", err
		}
		if !exists {
			return numero, nil
		}
	}
}
