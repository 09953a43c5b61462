package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"retailpos/internal/apierror"
	"retailpos/internal/dto"
	"retailpos/internal/model"
	"retailpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	AnularVenta(ctx context.Context, usuarioID, id uuid.UUID) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, usuarioID, id uuid.UUID) (*dto.VentaResponse, error)
	ListarVentas(ctx context.Context, usuarioID uuid.UUID, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	sucursalRepo repository.SucursalRepository
	inventario   InventarioService
	codigos      CodigoService
	ahora        func() time.Time
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	sucursalRepo repository.SucursalRepository,
	inventario InventarioService,
	codigos CodigoService,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		sucursalRepo: sucursalRepo,
		inventario:   inventario,
		codigos:      codigos,
		ahora:        time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// All-or-nothing sale:
//   1. Resolve sucursal (required) and cliente (optional, absence tolerated)
//   2. Resolve each product, check stock, price each line
//   3. Generate the tenant-scoped sale number
//   4. BEGIN TX: create venta+items, reserve stock per line, bump customer stats
//   5. COMMIT — any error rolls back everything
//
// The pre-flight stock check gives the caller the available quantity; the
// authoritative guard is the conditional decrement inside the transaction.

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	// 1. Sucursal — required, must belong to the tenant.
	if req.SucursalID == "" {
		return nil, apierror.InvalidRequest("La sucursal es obligatoria")
	}
	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		return nil, apierror.InvalidRequest("sucursal_id inválido")
	}
	sucursal, err := s.sucursalRepo.FindByID(ctx, usuarioID, sucursalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Sucursal no encontrada")
		}
		return nil, err
	}

	// 2. Cliente — optional; an unknown id degrades to an anonymous sale
	// instead of failing. Deliberate: walk-in customers are the common case.
	// Only absence degrades; an infrastructure failure aborts the request.
	var cliente *model.Cliente
	if req.ClienteID != nil {
		if cid, parseErr := uuid.Parse(*req.ClienteID); parseErr == nil {
			c, findErr := s.clienteRepo.FindByID(ctx, usuarioID, cid)
			if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
				return nil, findErr
			}
			cliente = c
		}
	}

	// 3. Resolve products and price every line. Products may belong to a
	// different sucursal than the sale's: the sale's sucursal says where the
	// sale is registered, stock is tracked per product.
	items := make([]model.VentaItem, 0, len(req.Items))
	subtotalOriginal := decimal.Zero
	subtotalFinal := decimal.Zero

	for _, it := range req.Items {
		pid, parseErr := uuid.Parse(it.ProductoID)
		if parseErr != nil {
			return nil, apierror.InvalidRequest("producto_id inválido: %s", it.ProductoID)
		}
		p, findErr := s.productoRepo.FindByID(ctx, usuarioID, pid)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("Producto con ID %s no encontrado", it.ProductoID)
			}
			return nil, findErr
		}
		if p.Stock < it.Cantidad {
			return nil, apierror.InsufficientStock("Stock insuficiente para %s. Disponible: %d", p.Nombre, p.Stock)
		}

		// precioOriginal always snapshots the product's list price, even when
		// the request overrides the unit price.
		precioOriginal := p.PrecioVenta
		base := precioOriginal
		if it.PrecioUnitario != nil {
			base = *it.PrecioUnitario
		}

		desc, descErr := NuevoDescuento(it.Descuento, it.DescuentoTipo)
		if descErr != nil {
			return nil, descErr
		}
		precioUnitario, montoDescuento := desc.AplicarALinea(base, it.Cantidad)
		if precioUnitario.IsNegative() {
			return nil, apierror.InvalidRequest("El descuento supera el importe de la línea %s", p.Nombre)
		}

		qty := decimal.NewFromInt(int64(it.Cantidad))
		subtotal := qty.Mul(precioUnitario)
		subtotalOriginal = subtotalOriginal.Add(qty.Mul(precioOriginal))
		subtotalFinal = subtotalFinal.Add(subtotal)

		descuentoTipo := it.DescuentoTipo
		if descuentoTipo == "" {
			descuentoTipo = string(DescuentoPorcentaje)
		}
		items = append(items, model.VentaItem{
			ProductoID:     pid,
			Sku:            p.Sku,
			Nombre:         p.Nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: precioUnitario,
			PrecioOriginal: precioOriginal,
			Descuento:      montoDescuento,
			DescuentoTipo:  descuentoTipo,
			Subtotal:       subtotal,
		})
	}

	descuentoItems := subtotalOriginal.Sub(subtotalFinal)

	// Order-level discount applies to the already-discounted line sum.
	descTotal, err := NuevoDescuento(req.DescuentoTotal, req.DescuentoTotalTipo)
	if err != nil {
		return nil, err
	}
	montoDescuentoTotal := descTotal.AplicarATotal(subtotalFinal)
	total := subtotalFinal.Sub(montoDescuentoTotal)
	if total.IsNegative() {
		return nil, apierror.InvalidRequest("El descuento total supera el importe de la venta")
	}

	numeroVenta, err := s.codigos.GenerarNumeroVenta(ctx, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("generando número de venta: %w", err)
	}

	fecha := s.ahora()
	venta := model.Venta{
		UsuarioID:            usuarioID,
		NumeroVenta:          numeroVenta,
		Fecha:                fecha,
		ClienteNombre:        valorODefecto(req.ClienteNombre, "Cliente Genérico"),
		DocumentoCliente:     valorODefecto(req.DocumentoCliente, "N/A"),
		TipoDocumento:        valorODefectoStr(req.TipoDocumento, "boleta"),
		Vendedor:             valorODefectoStr(req.Vendedor, "Usuario"),
		SucursalID:           sucursal.ID,
		SucursalNombre:       sucursal.Nombre,
		Subtotal:             subtotalOriginal,
		DescuentoItems:       descuentoItems,
		DescuentoTotal:       montoDescuentoTotal,
		DescuentoTotalTipo:   valorODefectoStr(req.DescuentoTotalTipo, string(DescuentoPorcentaje)),
		DescuentoTotalMotivo: req.DescuentoTotalMotivo,
		Total:                total,
		MetodoPago:           valorODefectoStr(req.MetodoPago, "Efectivo"),
		NumeroOperacion:      req.NumeroOperacion,
		Estado:               model.VentaCompletada,
		Items:                items,
	}
	if cliente != nil {
		venta.ClienteID = &cliente.ID
		venta.ClienteNombre = cliente.Nombre
		venta.DocumentoCliente = cliente.NumeroDocumento
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}
		for _, item := range venta.Items {
			if err := s.inventario.ReservarStockTx(ctx, tx, usuarioID, item.ProductoID, item.Cantidad); err != nil {
				return err
			}
		}
		if cliente != nil {
			if err := s.clienteRepo.RegistrarCompraTx(tx, usuarioID, cliente.ID, fecha); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		if apierror.KindOf(txErr) != 0 {
			return nil, txErr
		}
		log.Error().Err(txErr).Str("numero_venta", numeroVenta).Msg("venta abortada")
		return nil, apierror.Transaction(txErr)
	}

	log.Info().
		Str("numero_venta", numeroVenta).
		Str("usuario_id", usuarioID.String()).
		Int("items", len(venta.Items)).
		Str("total", total.String()).
		Msg("venta registrada")

	return ventaToResponse(&venta), nil
}

// ── AnularVenta ───────────────────────────────────────────────────────────────
// Symmetric to creation: one transaction that marks the sale Cancelada and
// returns every line's stock. Customer statistics are intentionally NOT
// reversed — totalCompras counts historical completed purchases.

func (s *ventaService) AnularVenta(ctx context.Context, usuarioID, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, usuarioID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Venta con ID %s no encontrada", id)
		}
		return nil, err
	}
	if venta.Estado == model.VentaCancelada {
		return nil, apierror.InvalidRequest("La venta ya está cancelada")
	}

	// The check above runs on a snapshot; the conditional update inside the
	// transaction is the authoritative guard. Two concurrent cancellations
	// both pass the snapshot check, but only one flips the estado — the
	// other sees zero rows and must not restock.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		rows, err := s.repo.MarcarCanceladaTx(tx, usuarioID, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apierror.InvalidRequest("La venta ya está cancelada")
		}
		for _, item := range venta.Items {
			if err := s.inventario.LiberarStockTx(ctx, tx, usuarioID, item.ProductoID, item.Cantidad); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		if apierror.KindOf(txErr) != 0 {
			return nil, txErr
		}
		log.Error().Err(txErr).Str("venta_id", id.String()).Msg("anulación abortada")
		return nil, apierror.Transaction(txErr)
	}

	venta.Estado = model.VentaCancelada
	log.Info().Str("numero_venta", venta.NumeroVenta).Msg("venta anulada")
	return ventaToResponse(venta), nil
}

func (s *ventaService) ObtenerVenta(ctx context.Context, usuarioID, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, usuarioID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Venta con ID %s no encontrada", id)
		}
		return nil, err
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListarVentas(ctx context.Context, usuarioID uuid.UUID, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, usuarioID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func valorODefecto(v *string, defecto string) string {
	if v != nil && *v != "" {
		return *v
	}
	return defecto
}

func valorODefectoStr(v, defecto string) string {
	if v != "" {
		return v
	}
	return defecto
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, dto.ItemVentaResponse{
			ProductoID:     item.ProductoID.String(),
			Sku:            item.Sku,
			Nombre:         item.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			PrecioOriginal: item.PrecioOriginal,
			Descuento:      item.Descuento,
			DescuentoTipo:  item.DescuentoTipo,
			Subtotal:       item.Subtotal,
		})
	}
	var clienteID *string
	if v.ClienteID != nil {
		s := v.ClienteID.String()
		clienteID = &s
	}
	return &dto.VentaResponse{
		ID:               v.ID.String(),
		NumeroVenta:      v.NumeroVenta,
		Fecha:            v.Fecha.Format(time.RFC3339),
		ClienteID:        clienteID,
		ClienteNombre:    v.ClienteNombre,
		DocumentoCliente: v.DocumentoCliente,
		TipoDocumento:    v.TipoDocumento,
		Vendedor:         v.Vendedor,
		SucursalID:       v.SucursalID.String(),
		SucursalNombre:   v.SucursalNombre,
		Items:            items,
		Subtotal:         v.Subtotal,
		DescuentoItems:   v.DescuentoItems,
		DescuentoTotal:   v.DescuentoTotal,
		Total:            v.Total,
		MetodoPago:       v.MetodoPago,
		NumeroOperacion:  v.NumeroOperacion,
		Estado:           v.Estado,
		CreatedAt:        v.CreatedAt.Format(time.RFC3339),
	}
}
