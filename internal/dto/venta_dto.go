package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID    string           `json:"producto_id"    validate:"required,uuid"`
	Cantidad      int              `json:"cantidad"       validate:"required,min=1"`
	Descuento     *decimal.Decimal `json:"descuento"`
	DescuentoTipo string           `json:"descuento_tipo" validate:"omitempty,oneof=porcentaje monto"`
	// PrecioUnitario overrides the product's list price for this line.
	// The product's precio_venta is still snapshotted as precio_original.
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
}

type RegistrarVentaRequest struct {
	SucursalID string  `json:"sucursal_id" validate:"required,uuid"`
	ClienteID  *string `json:"cliente_id"  validate:"omitempty,uuid"`
	// ClienteNombre / DocumentoCliente apply to anonymous sales only —
	// ignored when cliente_id resolves to a registered customer.
	ClienteNombre    *string            `json:"cliente_nombre"`
	DocumentoCliente *string            `json:"documento_cliente"`
	TipoDocumento    string             `json:"tipo_documento" validate:"omitempty,oneof=boleta factura"`
	Vendedor         string             `json:"vendedor"`
	Items            []ItemVentaRequest `json:"items" validate:"required,min=1,dive"`
	DescuentoTotal     *decimal.Decimal `json:"descuento_total"`
	DescuentoTotalTipo string           `json:"descuento_total_tipo" validate:"omitempty,oneof=porcentaje monto"`
	DescuentoTotalMotivo *string        `json:"descuento_total_motivo"`
	MetodoPago           string         `json:"metodo_pago" validate:"omitempty,oneof=Efectivo Tarjeta Yape Plin Transferencia"`
	NumeroOperacion      *string        `json:"numero_operacion"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type VentaFilter struct {
	SucursalID string `form:"sucursal_id"` // uuid or "all"
	Estado     string `form:"estado"`      // Completada | Cancelada | Pendiente | all
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Sku            string          `json:"sku"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	PrecioOriginal decimal.Decimal `json:"precio_original"`
	Descuento      decimal.Decimal `json:"descuento"`
	DescuentoTipo  string          `json:"descuento_tipo"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID               string              `json:"id"`
	NumeroVenta      string              `json:"numero_venta"`
	Fecha            string              `json:"fecha"`
	ClienteID        *string             `json:"cliente_id"`
	ClienteNombre    string              `json:"cliente_nombre"`
	DocumentoCliente string              `json:"documento_cliente"`
	TipoDocumento    string              `json:"tipo_documento"`
	Vendedor         string              `json:"vendedor"`
	SucursalID       string              `json:"sucursal_id"`
	SucursalNombre   string              `json:"sucursal_nombre"`
	Items            []ItemVentaResponse `json:"items"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	DescuentoItems   decimal.Decimal     `json:"descuento_items"`
	DescuentoTotal   decimal.Decimal     `json:"descuento_total"`
	Total            decimal.Decimal     `json:"total"`
	MetodoPago       string              `json:"metodo_pago"`
	NumeroOperacion  *string             `json:"numero_operacion"`
	Estado           string              `json:"estado"`
	CreatedAt        string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
