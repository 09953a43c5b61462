package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	// Sku is optional — when omitted one is generated (Q + DDMMHHmm).
	Sku          string           `json:"sku"`
	Nombre       string           `json:"nombre" validate:"required,min=2,max=120"`
	CategoriaID  *string          `json:"categoria_id"  validate:"omitempty,uuid"`
	Subcategoria *string          `json:"subcategoria"`
	Marca        *string          `json:"marca"`
	Color        *string          `json:"color"`
	Talla        *string          `json:"talla"`
	Genero       *string          `json:"genero"`
	Temporada    *string          `json:"temporada"`
	Material     *string          `json:"material"`
	ProveedorID  *string          `json:"proveedor_id"  validate:"omitempty,uuid"`
	PrecioCompra decimal.Decimal  `json:"precio_compra" validate:"min=0"`
	PrecioVenta  decimal.Decimal  `json:"precio_venta"  validate:"required"`
	Stock        int              `json:"stock"         validate:"min=0"`
	StockMinimo  int              `json:"stock_minimo"  validate:"min=0"`
	SucursalID   *string          `json:"sucursal_id"   validate:"omitempty,uuid"`
	Ubicacion    *string          `json:"ubicacion"`
	FechaIngreso *string          `json:"fecha_ingreso" validate:"omitempty,datetime=2006-01-02"`
	Notas        *string          `json:"notas"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	SucursalID string `form:"sucursal_id"` // uuid or "all"
	Buscar     string `form:"buscar"`      // nombre / sku / marca / color
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID             string          `json:"id"`
	Sku            string          `json:"sku"`
	Nombre         string          `json:"nombre"`
	CategoriaID    *string         `json:"categoria_id"`
	CategoriaNombre string         `json:"categoria_nombre,omitempty"`
	Marca          *string         `json:"marca"`
	Color          *string         `json:"color"`
	Talla          *string         `json:"talla"`
	ProveedorID    *string         `json:"proveedor_id"`
	PrecioCompra   decimal.Decimal `json:"precio_compra"`
	PrecioVenta    decimal.Decimal `json:"precio_venta"`
	Stock          int             `json:"stock"`
	StockMinimo    int             `json:"stock_minimo"`
	SucursalID     *string         `json:"sucursal_id"`
	Estado         string          `json:"estado"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ConsultaPrecioResponse is returned by the price check endpoint and is the
// payload cached in Redis per tenant+sku.
type ConsultaPrecioResponse struct {
	Sku         string          `json:"sku"`
	Nombre      string          `json:"nombre"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Stock       int             `json:"stock"`
	Estado      string          `json:"estado"`
}
