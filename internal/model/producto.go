package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estado values for Producto. Disponible/Agotado are recomputed from stock;
// Descontinuado is set manually and never overwritten by stock arithmetic.
const (
	EstadoDisponible    = "Disponible"
	EstadoAgotado       = "Agotado"
	EstadoDescontinuado = "Descontinuado"
)

// Producto is one inventory item. Sku is unique per tenant (usuario_id), not
// globally — two businesses can both use "SKU001".
type Producto struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_productos_usuario_sku,priority:1"`
	Sku          string     `gorm:"not null;uniqueIndex:idx_productos_usuario_sku,priority:2"`
	Nombre       string     `gorm:"index;not null"`
	CategoriaID  *uuid.UUID `gorm:"type:uuid;index"`
	Subcategoria *string
	Marca        *string
	Color        *string
	Talla        *string
	Genero       *string
	Temporada    *string
	Material     *string
	ProveedorID  *uuid.UUID      `gorm:"type:uuid;index"`
	PrecioCompra decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Stock        int             `gorm:"not null;default:0"`
	StockMinimo  int             `gorm:"not null;default:0"`
	SucursalID   *uuid.UUID      `gorm:"type:uuid;index"`
	Ubicacion    *string
	FechaIngreso *time.Time `gorm:"type:date"`
	Estado       string     `gorm:"type:varchar(20);not null;default:'Disponible'"`
	Notas        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
	Sucursal  *Sucursal  `gorm:"foreignKey:SucursalID"`
}

func (Producto) TableName() string { return "productos" }

// EstadoPorStock returns the estado a product should carry after a stock
// mutation. Descontinuado is terminal and is returned unchanged.
func EstadoPorStock(actual string, stock int) string {
	if actual == EstadoDescontinuado {
		return EstadoDescontinuado
	}
	if stock == 0 {
		return EstadoAgotado
	}
	return EstadoDisponible
}
