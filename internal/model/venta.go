package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estado values for Venta.
const (
	VentaCompletada = "Completada"
	VentaCancelada  = "Cancelada"
	VentaPendiente  = "Pendiente"
)

// Venta is the sale header. Monetary fields are computed once at creation:
// Total = Subtotal - DescuentoItems - DescuentoTotal. They are never
// recalculated afterwards; the only allowed transition is estado → Cancelada.
type Venta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ventas_usuario_numero,priority:1"`
	NumeroVenta string    `gorm:"not null;uniqueIndex:idx_ventas_usuario_numero,priority:2"`
	Fecha       time.Time `gorm:"not null"`
	ClienteID   *uuid.UUID `gorm:"type:uuid;index"`
	// ClienteNombre / DocumentoCliente are denormalized so the receipt stays
	// readable even if the customer record is later edited or removed.
	ClienteNombre    string `gorm:"not null"`
	DocumentoCliente string `gorm:"not null"`
	TipoDocumento    string `gorm:"type:varchar(20);not null;default:'boleta'"`
	Vendedor         string `gorm:"not null"`
	SucursalID       uuid.UUID `gorm:"type:uuid;not null;index"`
	SucursalNombre   string    `gorm:"not null"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DescuentoItems   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DescuentoTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DescuentoTotalTipo   string  `gorm:"type:varchar(20);not null;default:'porcentaje'"`
	DescuentoTotalMotivo *string
	Total           decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	MetodoPago      string          `gorm:"type:varchar(20);not null;default:'Efectivo'"`
	NumeroOperacion *string
	Estado          string `gorm:"type:varchar(20);not null;default:'Completada'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Cliente  *Cliente    `gorm:"foreignKey:ClienteID"`
	Sucursal *Sucursal   `gorm:"foreignKey:SucursalID"`
	Items    []VentaItem `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem snapshots price and discount at sale time: PrecioOriginal is the
// product's undiscounted list price, PrecioUnitario the effective price paid
// per unit. Later price changes on the product never touch these rows.
type VentaItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Sku        string    `gorm:"not null"`
	Nombre     string    `gorm:"not null"`
	Cantidad   int       `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioOriginal decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Descuento      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DescuentoTipo  string          `gorm:"type:varchar(20);not null;default:'porcentaje'"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaItem) TableName() string { return "venta_items" }
