package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente aggregates purchase statistics as a side effect of completed sales:
// TotalCompras counts completed sales, UltimaCompra is the last sale time.
// Both are only ever mutated inside the sale transaction.
type Cliente struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_clientes_usuario_documento,priority:1"`
	Nombre          string    `gorm:"not null"`
	TipoDocumento   string    `gorm:"type:varchar(20);not null"`
	NumeroDocumento string    `gorm:"not null;uniqueIndex:idx_clientes_usuario_documento,priority:2"`
	Email           *string
	Telefono        *string
	Direccion       *string
	FechaRegistro   time.Time `gorm:"type:date;not null"`
	TotalCompras    int       `gorm:"not null;default:0"`
	UltimaCompra    *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Cliente) TableName() string { return "clientes" }
