package model

import (
	"time"

	"github.com/google/uuid"
)

// Sucursal is a branch of the business. Every sale is registered against
// exactly one sucursal; products may optionally belong to one.
type Sucursal struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre    string    `gorm:"not null"`
	Direccion *string
	Telefono  *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Sucursal) TableName() string { return "sucursales" }
