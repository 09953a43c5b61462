package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria classifies products. Nombre is unique per tenant; lookups are
// case-insensitive so bulk imports reuse "calzado" for "Calzado".
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categorias_usuario_nombre,priority:1"`
	Nombre      string    `gorm:"not null;uniqueIndex:idx_categorias_usuario_nombre,priority:2"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Categoria) TableName() string { return "categorias" }
