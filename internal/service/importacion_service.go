package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"retailpos/internal/dto"
	"retailpos/internal/model"
	"retailpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ImportacionService runs the bulk inventory import in four phases and never
// applies data partially:
//
//  1. Structural validation of every row (all errors collected, then abort).
//  2. Category resolution — each distinct name resolved exactly once through
//     find-or-create. Categories are created OUTSIDE the batch transaction;
//     if the batch later fails they remain, but categorias_creadas is
//     reported empty so the caller never acts on them.
//  3. Row materialization — resolved category ids applied, missing SKUs
//     generated and registered against the in-batch duplicate set.
//  4. One transaction inserting every row; any failure rolls back all of
//     them and is classified as duplicate / invalid reference / unknown.
type ImportacionService interface {
	ImportarLote(ctx context.Context, usuarioID uuid.UUID, filas []dto.FilaImportacion) (*dto.ImportacionResponse, error)
}

type importacionService struct {
	productos  repository.ProductoRepository
	categorias CategoriaService
	codigos    CodigoService
	ahora      func() time.Time
}

func NewImportacionService(productos repository.ProductoRepository, categorias CategoriaService, codigos CodigoService) ImportacionService {
	return &importacionService{
		productos:  productos,
		categorias: categorias,
		codigos:    codigos,
		ahora:      time.Now,
	}
}

// numeroFila converts a 0-based slice index to the row number the client
// shows: 1-indexed plus the header row.
func numeroFila(i int) int { return i + 2 }

func (s *importacionService) ImportarLote(ctx context.Context, usuarioID uuid.UUID, filas []dto.FilaImportacion) (*dto.ImportacionResponse, error) {
	// ── Fase 1: structural validation ────────────────────────────────────
	var errores []dto.ErrorImportacion
	skusLote := make(map[string]int) // lowercased sku → first claiming row

	for i, fila := range filas {
		n := numeroFila(i)
		if strings.TrimSpace(fila.Nombre) == "" {
			errores = append(errores, dto.ErrorImportacion{Fila: n, Campo: "nombre", Mensaje: "El nombre es obligatorio"})
		}
		if !fila.PrecioVenta.IsPositive() {
			errores = append(errores, dto.ErrorImportacion{Fila: n, Campo: "precio_venta", Mensaje: "El precio de venta debe ser mayor a 0"})
		}
		if fila.PrecioCompra.IsNegative() {
			errores = append(errores, dto.ErrorImportacion{Fila: n, Campo: "precio_compra", Mensaje: "El precio de compra no puede ser negativo"})
		}
		if fila.Stock < 0 {
			errores = append(errores, dto.ErrorImportacion{Fila: n, Campo: "stock", Mensaje: "El stock no puede ser negativo"})
		}
		if fila.StockMinimo < 0 {
			errores = append(errores, dto.ErrorImportacion{Fila: n, Campo: "stock_minimo", Mensaje: "El stock mínimo no puede ser negativo"})
		}
		if fila.SucursalID == "" {
			errores = append(errores, dto.ErrorImportacion{Fila: n, Campo: "sucursal", Mensaje: "La sucursal es obligatoria"})
		} else if _, err := uuid.Parse(fila.SucursalID); err != nil {
			errores = append(errores, dto.ErrorImportacion{Fila: n, Campo: "sucursal", Mensaje: "Sucursal inválida"})
		}

		if sku := strings.TrimSpace(fila.Sku); sku != "" {
			key := strings.ToLower(sku)
			if primera, dup := skusLote[key]; dup {
				errores = append(errores, dto.ErrorImportacion{
					Fila:    n,
					Campo:   "sku",
					Mensaje: "SKU duplicado en el lote (ya usado en la fila " + strconv.Itoa(primera) + ")",
				})
			} else {
				skusLote[key] = n
				existe, err := s.productos.ExistsSku(ctx, usuarioID, sku)
				if err != nil {
					return nil, err
				}
				if existe {
					errores = append(errores, dto.ErrorImportacion{Fila: n, Campo: "sku", Mensaje: "El SKU ya está en uso"})
				}
			}
		}
	}

	if len(errores) > 0 {
		log.Warn().
			Str("usuario_id", usuarioID.String()).
			Int("filas", len(filas)).
			Int("errores", len(errores)).
			Msg("importación rechazada en validación")
		return &dto.ImportacionResponse{Exito: false, Importados: 0, Errores: errores}, nil
	}

	// ── Fase 2: category resolution ──────────────────────────────────────
	// Distinct names, case-insensitive, first-seen casing wins.
	orden := make([]string, 0)
	vistos := make(map[string]bool)
	for _, fila := range filas {
		nombre := strings.TrimSpace(fila.Categoria)
		if nombre == "" {
			continue
		}
		key := strings.ToLower(nombre)
		if !vistos[key] {
			vistos[key] = true
			orden = append(orden, nombre)
		}
	}

	categoriaIDs := make(map[string]uuid.UUID, len(orden))
	var creadas []string
	for _, nombre := range orden {
		cat, creada, err := s.categorias.ResolverPorNombre(ctx, usuarioID, nombre)
		if err != nil {
			log.Error().Err(err).Str("categoria", nombre).Msg("importación: fallo resolviendo categoría")
			return &dto.ImportacionResponse{
				Exito:      false,
				Importados: 0,
				Errores: []dto.ErrorImportacion{{
					Fila:    0,
					Campo:   "categoria",
					Mensaje: "No se pudo resolver la categoría \"" + nombre + "\"",
				}},
			}, nil
		}
		categoriaIDs[strings.ToLower(nombre)] = cat.ID
		if creada {
			creadas = append(creadas, cat.Nombre)
		}
	}

	// ── Fase 3: row materialization ──────────────────────────────────────
	reservados := make(map[string]bool, len(skusLote))
	for k := range skusLote {
		reservados[k] = true
	}
	productos := make([]model.Producto, 0, len(filas))
	hoy := s.ahora()
	for _, fila := range filas {
		sku := strings.TrimSpace(fila.Sku)
		if sku == "" {
			generado, err := s.codigos.GenerarSku(ctx, usuarioID, reservados)
			if err != nil {
				return nil, err
			}
			sku = generado
			// Register immediately so a second generated SKU in the same
			// minute cannot collide within the batch.
			reservados[strings.ToLower(sku)] = true
		}

		p := model.Producto{
			UsuarioID:    usuarioID,
			Sku:          sku,
			Nombre:       strings.TrimSpace(fila.Nombre),
			Subcategoria: fila.Subcategoria,
			Marca:        fila.Marca,
			Color:        fila.Color,
			Talla:        fila.Talla,
			PrecioCompra: fila.PrecioCompra,
			PrecioVenta:  fila.PrecioVenta,
			Stock:        fila.Stock,
			StockMinimo:  fila.StockMinimo,
			Ubicacion:    fila.Ubicacion,
			Notas:        fila.Notas,
			FechaIngreso: &hoy,
			Estado:       model.EstadoPorStock("", fila.Stock),
		}
		if nombre := strings.TrimSpace(fila.Categoria); nombre != "" {
			id := categoriaIDs[strings.ToLower(nombre)]
			p.CategoriaID = &id
		}
		sucursalID, _ := uuid.Parse(fila.SucursalID)
		p.SucursalID = &sucursalID
		if fila.ProveedorID != nil {
			if provID, err := uuid.Parse(*fila.ProveedorID); err == nil {
				p.ProveedorID = &provID
			}
		}
		productos = append(productos, p)
	}

	// ── Fase 4: atomic persistence ───────────────────────────────────────
	txErr := runTx(ctx, s.productos.DB(), func(tx *gorm.DB) error {
		return s.productos.CreateBatchTx(tx, productos)
	})
	if txErr != nil {
		log.Error().Err(txErr).
			Str("usuario_id", usuarioID.String()).
			Int("filas", len(productos)).
			Msg("importación abortada en persistencia")
		return &dto.ImportacionResponse{
			Exito:      false,
			Importados: 0,
			Errores:    []dto.ErrorImportacion{clasificarErrorLote(txErr)},
			// Categories created in phase 2 are not rolled back, but nothing
			// was committed — report none.
			CategoriasCreadas: nil,
		}, nil
	}

	log.Info().
		Str("usuario_id", usuarioID.String()).
		Int("importados", len(productos)).
		Strs("categorias_creadas", creadas).
		Msg("importación completada")

	return &dto.ImportacionResponse{
		Exito:             true,
		Importados:        len(productos),
		Errores:           nil,
		CategoriasCreadas: creadas,
	}, nil
}

// clasificarErrorLote maps a batch insert failure to a single client-facing
// error. Matching on the pg error text covers both pgx sentinel strings and
// SQLSTATE codes surfaced by GORM.
func clasificarErrorLote(err error) dto.ErrorImportacion {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key") || strings.Contains(msg, "23505") || strings.Contains(msg, "duplicad"):
		return dto.ErrorImportacion{Fila: 0, Campo: "lote", Mensaje: "Registro duplicado: el lote contiene datos que ya existen"}
	case strings.Contains(msg, "foreign key") || strings.Contains(msg, "23503") || strings.Contains(msg, "violates"):
		return dto.ErrorImportacion{Fila: 0, Campo: "lote", Mensaje: "Referencia inválida: sucursal, categoría o proveedor inexistente"}
	default:
		return dto.ErrorImportacion{Fila: 0, Campo: "lote", Mensaje: "Error desconocido al guardar el lote"}
	}
}
