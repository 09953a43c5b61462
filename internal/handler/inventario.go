package handler

import (
	"net/http"

	"retailpos/internal/apierror"
	"retailpos/internal/dto"
	"retailpos/internal/middleware"
	"retailpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventarioHandler struct {
	importacion service.ImportacionService
	inventario  service.InventarioService
}

func NewInventarioHandler(importacion service.ImportacionService, inventario service.InventarioService) *InventarioHandler {
	return &InventarioHandler{importacion: importacion, inventario: inventario}
}

// ImportarLote POST /v1/inventario/importar
// Procesa un lote de filas todo-o-nada: cualquier error de validacion
// rechaza el lote completo con el detalle por fila.
func (h *InventarioHandler) ImportarLote(c *gin.Context) {
	var req dto.ImportarLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID := middleware.GetUsuarioID(c)

	resp, err := h.importacion.ImportarLote(c.Request.Context(), usuarioID, req.Filas)
	if err != nil {
		respondError(c, err)
		return
	}
	// Validation failures are data, not transport errors: still 200 with
	// exito=false and the per-row detail.
	c.JSON(http.StatusOK, resp)
}

// AlertasStockBajo GET /v1/inventario/alertas
func (h *InventarioHandler) AlertasStockBajo(c *gin.Context) {
	usuarioID := middleware.GetUsuarioID(c)

	var sucursalID *uuid.UUID
	if raw := c.Query("sucursal_id"); raw != "" && raw != "all" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("sucursal_id invalido"))
			return
		}
		sucursalID = &id
	}

	resp, err := h.inventario.AlertasStockBajo(c.Request.Context(), usuarioID, sucursalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener alertas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
