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

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID := middleware.GetUsuarioID(c)

	resp, err := h.svc.Crear(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	usuarioID := middleware.GetUsuarioID(c)

	resp, err := h.svc.Listar(c.Request.Context(), usuarioID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	usuarioID := middleware.GetUsuarioID(c)

	resp, svcErr := h.svc.ObtenerPorID(c.Request.Context(), usuarioID, id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	usuarioID := middleware.GetUsuarioID(c)

	if svcErr := h.svc.Eliminar(c.Request.Context(), usuarioID, id); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

// ConsultaPrecio GET /v1/productos/precio/:sku
// Consulta rapida de precio por SKU, servida desde Redis cuando esta fresca.
// Sin efectos secundarios sobre el inventario.
func (h *ProductosHandler) ConsultaPrecio(c *gin.Context) {
	sku := c.Param("sku")
	usuarioID := middleware.GetUsuarioID(c)

	resp, err := h.svc.ConsultaPrecio(c.Request.Context(), usuarioID, sku)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
