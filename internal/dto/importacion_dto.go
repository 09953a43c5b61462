package dto

import "github.com/shopspring/decimal"

// FilaImportacion is one row of a bulk inventory import. Field names mirror
// the spreadsheet columns the client parses; Categoria is free text resolved
// (or created) during the import.
type FilaImportacion struct {
	Sku          string          `json:"sku"`
	Nombre       string          `json:"nombre"`
	Categoria    string          `json:"categoria"`
	Subcategoria *string         `json:"subcategoria"`
	Marca        *string         `json:"marca"`
	Color        *string         `json:"color"`
	Talla        *string         `json:"talla"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Stock        int             `json:"stock"`
	StockMinimo  int             `json:"stock_minimo"`
	SucursalID   string          `json:"sucursal_id"`
	ProveedorID  *string         `json:"proveedor_id"`
	Ubicacion    *string         `json:"ubicacion"`
	Notas        *string         `json:"notas"`
}

type ImportarLoteRequest struct {
	Filas []FilaImportacion `json:"filas" validate:"required,min=1"`
}

// ErrorImportacion points at one violated rule. Fila is 1-indexed and offset
// by the header row (first data row = 2); batch-level errors use Fila 0.
type ErrorImportacion struct {
	Fila    int    `json:"fila"`
	Campo   string `json:"campo"`
	Mensaje string `json:"mensaje"`
}

// ImportacionResponse never reports partial success: len(Errores) > 0
// implies Importados == 0 and CategoriasCreadas empty.
type ImportacionResponse struct {
	Exito             bool               `json:"exito"`
	Importados        int                `json:"importados"`
	Errores           []ErrorImportacion `json:"errores"`
	CategoriasCreadas []string           `json:"categorias_creadas"`
}
