package dto

type CrearClienteRequest struct {
	Nombre          string  `json:"nombre"           validate:"required,min=2,max=120"`
	TipoDocumento   string  `json:"tipo_documento"   validate:"required,oneof=DNI RUC Pasaporte CE"`
	NumeroDocumento string  `json:"numero_documento" validate:"required,min=3,max=30"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Telefono        *string `json:"telefono"`
	Direccion       *string `json:"direccion"`
}

type ClienteResponse struct {
	ID              string  `json:"id"`
	Nombre          string  `json:"nombre"`
	TipoDocumento   string  `json:"tipo_documento"`
	NumeroDocumento string  `json:"numero_documento"`
	Email           *string `json:"email"`
	Telefono        *string `json:"telefono"`
	TotalCompras    int     `json:"total_compras"`
	UltimaCompra    *string `json:"ultima_compra"`
}
