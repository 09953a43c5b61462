package dto

type CrearSucursalRequest struct {
	Nombre    string  `json:"nombre" validate:"required,min=2,max=120"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
}

type SucursalResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
	Activo    bool    `json:"activo"`
}

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2,max=80"`
	Descripcion *string `json:"descripcion"`
}

type CategoriaResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Activo      bool    `json:"activo"`
}
