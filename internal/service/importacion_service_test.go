package service

import (
	"context"
	"errors"
	"testing"

	"retailpos/internal/dto"
	"retailpos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type importFixture struct {
	svc        ImportacionService
	productos  *stubProductoRepo
	categorias *stubCategoriaRepo
	usuarioID  uuid.UUID
	sucursalID uuid.UUID
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()
	f := &importFixture{
		productos:  newStubProductoRepo(),
		categorias: newStubCategoriaRepo(),
		usuarioID:  uuid.New(),
		sucursalID: uuid.New(),
	}
	categoriaSvc := NewCategoriaService(f.categorias)
	codigoSvc := NewCodigoServiceConReloj(f.productos, newStubVentaRepo(), relojFijo)
	f.svc = NewImportacionService(f.productos, categoriaSvc, codigoSvc)
	return f
}

func (f *importFixture) fila(sku, nombre, categoria string, stock int) dto.FilaImportacion {
	return dto.FilaImportacion{
		Sku:          sku,
		Nombre:       nombre,
		Categoria:    categoria,
		PrecioCompra: dec("10"),
		PrecioVenta:  dec("25.50"),
		Stock:        stock,
		StockMinimo:  1,
		SucursalID:   f.sucursalID.String(),
	}
}

func TestImportarLote_Exito(t *testing.T) {
	f := newImportFixture(t)

	resp, err := f.svc.ImportarLote(context.Background(), f.usuarioID, []dto.FilaImportacion{
		f.fila("SKU-A", "Zapatilla urbana", "Calzado", 5),
		f.fila("SKU-B", "Botin de cuero", "calzado", 3),
	})
	require.NoError(t, err)

	assert.True(t, resp.Exito)
	assert.Equal(t, 2, resp.Importados)
	assert.Empty(t, resp.Errores)
	// "Calzado" y "calzado" son la misma categoria; se crea una sola vez con
	// la grafia de la primera aparicion.
	assert.Equal(t, []string{"Calzado"}, resp.CategoriasCreadas)
	assert.Len(t, f.categorias.categorias, 1)
	assert.Len(t, f.productos.productos, 2)

	a, err := f.productos.FindBySku(context.Background(), f.usuarioID, "SKU-A")
	require.NoError(t, err)
	b, err := f.productos.FindBySku(context.Background(), f.usuarioID, "SKU-B")
	require.NoError(t, err)
	require.NotNil(t, a.CategoriaID)
	require.NotNil(t, b.CategoriaID)
	assert.Equal(t, *a.CategoriaID, *b.CategoriaID)
	assert.Equal(t, model.EstadoDisponible, a.Estado)
}

func TestImportarLote_StockCeroEntraAgotado(t *testing.T) {
	f := newImportFixture(t)

	resp, err := f.svc.ImportarLote(context.Background(), f.usuarioID, []dto.FilaImportacion{
		f.fila("SKU-A", "Zapatilla urbana", "Calzado", 0),
	})
	require.NoError(t, err)
	require.True(t, resp.Exito)

	p, err := f.productos.FindBySku(context.Background(), f.usuarioID, "SKU-A")
	require.NoError(t, err)
	assert.Equal(t, model.EstadoAgotado, p.Estado)
}

func TestImportarLote_ValidacionRechazaTodo(t *testing.T) {
	f := newImportFixture(t)

	resp, err := f.svc.ImportarLote(context.Background(), f.usuarioID, []dto.FilaImportacion{
		f.fila("SKU-A", "Zapatilla urbana", "Calzado", 5),
		f.fila("SKU-B", "Botin de cuero", "Calzado", -1),
	})
	require.NoError(t, err)

	assert.False(t, resp.Exito)
	assert.Equal(t, 0, resp.Importados)
	require.Len(t, resp.Errores, 1)
	// indice 1 → fila 3 (1-indexado mas la fila de cabecera)
	assert.Equal(t, 3, resp.Errores[0].Fila)
	assert.Equal(t, "stock", resp.Errores[0].Campo)

	// Nada persiste: ni productos ni categorias.
	assert.Empty(t, f.productos.productos)
	assert.Empty(t, f.categorias.categorias)
	assert.Empty(t, resp.CategoriasCreadas)
}

func TestImportarLote_AcumulaTodosLosErrores(t *testing.T) {
	f := newImportFixture(t)

	mala := f.fila("", "", "Calzado", -2)
	mala.PrecioVenta = dec("0")
	mala.SucursalID = "no-es-uuid"

	resp, err := f.svc.ImportarLote(context.Background(), f.usuarioID, []dto.FilaImportacion{mala})
	require.NoError(t, err)

	assert.False(t, resp.Exito)
	campos := make(map[string]bool)
	for _, e := range resp.Errores {
		assert.Equal(t, 2, e.Fila)
		campos[e.Campo] = true
	}
	assert.True(t, campos["nombre"])
	assert.True(t, campos["precio_venta"])
	assert.True(t, campos["stock"])
	assert.True(t, campos["sucursal"])
}

func TestImportarLote_SkuDuplicadoEnLote(t *testing.T) {
	f := newImportFixture(t)

	resp, err := f.svc.ImportarLote(context.Background(), f.usuarioID, []dto.FilaImportacion{
		f.fila("ABC-1", "Primero", "Calzado", 5),
		f.fila("SKU-B", "Intermedio", "Calzado", 5),
		f.fila("abc-1", "Repetido", "Calzado", 5),
	})
	require.NoError(t, err)

	assert.False(t, resp.Exito)
	require.Len(t, resp.Errores, 1)
	// El error apunta a la fila repetida y nombra a la primera.
	assert.Equal(t, 4, resp.Errores[0].Fila)
	assert.Equal(t, "sku", resp.Errores[0].Campo)
	assert.Contains(t, resp.Errores[0].Mensaje, "fila 2")
}

func TestImportarLote_SkuYaEnTienda(t *testing.T) {
	f := newImportFixture(t)
	f.productos.agregar(model.Producto{UsuarioID: f.usuarioID, Sku: "SKU-A", Nombre: "Existente", Stock: 1})

	resp, err := f.svc.ImportarLote(context.Background(), f.usuarioID, []dto.FilaImportacion{
		f.fila("sku-a", "Nuevo", "Calzado", 5),
	})
	require.NoError(t, err)

	assert.False(t, resp.Exito)
	require.Len(t, resp.Errores, 1)
	assert.Equal(t, 2, resp.Errores[0].Fila)
	assert.Contains(t, resp.Errores[0].Mensaje, "ya está en uso")
}

func TestImportarLote_SkuAutogenerado(t *testing.T) {
	f := newImportFixture(t)

	resp, err := f.svc.ImportarLote(context.Background(), f.usuarioID, []dto.FilaImportacion{
		f.fila("", "Sin codigo uno", "Calzado", 5),
		f.fila("", "Sin codigo dos", "Calzado", 5),
	})
	require.NoError(t, err)
	require.True(t, resp.Exito)

	// Ambas filas caen en el mismo minuto del reloj fijo: la segunda debe
	// recibir el sufijo incremental, no colisionar dentro del lote.
	_, err = f.productos.FindBySku(context.Background(), f.usuarioID, "Q05031407")
	require.NoError(t, err)
	_, err = f.productos.FindBySku(context.Background(), f.usuarioID, "Q050314071")
	require.NoError(t, err)
}

func TestImportarLote_FalloDeLoteDuplicado(t *testing.T) {
	f := newImportFixture(t)
	f.productos.batchErr = errors.New(`ERROR: duplicate key value violates unique constraint "idx_productos_usuario_sku" (SQLSTATE 23505)`)

	resp, err := f.svc.ImportarLote(context.Background(), f.usuarioID, []dto.FilaImportacion{
		f.fila("SKU-A", "Zapatilla urbana", "Calzado", 5),
	})
	require.NoError(t, err)

	assert.False(t, resp.Exito)
	assert.Equal(t, 0, resp.Importados)
	require.Len(t, resp.Errores, 1)
	assert.Equal(t, 0, resp.Errores[0].Fila)
	assert.Contains(t, resp.Errores[0].Mensaje, "duplicado")
	// Las categorias creadas en fase 2 sobreviven en la base, pero la
	// respuesta no las reporta porque el lote no se aplico.
	assert.Empty(t, resp.CategoriasCreadas)
	assert.Len(t, f.categorias.categorias, 1)
}

func TestImportarLote_FalloDeLoteReferencia(t *testing.T) {
	f := newImportFixture(t)
	f.productos.batchErr = errors.New(`ERROR: insert or update on table "productos" violates foreign key constraint (SQLSTATE 23503)`)

	resp, err := f.svc.ImportarLote(context.Background(), f.usuarioID, []dto.FilaImportacion{
		f.fila("SKU-A", "Zapatilla urbana", "Calzado", 5),
	})
	require.NoError(t, err)

	assert.False(t, resp.Exito)
	require.Len(t, resp.Errores, 1)
	assert.Contains(t, resp.Errores[0].Mensaje, "Referencia inválida")
}

func TestClasificarErrorLote_Desconocido(t *testing.T) {
	e := clasificarErrorLote(errors.New("connection reset by peer"))
	assert.Equal(t, 0, e.Fila)
	assert.Contains(t, e.Mensaje, "desconocido")
}

func TestImportarLote_CategoriaExistenteNoSeReporta(t *testing.T) {
	f := newImportFixture(t)
	require.NoError(t, f.categorias.Crear(context.Background(), &model.Categoria{
		UsuarioID: f.usuarioID, Nombre: "Calzado", Activo: true,
	}))

	resp, err := f.svc.ImportarLote(context.Background(), f.usuarioID, []dto.FilaImportacion{
		f.fila("SKU-A", "Zapatilla urbana", "calzado", 5),
	})
	require.NoError(t, err)

	assert.True(t, resp.Exito)
	assert.Empty(t, resp.CategoriasCreadas)
	assert.Len(t, f.categorias.categorias, 1)
}
