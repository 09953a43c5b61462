package service

import (
	"context"
	"testing"

	"retailpos/internal/apierror"
	"retailpos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservarStock_DescuentaYMantieneDisponible(t *testing.T) {
	usuarioID := uuid.New()
	repo := newStubProductoRepo()
	p := repo.agregar(model.Producto{UsuarioID: usuarioID, Sku: "SKU001", Nombre: "Polo", Stock: 10})
	svc := NewInventarioService(repo)

	err := svc.ReservarStockTx(context.Background(), nil, usuarioID, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, repo.productos[p.ID].Stock)
	assert.Equal(t, model.EstadoDisponible, repo.productos[p.ID].Estado)
}

func TestReservarStock_UltimaUnidadAgota(t *testing.T) {
	usuarioID := uuid.New()
	repo := newStubProductoRepo()
	p := repo.agregar(model.Producto{UsuarioID: usuarioID, Sku: "SKU001", Nombre: "Polo", Stock: 2})
	svc := NewInventarioService(repo)

	err := svc.ReservarStockTx(context.Background(), nil, usuarioID, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.productos[p.ID].Stock)
	assert.Equal(t, model.EstadoAgotado, repo.productos[p.ID].Estado)
}

func TestReservarStock_InsuficienteNoMuta(t *testing.T) {
	usuarioID := uuid.New()
	repo := newStubProductoRepo()
	p := repo.agregar(model.Producto{UsuarioID: usuarioID, Sku: "SKU001", Nombre: "Polo", Stock: 2})
	svc := NewInventarioService(repo)

	err := svc.ReservarStockTx(context.Background(), nil, usuarioID, p.ID, 5)
	require.Error(t, err)
	assert.Equal(t, apierror.KindInsufficientStock, apierror.KindOf(err))
	assert.ErrorContains(t, err, "Disponible: 2")
	assert.Equal(t, 2, repo.productos[p.ID].Stock)
}

func TestReservarStock_ProductoInexistente(t *testing.T) {
	svc := NewInventarioService(newStubProductoRepo())

	err := svc.ReservarStockTx(context.Background(), nil, uuid.New(), uuid.New(), 1)
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestLiberarStock_ReponeYRecalculaEstado(t *testing.T) {
	usuarioID := uuid.New()
	repo := newStubProductoRepo()
	p := repo.agregar(model.Producto{UsuarioID: usuarioID, Sku: "SKU001", Nombre: "Polo", Stock: 0, Estado: model.EstadoAgotado})
	svc := NewInventarioService(repo)

	err := svc.LiberarStockTx(context.Background(), nil, usuarioID, p.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, repo.productos[p.ID].Stock)
	assert.Equal(t, model.EstadoDisponible, repo.productos[p.ID].Estado)
}

func TestLiberarStock_DescontinuadoEsTerminal(t *testing.T) {
	usuarioID := uuid.New()
	repo := newStubProductoRepo()
	p := repo.agregar(model.Producto{UsuarioID: usuarioID, Sku: "SKU001", Nombre: "Polo", Stock: 0, Estado: model.EstadoDescontinuado})
	svc := NewInventarioService(repo)

	err := svc.LiberarStockTx(context.Background(), nil, usuarioID, p.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, repo.productos[p.ID].Stock)
	assert.Equal(t, model.EstadoDescontinuado, repo.productos[p.ID].Estado)
}

func TestAlertasStockBajo(t *testing.T) {
	usuarioID := uuid.New()
	repo := newStubProductoRepo()
	repo.agregar(model.Producto{UsuarioID: usuarioID, Sku: "BAJO", Nombre: "Casi agotado", Stock: 1, StockMinimo: 5})
	repo.agregar(model.Producto{UsuarioID: usuarioID, Sku: "OK", Nombre: "Sano", Stock: 50, StockMinimo: 5})
	svc := NewInventarioService(repo)

	alertas, err := svc.AlertasStockBajo(context.Background(), usuarioID, nil)
	require.NoError(t, err)
	require.Len(t, alertas, 1)
	assert.Equal(t, "BAJO", alertas[0].Sku)
}
