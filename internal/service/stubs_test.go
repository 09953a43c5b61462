package service

// In-memory repository stubs shared by the service tests. All of them return
// gorm.ErrRecordNotFound for missing rows so the services' errors.Is checks
// behave exactly as against a real database. Tx parameters are ignored: the
// services run their transactions through runTx, which passes a nil tx when
// the repository reports no DB.

import (
	"context"
	"strings"
	"time"

	"retailpos/internal/dto"
	"retailpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── ProductoRepository stub ──────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	// batchErr, when set, fails CreateBatchTx with that error.
	batchErr error
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) agregar(p model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Estado == "" {
		p.Estado = model.EstadoPorStock("", p.Stock)
	}
	r.productos[p.ID] = &p
	return r.productos[p.ID]
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) CreateBatchTx(_ *gorm.DB, productos []model.Producto) error {
	if r.batchErr != nil {
		return r.batchErr
	}
	for i := range productos {
		if existe, _ := r.ExistsSku(context.Background(), productos[i].UsuarioID, productos[i].Sku); existe {
			return gorm.ErrDuplicatedKey
		}
	}
	for i := range productos {
		r.agregar(productos[i])
	}
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, usuarioID, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok || p.UsuarioID != usuarioID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, usuarioID, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), usuarioID, id)
}

func (r *stubProductoRepo) FindBySku(_ context.Context, usuarioID uuid.UUID, sku string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.UsuarioID == usuarioID && strings.EqualFold(p.Sku, sku) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) ExistsSku(_ context.Context, usuarioID uuid.UUID, sku string) (bool, error) {
	for _, p := range r.productos {
		if p.UsuarioID == usuarioID && strings.EqualFold(p.Sku, sku) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductoRepo) List(_ context.Context, usuarioID uuid.UUID, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var list []model.Producto
	for _, p := range r.productos {
		if p.UsuarioID == usuarioID {
			list = append(list, *p)
		}
	}
	return list, int64(len(list)), nil
}

func (r *stubProductoRepo) ListStockBajo(_ context.Context, usuarioID uuid.UUID, sucursalID *uuid.UUID) ([]model.Producto, error) {
	var list []model.Producto
	for _, p := range r.productos {
		if p.UsuarioID != usuarioID || p.Stock > p.StockMinimo {
			continue
		}
		if sucursalID != nil && (p.SucursalID == nil || *p.SucursalID != *sucursalID) {
			continue
		}
		list = append(list, *p)
	}
	return list, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, usuarioID, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok || p.UsuarioID != usuarioID {
		return gorm.ErrRecordNotFound
	}
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, usuarioID, id uuid.UUID, cantidad int) (int64, error) {
	p, ok := r.productos[id]
	if !ok || p.UsuarioID != usuarioID || p.Stock < cantidad {
		return 0, nil
	}
	p.Stock -= cantidad
	return 1, nil
}

func (r *stubProductoRepo) ReponerStockTx(_ *gorm.DB, usuarioID, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok || p.UsuarioID != usuarioID {
		return gorm.ErrRecordNotFound
	}
	p.Stock += cantidad
	return nil
}

func (r *stubProductoRepo) UpdateEstadoTx(_ *gorm.DB, usuarioID, id uuid.UUID, estado string) error {
	p, ok := r.productos[id]
	if !ok || p.UsuarioID != usuarioID {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

// ── VentaRepository stub ─────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas  map[uuid.UUID]*model.Venta
	numeros map[string]bool
	// createErr, when set, fails Create with that error.
	createErr error
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{
		ventas:  make(map[uuid.UUID]*model.Venta),
		numeros: make(map[string]bool),
	}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if r.createErr != nil {
		return r.createErr
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Items {
		if v.Items[i].ID == uuid.Nil {
			v.Items[i].ID = uuid.New()
		}
		v.Items[i].VentaID = v.ID
	}
	r.ventas[v.ID] = v
	r.numeros[v.NumeroVenta] = true
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, usuarioID, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok || v.UsuarioID != usuarioID {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, usuarioID uuid.UUID, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	var list []model.Venta
	for _, v := range r.ventas {
		if v.UsuarioID == usuarioID {
			list = append(list, *v)
		}
	}
	return list, int64(len(list)), nil
}

func (r *stubVentaRepo) Count(_ context.Context, usuarioID uuid.UUID) (int64, error) {
	var n int64
	for _, v := range r.ventas {
		if v.UsuarioID == usuarioID {
			n++
		}
	}
	return n, nil
}

func (r *stubVentaRepo) ExistsNumero(_ context.Context, _ uuid.UUID, numero string) (bool, error) {
	return r.numeros[numero], nil
}

func (r *stubVentaRepo) MarcarCanceladaTx(_ *gorm.DB, usuarioID, id uuid.UUID) (int64, error) {
	v, ok := r.ventas[id]
	if !ok || v.UsuarioID != usuarioID || v.Estado == model.VentaCancelada {
		return 0, nil
	}
	v.Estado = model.VentaCancelada
	return 1, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

// ── ClienteRepository stub ───────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
	// findErr, when set, fails FindByID with that error.
	findErr error
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, usuarioID, id uuid.UUID) (*model.Cliente, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	c, ok := r.clientes[id]
	if !ok || c.UsuarioID != usuarioID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByDocumento(_ context.Context, usuarioID uuid.UUID, numeroDocumento string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.UsuarioID == usuarioID && c.NumeroDocumento == numeroDocumento {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context, usuarioID uuid.UUID, _ string) ([]model.Cliente, error) {
	var list []model.Cliente
	for _, c := range r.clientes {
		if c.UsuarioID == usuarioID {
			list = append(list, *c)
		}
	}
	return list, nil
}

func (r *stubClienteRepo) RegistrarCompraTx(_ *gorm.DB, usuarioID, id uuid.UUID, fecha time.Time) error {
	c, ok := r.clientes[id]
	if !ok || c.UsuarioID != usuarioID {
		return gorm.ErrRecordNotFound
	}
	c.TotalCompras++
	f := fecha
	c.UltimaCompra = &f
	return nil
}

// ── SucursalRepository stub ──────────────────────────────────────────────────

type stubSucursalRepo struct {
	sucursales map[uuid.UUID]*model.Sucursal
}

func newStubSucursalRepo() *stubSucursalRepo {
	return &stubSucursalRepo{sucursales: make(map[uuid.UUID]*model.Sucursal)}
}

func (r *stubSucursalRepo) Create(_ context.Context, s *model.Sucursal) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sucursales[s.ID] = s
	return nil
}

func (r *stubSucursalRepo) FindByID(_ context.Context, usuarioID, id uuid.UUID) (*model.Sucursal, error) {
	s, ok := r.sucursales[id]
	if !ok || s.UsuarioID != usuarioID {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSucursalRepo) List(_ context.Context, usuarioID uuid.UUID) ([]model.Sucursal, error) {
	var list []model.Sucursal
	for _, s := range r.sucursales {
		if s.UsuarioID == usuarioID {
			list = append(list, *s)
		}
	}
	return list, nil
}

// ── CategoriaRepository stub ─────────────────────────────────────────────────

type stubCategoriaRepo struct {
	categorias map[uuid.UUID]*model.Categoria
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{categorias: make(map[uuid.UUID]*model.Categoria)}
}

func (r *stubCategoriaRepo) Crear(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) Listar(_ context.Context, usuarioID uuid.UUID) ([]model.Categoria, error) {
	var list []model.Categoria
	for _, c := range r.categorias {
		if c.UsuarioID == usuarioID {
			list = append(list, *c)
		}
	}
	return list, nil
}

func (r *stubCategoriaRepo) ObtenerPorID(_ context.Context, usuarioID, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok || c.UsuarioID != usuarioID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoriaRepo) ObtenerPorNombre(_ context.Context, usuarioID uuid.UUID, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.UsuarioID == usuarioID && strings.EqualFold(c.Nombre, nombre) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
