package service

import (
	"retailpos/internal/apierror"

	"github.com/shopspring/decimal"
)

// TipoDescuento is a closed set: every discount is either a percentage of the
// undiscounted line subtotal or a fixed amount. Adding a variant means adding
// a case to both Aplicar methods — there is no string dispatch anywhere else.
type TipoDescuento string

const (
	DescuentoPorcentaje TipoDescuento = "porcentaje"
	DescuentoMonto      TipoDescuento = "monto"
)

var cien = decimal.NewFromInt(100)

// Descuento is a validated discount value object. The zero value is invalid;
// construct through NuevoDescuento.
type Descuento struct {
	Tipo  TipoDescuento
	Valor decimal.Decimal
}

// NuevoDescuento validates and builds a discount. A nil valor means "no
// discount" and returns nil. An empty tipo defaults to porcentaje, matching
// the persisted default. Negative values and percentages above 100 are
// rejected here; a fixed monto has no upper bound of its own, the caller
// rejects any result that would go below zero.
func NuevoDescuento(valor *decimal.Decimal, tipo string) (*Descuento, error) {
	if valor == nil {
		return nil, nil
	}
	if valor.IsNegative() {
		return nil, apierror.InvalidRequest("El descuento no puede ser negativo")
	}
	t := TipoDescuento(tipo)
	if t == "" {
		t = DescuentoPorcentaje
	}
	switch t {
	case DescuentoPorcentaje:
		if valor.GreaterThan(cien) {
			return nil, apierror.InvalidRequest("El descuento porcentual no puede superar 100")
		}
	case DescuentoMonto:
		// no intrinsic cap; the resulting price is checked where it is applied
	default:
		return nil, apierror.InvalidRequest("Tipo de descuento desconocido: %s", tipo)
	}
	return &Descuento{Tipo: t, Valor: *valor}, nil
}

// EsPositivo reports whether the discount actually reduces the price.
// A nil or zero-valued discount leaves prices untouched.
func (d *Descuento) EsPositivo() bool {
	return d != nil && d.Valor.IsPositive()
}

// AplicarALinea prices one sale line. base is the unit price before discount,
// cantidad the units sold. Percentage discounts apply to the undiscounted
// line subtotal (cantidad × base), never cumulatively:
//
//	porcentaje: monto = cantidad·base·pct/100, unitario = base·(1 − pct/100)
//	monto:      monto = valor,                unitario = base − valor/cantidad
func (d *Descuento) AplicarALinea(base decimal.Decimal, cantidad int) (precioUnitario, monto decimal.Decimal) {
	if !d.EsPositivo() {
		return base, decimal.Zero
	}
	qty := decimal.NewFromInt(int64(cantidad))
	switch d.Tipo {
	case DescuentoMonto:
		monto = d.Valor
		precioUnitario = base.Sub(d.Valor.Div(qty))
	default:
		pct := d.Valor.Div(cien)
		monto = qty.Mul(base).Mul(pct)
		precioUnitario = base.Mul(decimal.NewFromInt(1).Sub(pct))
	}
	return precioUnitario, monto
}

// AplicarATotal computes the order-level discount against the sum of
// already-discounted line subtotals.
func (d *Descuento) AplicarATotal(subtotal decimal.Decimal) decimal.Decimal {
	if !d.EsPositivo() {
		return decimal.Zero
	}
	if d.Tipo == DescuentoMonto {
		return d.Valor
	}
	return subtotal.Mul(d.Valor).Div(cien)
}
