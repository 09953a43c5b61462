package service

import (
	"testing"

	"retailpos/internal/apierror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestNuevoDescuento_NilEsSinDescuento(t *testing.T) {
	d, err := NuevoDescuento(nil, "")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.False(t, d.EsPositivo())
}

func TestNuevoDescuento_TipoVacioEsPorcentaje(t *testing.T) {
	d, err := NuevoDescuento(decPtr("10"), "")
	require.NoError(t, err)
	assert.Equal(t, DescuentoPorcentaje, d.Tipo)
}

func TestNuevoDescuento_Rechazos(t *testing.T) {
	cases := []struct {
		nombre string
		valor  string
		tipo   string
	}{
		{"negativo", "-5", "porcentaje"},
		{"monto negativo", "-0.01", "monto"},
		{"porcentaje mayor a 100", "100.01", "porcentaje"},
		{"tipo desconocido", "10", "cupon"},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := NuevoDescuento(decPtr(tc.valor), tc.tipo)
			require.Error(t, err)
			assert.Equal(t, apierror.KindInvalidRequest, apierror.KindOf(err))
		})
	}
}

func TestAplicarALinea_Porcentaje(t *testing.T) {
	// 2 × 100.00 al 10%: unitario 90, descuento 20, subtotal 180.
	d, err := NuevoDescuento(decPtr("10"), "porcentaje")
	require.NoError(t, err)

	unitario, monto := d.AplicarALinea(dec("100"), 2)
	assert.True(t, unitario.Equal(dec("90")), "unitario = %s", unitario)
	assert.True(t, monto.Equal(dec("20")), "monto = %s", monto)
}

func TestAplicarALinea_Monto(t *testing.T) {
	// 2 × 100.00 con 30 de descuento fijo: unitario 85, descuento 30.
	d, err := NuevoDescuento(decPtr("30"), "monto")
	require.NoError(t, err)

	unitario, monto := d.AplicarALinea(dec("100"), 2)
	assert.True(t, unitario.Equal(dec("85")), "unitario = %s", unitario)
	assert.True(t, monto.Equal(dec("30")), "monto = %s", monto)
}

func TestAplicarALinea_CeroNoAltera(t *testing.T) {
	d, err := NuevoDescuento(decPtr("0"), "porcentaje")
	require.NoError(t, err)

	unitario, monto := d.AplicarALinea(dec("59.90"), 3)
	assert.True(t, unitario.Equal(dec("59.90")))
	assert.True(t, monto.IsZero())
}

func TestAplicarATotal(t *testing.T) {
	pct, err := NuevoDescuento(decPtr("10"), "porcentaje")
	require.NoError(t, err)
	assert.True(t, pct.AplicarATotal(dec("180")).Equal(dec("18")))

	fijo, err := NuevoDescuento(decPtr("25"), "monto")
	require.NoError(t, err)
	assert.True(t, fijo.AplicarATotal(dec("180")).Equal(dec("25")))

	var nulo *Descuento
	assert.True(t, nulo.AplicarATotal(dec("180")).IsZero())
}
