package cobranza_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natischnitzler/reporte-vendedores/internal/application/cobranza"
	"github.com/natischnitzler/reporte-vendedores/internal/domain"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/attribution"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/entity"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/territory"
	"github.com/natischnitzler/reporte-vendedores/pkg/logger"
)

// fuenteFake implementa repository.FuenteContable en memoria.
type fuenteFake struct {
	cuentas    []int64
	lineas     []entity.LineaContable
	documentos map[int64]entity.Documento
	clientes   map[int64]entity.Cliente
	ventas     []attribution.VentaFacturada
}

func (f *fuenteFake) CuentasPorCobrar(context.Context) ([]int64, error) { return f.cuentas, nil }
func (f *fuenteFake) LineasPendientes(_ context.Context, _ []int64) ([]entity.LineaContable, error) {
	return f.lineas, nil
}
func (f *fuenteFake) Documentos(_ context.Context, _ []int64) (map[int64]entity.Documento, error) {
	return f.documentos, nil
}
func (f *fuenteFake) Clientes(_ context.Context, _ []int64) (map[int64]entity.Cliente, error) {
	return f.clientes, nil
}
func (f *fuenteFake) VentasFacturadas(context.Context) ([]attribution.VentaFacturada, error) {
	return f.ventas, nil
}

// renderFake registra los títulos pedidos y puede fallar selectivamente.
type renderFake struct {
	titulos   []string
	fallaPara string
}

func (r *renderFake) Render(_ context.Context, titulo string, _ time.Time, _ []cobranza.Evento) ([]byte, error) {
	r.titulos = append(r.titulos, titulo)
	if r.fallaPara != "" && strings.Contains(titulo, r.fallaPara) {
		return nil, errors.New("falla simulada de render")
	}
	return []byte("%PDF " + titulo), nil
}

func nuevoUC(f *fuenteFake, r *renderFake) *cobranza.ReporteUseCase {
	return cobranza.NewReporteUseCase(
		f, r, territory.NewResolver(territory.TablaCiudades()), logger.Nop())
}

func fuenteConSaldos() *fuenteFake {
	vence := hoy.AddDate(0, 0, -45)
	return &fuenteFake{
		cuentas: []int64{7},
		documentos: map[int64]entity.Documento{
			1: {ID: 1, Nombre: "FAC 1", Tipo: entity.TipoFactura,
				Estado: entity.EstadoPublicado, Vendedor: "ALDO",
				FechaFactura: fechaPtr("2024-04-01")},
			2: {ID: 2, Nombre: "FAC 2", Tipo: entity.TipoFactura,
				Estado: entity.EstadoPublicado, Vendedor: "PEDRO",
				FechaFactura: fechaPtr("2024-05-01")},
		},
		clientes: map[int64]entity.Cliente{
			10: {ID: 10, Nombre: "CLI A", Ciudad: "Temuco"},
			11: {ID: 11, Nombre: "CLI B", Ciudad: "Arica"},
		},
		lineas: []entity.LineaContable{
			{ID: 1, DocumentoID: 1, ClienteID: 10, FechaVencimiento: &vence,
				SaldoResidual: decimal.NewFromInt(15000)},
			{ID: 2, DocumentoID: 2, ClienteID: 11,
				SaldoResidual: decimal.NewFromInt(8000)},
		},
	}
}

func TestGenerar_SinCuentasAbortaFatal(t *testing.T) {
	uc := nuevoUC(&fuenteFake{}, &renderFake{})

	res, err := uc.Generar(context.Background(), hoy)

	require.ErrorIs(t, err, domain.ErrSinCuentasPorCobrar)
	assert.Nil(t, res, "un error fatal no produce salida alguna")
}

func TestGenerar_SinSaldosNoEsError(t *testing.T) {
	f := &fuenteFake{cuentas: []int64{7}} // cuentas sí, líneas no
	r := &renderFake{}

	res, err := nuevoUC(f, r).Generar(context.Background(), hoy)

	require.NoError(t, err)
	assert.True(t, res.Vacio)
	assert.Equal(t, cobranza.MensajeSinSaldos, res.Mensaje)
	assert.Empty(t, r.titulos, "sin saldos no se invoca el renderizador")
}

func TestGenerar_UnReportePorVendedorMasElGeneral(t *testing.T) {
	r := &renderFake{}

	res, err := nuevoUC(fuenteConSaldos(), r).Generar(context.Background(), hoy)

	require.NoError(t, err)
	assert.False(t, res.Vacio)
	require.Len(t, res.Matriz, 2)
	assert.Contains(t, res.PorVendedor, "ALDO")
	assert.Contains(t, res.PorVendedor, "PEDRO")
	assert.NotNil(t, res.General)
	assert.Empty(t, res.Fallidos)
	assert.NotEmpty(t, res.RunID)

	// los títulos siguen la convención y el general va al final
	assert.Equal(t, []string{
		"Cobranza pendiente - ALDO",
		"Cobranza pendiente - PEDRO",
		cobranza.TituloGeneral,
	}, r.titulos)
}

func TestGenerar_FallaDeUnVendedorNoBotaLaCorrida(t *testing.T) {
	r := &renderFake{fallaPara: "ALDO"}

	res, err := nuevoUC(fuenteConSaldos(), r).Generar(context.Background(), hoy)

	require.NoError(t, err, "una falla de render por vendedor es recuperable")
	assert.NotContains(t, res.PorVendedor, "ALDO")
	assert.Contains(t, res.PorVendedor, "PEDRO")
	assert.Equal(t, []string{"ALDO"}, res.Fallidos)
	assert.NotNil(t, res.General, "el general se genera igual")
}

func TestGenerar_FallaDelGeneralQuedaRegistrada(t *testing.T) {
	r := &renderFake{fallaPara: cobranza.TituloGeneral}

	res, err := nuevoUC(fuenteConSaldos(), r).Generar(context.Background(), hoy)

	require.NoError(t, err)
	assert.Nil(t, res.General)
	assert.Contains(t, res.Fallidos, cobranza.TituloGeneral)
	assert.Len(t, res.PorVendedor, 2)
}

func TestGenerar_VendedorVacioSoloEnElGeneral(t *testing.T) {
	f := fuenteConSaldos()
	// el documento 2 queda sin vendedor y el cliente 11 no tiene atribución
	doc := f.documentos[2]
	doc.Vendedor = ""
	f.documentos[2] = doc

	r := &renderFake{}
	res, err := nuevoUC(f, r).Generar(context.Background(), hoy)

	require.NoError(t, err)
	assert.NotContains(t, res.PorVendedor, "")
	require.Len(t, res.Matriz, 2, "el saldo sin atribución sigue en la matriz y el general")
}

func TestGenerar_AtribucionDesdeGeneralVentas(t *testing.T) {
	f := fuenteConSaldos()
	doc := f.documentos[2]
	doc.Vendedor = ""
	f.documentos[2] = doc
	f.ventas = []attribution.VentaFacturada{
		{FacturaID: 50, ClienteID: 11, Vendedor: "MAX", Fecha: hoy.AddDate(0, -1, 0)},
	}

	r := &renderFake{}
	res, err := nuevoUC(f, r).Generar(context.Background(), hoy)

	require.NoError(t, err)
	assert.Contains(t, res.PorVendedor, "MAX",
		"el saldo sin vendedor en el documento se atribuye por historial de ventas")
}
