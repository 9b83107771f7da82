package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natischnitzler/reporte-vendedores/internal/application/cobranza"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/aging"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/territory"
)

func TestFmtMonto(t *testing.T) {
	casos := []struct {
		monto    string
		esperado string
	}{
		{"0", ""},
		{"950", "$ 950"},
		{"25000", "$ 25.000"},
		{"1759125", "$ 1.759.125"},
		{"1000000", "$ 1.000.000"},
		{"-48000", "$ -48.000"},
		{"15990.49", "$ 15.990"}, // se redondea al peso
	}
	for _, c := range casos {
		t.Run(c.monto, func(t *testing.T) {
			assert.Equal(t, c.esperado, fmtMonto(decimal.RequireFromString(c.monto)))
		})
	}
}

func TestRender_ProduceUnPDF(t *testing.T) {
	hoy := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	fechaDoc := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	resumen := cobranza.ResumenCliente{
		Vendedor: "PEDRO SOTO",
		Cliente:  "COMERCIAL ARICA LTDA",
		Ciudad:   "ARICA",
		Zona:     territory.Zona{Indice: territory.ZonaNorte, Rango: 0, Ciudad: "arica"},
		Montos: map[aging.Bucket]decimal.Decimal{
			aging.Bucket31a60: decimal.NewFromInt(15000),
		},
		Total:   decimal.NewFromInt(15000),
		Mayor30: decimal.NewFromInt(15000),
	}
	eventos := []cobranza.Evento{
		cobranza.InicioZona{Indice: territory.ZonaNorte, Nombre: "NORTE"},
		cobranza.BloqueCliente{Resumen: resumen, Vencido: true},
		cobranza.FilaDocumento{
			Saldo: cobranza.SaldoPendiente{
				ClaveDocumento: "F1 0001||10",
				Etiqueta:       "F1 0001",
				Documento:      "F1 0001",
				Cliente:        "COMERCIAL ARICA LTDA",
				Vendedor:       "PEDRO SOTO",
				FechaDocumento: &fechaDoc,
				DiasVencido:    45,
				Bucket:         aging.Bucket31a60,
				Saldo:          decimal.NewFromInt(15000),
			},
			Vencido: true,
		},
		cobranza.FinZona{Indice: territory.ZonaNorte},
	}

	datos, err := NewMarotoRenderer().Render(context.Background(), "Cobranza pendiente - PEDRO SOTO", hoy, eventos)
	require.NoError(t, err)
	require.NotEmpty(t, datos)
	assert.Equal(t, "%PDF", string(datos[:4]))
}

func TestRender_SinEventosTambienGenera(t *testing.T) {
	hoy := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	datos, err := NewMarotoRenderer().Render(context.Background(), "Cobranza General", hoy, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, datos)
}
