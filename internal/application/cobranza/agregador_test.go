package cobranza_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natischnitzler/reporte-vendedores/internal/application/cobranza"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/aging"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/territory"
)

func saldo(clave, cliente, vendedor string, zona territory.Zona, bucket aging.Bucket, monto int64) cobranza.SaldoPendiente {
	return cobranza.SaldoPendiente{
		ClaveDocumento: clave,
		Documento:      clave,
		Etiqueta:       clave,
		Cliente:        cliente,
		Vendedor:       vendedor,
		Zona:           zona,
		Bucket:         bucket,
		Saldo:          decimal.NewFromInt(monto),
		FechaDocumento: fechaPtr("2024-04-01"),
	}
}

func zonaDe(ciudad string) territory.Zona {
	return territory.NewResolver(territory.TablaCiudades()).Resolve(ciudad)
}

func TestAgruparDocumentos_SumaLineasDelMismoDocumento(t *testing.T) {
	z := zonaDe("talca")
	entrada := []cobranza.SaldoPendiente{
		saldo("FAC 1||10", "CLI A", "V1", z, aging.Bucket1a30, 1000),
		saldo("FAC 1||10", "CLI A", "V1", z, aging.Bucket1a30, 190), // línea de IVA separada
		saldo("FAC 2||11", "CLI A", "V1", z, aging.Bucket1a30, 500),
	}

	grupos := cobranza.AgruparDocumentos(entrada)

	require.Len(t, grupos, 2)
	assert.True(t, grupos[0].Saldo.Equal(decimal.NewFromInt(1190)))
	assert.True(t, grupos[1].Saldo.Equal(decimal.NewFromInt(500)))
}

func TestPivotClientes_Invariantes(t *testing.T) {
	z := zonaDe("iquique")
	entrada := []cobranza.SaldoPendiente{
		saldo("FAC 1||1", "CLI A", "V1", z, aging.BucketALaFecha, 100),
		saldo("FAC 2||2", "CLI A", "V1", z, aging.Bucket1a30, 200),
		saldo("FAC 3||3", "CLI A", "V1", z, aging.Bucket31a60, 300),
		saldo("FAC 4||4", "CLI A", "V1", z, aging.Bucket61a90, 400),
		saldo("FAC 5||5", "CLI A", "V1", z, aging.Bucket91a120, 500),
		saldo("FAC 6||6", "CLI A", "V1", z, aging.BucketAntiguos, 600),
	}

	filas := cobranza.PivotClientes(cobranza.AgruparDocumentos(entrada))

	require.Len(t, filas, 1)
	fila := filas[0]

	// Total == suma de todas las columnas
	suma := decimal.Zero
	for _, b := range aging.Buckets() {
		suma = suma.Add(fila.Monto(b))
	}
	assert.True(t, fila.Total.Equal(suma))
	assert.True(t, fila.Total.Equal(decimal.NewFromInt(2100)))

	// >30 == suma de los tramos vencidos
	assert.True(t, fila.Mayor30.Equal(decimal.NewFromInt(1800)))
	assert.True(t, fila.Vencido())
}

func TestPivotClientes_TramosFaltantesQuedanEnCero(t *testing.T) {
	z := zonaDe("arica")
	entrada := []cobranza.SaldoPendiente{
		saldo("FAC 1||1", "CLI A", "V1", z, aging.BucketALaFecha, 900),
	}

	filas := cobranza.PivotClientes(entrada)

	require.Len(t, filas, 1)
	assert.True(t, filas[0].Monto(aging.Bucket31a60).IsZero())
	assert.True(t, filas[0].Mayor30.IsZero())
	assert.False(t, filas[0].Vencido())
}

func TestPivotClientes_OrdenPorZona(t *testing.T) {
	entrada := []cobranza.SaldoPendiente{
		saldo("FAC 1||1", "CLI SUR", "V1", zonaDe("valdivia"), aging.Bucket1a30, 100),
		saldo("FAC 2||2", "CLI DESCONOCIDO", "V1", zonaDe("Nowhereville"), aging.Bucket1a30, 100),
		saldo("FAC 3||3", "CLI NORTE", "V1", zonaDe("arica"), aging.Bucket1a30, 100),
		saldo("FAC 4||4", "CLI CENTRO", "V1", zonaDe("santiago"), aging.Bucket1a30, 100),
	}

	filas := cobranza.PivotClientes(entrada)

	require.Len(t, filas, 4)
	for i := 1; i < len(filas); i++ {
		assert.LessOrEqual(t, filas[i-1].Zona.Indice, filas[i].Zona.Indice,
			"el índice de zona debe ser no decreciente")
	}
	assert.Equal(t, "CLI NORTE", filas[0].Cliente)
	assert.Equal(t, "CLI DESCONOCIDO", filas[3].Cliente,
		"la ciudad desconocida ordena después de todas las zonas conocidas")
	assert.Equal(t, territory.ZonaSinZona, filas[3].Zona.Indice)
}

func TestPivotClientes_Idempotente(t *testing.T) {
	z := zonaDe("temuco")
	entrada := []cobranza.SaldoPendiente{
		saldo("FAC 2||2", "CLI B", "V2", z, aging.Bucket61a90, 700),
		saldo("FAC 1||1", "CLI A", "V1", z, aging.Bucket1a30, 100),
		saldo("FAC 3||3", "CLI A", "V1", z, aging.BucketAntiguos, 50),
	}

	una := cobranza.PivotClientes(cobranza.AgruparDocumentos(entrada))
	otra := cobranza.PivotClientes(cobranza.AgruparDocumentos(entrada))
	assert.Equal(t, una, otra, "la misma foto debe producir la misma matriz")
}

func TestPivotClientes_MismoClienteBajoDosVendedores(t *testing.T) {
	z := zonaDe("osorno")
	entrada := []cobranza.SaldoPendiente{
		saldo("FAC 1||1", "CLI A", "V1", z, aging.Bucket1a30, 100),
		saldo("FAC 2||2", "CLI A", "V2", z, aging.Bucket1a30, 200),
	}

	filas := cobranza.PivotClientes(entrada)

	require.Len(t, filas, 2, "cada vendedor ve su propia fila del cliente")
	assert.Equal(t, "V1", filas[0].Vendedor)
	assert.Equal(t, "V2", filas[1].Vendedor)
}
