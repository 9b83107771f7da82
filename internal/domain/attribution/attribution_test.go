package attribution_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/natischnitzler/reporte-vendedores/internal/domain/attribution"
)

func fecha(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestConstruir_LaFacturaPisaLaFicha(t *testing.T) {
	base := []attribution.AsignacionBase{{ClienteID: 10, Vendedor: "A"}}
	ventas := []attribution.VentaFacturada{
		{FacturaID: 1, ClienteID: 10, Vendedor: "B", Fecha: fecha("2024-03-01")},
	}

	m := attribution.Construir(base, ventas)
	assert.Equal(t, "B", m.Vendedor(10))
}

func TestConstruir_ConflictoGanaLaMasReciente(t *testing.T) {
	ventas := []attribution.VentaFacturada{
		// entregadas en desorden a propósito
		{FacturaID: 7, ClienteID: 10, Vendedor: "NUEVO", Fecha: fecha("2024-06-15")},
		{FacturaID: 3, ClienteID: 10, Vendedor: "VIEJO", Fecha: fecha("2023-01-20")},
		{FacturaID: 5, ClienteID: 10, Vendedor: "MEDIO", Fecha: fecha("2024-01-02")},
	}

	m := attribution.Construir(nil, ventas)
	assert.Equal(t, "NUEVO", m.Vendedor(10))
}

func TestConstruir_EmpateDeFechaDesempataPorID(t *testing.T) {
	dia := fecha("2024-06-15")
	ventas := []attribution.VentaFacturada{
		{FacturaID: 9, ClienteID: 10, Vendedor: "GANA", Fecha: dia},
		{FacturaID: 4, ClienteID: 10, Vendedor: "PIERDE", Fecha: dia},
	}

	m := attribution.Construir(nil, ventas)
	assert.Equal(t, "GANA", m.Vendedor(10))
}

func TestConstruir_VaciosNoPisanNada(t *testing.T) {
	base := []attribution.AsignacionBase{
		{ClienteID: 10, Vendedor: "A"},
		{ClienteID: 11, Vendedor: ""}, // ficha sin vendedor
	}
	ventas := []attribution.VentaFacturada{
		{FacturaID: 1, ClienteID: 10, Vendedor: "", Fecha: fecha("2024-06-01")},
	}

	m := attribution.Construir(base, ventas)
	assert.Equal(t, "A", m.Vendedor(10), "una factura sin vendedor no borra la base")
	assert.Equal(t, "", m.Vendedor(11))
}

func TestConstruir_ClienteSinFuentesQuedaSinMapear(t *testing.T) {
	m := attribution.Construir(nil, nil)
	assert.Equal(t, "", m.Vendedor(999))
}

func TestConstruir_NoMutaElSliceDeEntrada(t *testing.T) {
	ventas := []attribution.VentaFacturada{
		{FacturaID: 2, ClienteID: 1, Vendedor: "B", Fecha: fecha("2024-02-01")},
		{FacturaID: 1, ClienteID: 1, Vendedor: "A", Fecha: fecha("2024-01-01")},
	}
	attribution.Construir(nil, ventas)
	assert.Equal(t, int64(2), ventas[0].FacturaID, "Construir ordena una copia, no la entrada")
}
