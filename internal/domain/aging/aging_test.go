package aging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/natischnitzler/reporte-vendedores/internal/domain/aging"
)

func TestClasificar_Tramos(t *testing.T) {
	casos := []struct {
		nombre string
		dias   int
		quiero aging.Bucket
	}{
		{"muy adelantado", -45, aging.BucketALaFecha},
		{"vence hoy", 0, aging.BucketALaFecha},
		{"un dia de atraso", 1, aging.Bucket1a30},
		{"borde 30", 30, aging.Bucket1a30},
		{"borde 31", 31, aging.Bucket31a60},
		{"borde 60", 60, aging.Bucket31a60},
		{"borde 61", 61, aging.Bucket61a90},
		{"borde 90", 90, aging.Bucket61a90},
		{"borde 91", 91, aging.Bucket91a120},
		{"borde 120", 120, aging.Bucket91a120},
		{"borde 121", 121, aging.BucketAntiguos},
		{"muy antiguo", 900, aging.BucketAntiguos},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.quiero, aging.Clasificar(c.dias))
		})
	}
}

func TestEsVencido(t *testing.T) {
	assert.False(t, aging.BucketALaFecha.EsVencido())
	assert.False(t, aging.Bucket1a30.EsVencido())
	for _, b := range aging.Vencidos() {
		assert.True(t, b.EsVencido(), "el tramo %s debe contar como vencido", b)
	}
}

func TestBuckets_OrdenDeColumnas(t *testing.T) {
	quiero := []aging.Bucket{
		aging.BucketALaFecha, aging.Bucket1a30, aging.Bucket31a60,
		aging.Bucket61a90, aging.Bucket91a120, aging.BucketAntiguos,
	}
	assert.Equal(t, quiero, aging.Buckets())
}
