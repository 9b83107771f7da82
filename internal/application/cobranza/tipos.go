// Package cobranza implementa el núcleo del reporte de saldos por cobrar:
// extracción de líneas pendientes, deduplicación por documento, pivot por
// cliente y orquestación del render por vendedor.
package cobranza

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/natischnitzler/reporte-vendedores/internal/domain/aging"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/territory"
)

// SaldoPendiente es una línea por cobrar que sobrevivió el filtrado, con el
// vendedor, la zona y el tramo de antigüedad ya resueltos.
//
// Invariantes post-filtrado: Saldo > 0 y la línea de origen no estaba
// totalmente conciliada.
type SaldoPendiente struct {
	ClaveDocumento   string // "NOMBRE||lineaID", clave única para deduplicar
	Etiqueta         string // texto visible (agrega la glosa en aperturas)
	Documento        string // nombre del asiento
	EsApertura       bool
	Cliente          string
	Ciudad           string
	Zona             territory.Zona
	Vendedor         string
	FechaDocumento   *time.Time
	FechaVencimiento *time.Time // nil = vencimiento desconocido (tri-estado explícito)
	DiasVencido      int
	Bucket           aging.Bucket
	Saldo            decimal.Decimal
}

// ResumenCliente es una fila del pivot: un cliente bajo un vendedor, con una
// columna por tramo más los acumulados.
//
// Invariantes: Total == suma de los seis tramos; Mayor30 == suma de los
// tramos vencidos; las filas con Total <= 0 no existen.
type ResumenCliente struct {
	Vendedor string
	Cliente  string
	Ciudad   string
	Zona     territory.Zona
	Montos   map[aging.Bucket]decimal.Decimal
	Total    decimal.Decimal
	Mayor30  decimal.Decimal
}

// Monto devuelve el saldo del tramo, cero si no hay.
func (r ResumenCliente) Monto(b aging.Bucket) decimal.Decimal {
	if m, ok := r.Montos[b]; ok {
		return m
	}
	return decimal.Zero
}

// Vencido reporta si el cliente tiene saldo en algún tramo sobre 30 días;
// el bloque completo se destaca en el reporte.
func (r ResumenCliente) Vencido() bool {
	for _, b := range aging.Vencidos() {
		if r.Monto(b).IsPositive() {
			return true
		}
	}
	return false
}
