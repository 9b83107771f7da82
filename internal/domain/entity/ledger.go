package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento contable (account.move.move_type en el sistema de origen).
const (
	TipoFactura     = "out_invoice"
	TipoNotaCredito = "out_refund"
	TipoAsiento     = "entry" // asientos manuales y de apertura (APER/)
)

// EstadoPublicado es el único estado de documento que entra al reporte.
const EstadoPublicado = "posted"

// LineaContable es una línea de asiento que toca una cuenta por cobrar,
// snapshot inmutable leído del sistema contable externo.
type LineaContable struct {
	ID               int64
	DocumentoID      int64
	ClienteID        int64 // 0 = sin cliente asociado
	FechaVencimiento *time.Time
	Fecha            time.Time // fecha contable de la línea
	Debe             decimal.Decimal
	Haber            decimal.Decimal
	SaldoResidual    decimal.Decimal // saldo real post-pagos parciales
	Conciliada       bool            // true = totalmente conciliada (pagada)
	Glosa            string          // texto libre de la línea
}

// Documento es la cabecera del asiento: factura, nota de crédito o apertura.
type Documento struct {
	ID               int64
	Nombre           string // ej. "FAC 083251", "APER/2023/0001"
	Referencia       string // texto libre (se usa para excluir cheques en cartera)
	Vendedor         string // vendedor asignado al documento, "" si no tiene
	Tipo             string // TipoFactura, TipoNotaCredito o TipoAsiento
	Estado           string
	FechaFactura     *time.Time
	FechaVencimiento *time.Time
	Fecha            time.Time // fecha contable del asiento
}

// EsApertura reporta si el documento es un asiento de apertura: arrastra un
// saldo anterior en vez de nacer de una factura nueva.
func (d Documento) EsApertura() bool {
	return d.Tipo == TipoAsiento || len(d.Nombre) >= 5 && d.Nombre[:5] == "APER/"
}

// Cliente son los datos del cliente relevantes para el reporte.
type Cliente struct {
	ID       int64
	Nombre   string
	Ciudad   string
	Vendedor string // vendedor asignado en la ficha del cliente, "" si no tiene
}
