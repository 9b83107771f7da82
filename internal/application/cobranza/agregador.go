package cobranza

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/natischnitzler/reporte-vendedores/internal/domain/aging"
)

// AgruparDocumentos colapsa los saldos al nivel de documento: un mismo asiento
// puede postear varias líneas por cobrar (impuestos separados, por ejemplo) y
// en el reporte deben aparecer como una sola fila. Se agrupa por la tupla
// completa y se suma el saldo; los grupos que suman <= 0 se descartan.
//
// El resultado queda en orden determinista: zona, cliente, fecha de documento,
// clave. La misma foto de entrada produce siempre la misma salida.
func AgruparDocumentos(saldos []SaldoPendiente) []SaldoPendiente {
	type clave struct {
		documento string
		cliente   string
		vendedor  string
		fechaDoc  string
		fechaVenc string
		dias      int
		bucket    aging.Bucket
	}

	llave := func(s SaldoPendiente) clave {
		c := clave{
			documento: s.ClaveDocumento,
			cliente:   s.Cliente,
			vendedor:  s.Vendedor,
			dias:      s.DiasVencido,
			bucket:    s.Bucket,
		}
		if s.FechaDocumento != nil {
			c.fechaDoc = s.FechaDocumento.Format("2006-01-02")
		}
		if s.FechaVencimiento != nil {
			c.fechaVenc = s.FechaVencimiento.Format("2006-01-02")
		}
		return c
	}

	grupos := make(map[clave]*SaldoPendiente, len(saldos))
	orden := make([]clave, 0, len(saldos))
	for _, s := range saldos {
		k := llave(s)
		if g, ok := grupos[k]; ok {
			g.Saldo = g.Saldo.Add(s.Saldo)
			continue
		}
		copia := s
		grupos[k] = &copia
		orden = append(orden, k)
	}

	resultado := make([]SaldoPendiente, 0, len(orden))
	for _, k := range orden {
		g := grupos[k]
		if g.Saldo.IsPositive() {
			resultado = append(resultado, *g)
		}
	}

	sort.SliceStable(resultado, func(i, j int) bool {
		a, b := resultado[i], resultado[j]
		if a.Zona != b.Zona {
			return a.Zona.Antes(b.Zona)
		}
		if a.Cliente != b.Cliente {
			return a.Cliente < b.Cliente
		}
		if fa, fb := fechaOVacia(a.FechaDocumento), fechaOVacia(b.FechaDocumento); fa != fb {
			return fa < fb
		}
		return a.ClaveDocumento < b.ClaveDocumento
	})
	return resultado
}

// PivotClientes arma la matriz cliente × tramo: una fila por (vendedor,
// cliente) con una columna por tramo, el total y el acumulado sobre 30 días.
// Las filas con total <= 0 se descartan. Ciudad y zona salen del primer
// documento visto para el cliente.
//
// La salida queda ordenada por zona, orden interno y nombre de cliente, de
// modo que el índice de zona es no decreciente entre filas consecutivas.
func PivotClientes(documentos []SaldoPendiente) []ResumenCliente {
	type clave struct{ vendedor, cliente string }

	filas := make(map[clave]*ResumenCliente, len(documentos))
	orden := make([]clave, 0, len(documentos))
	for _, d := range documentos {
		k := clave{d.Vendedor, d.Cliente}
		fila, ok := filas[k]
		if !ok {
			fila = &ResumenCliente{
				Vendedor: d.Vendedor,
				Cliente:  d.Cliente,
				Ciudad:   d.Ciudad,
				Zona:     d.Zona,
				Montos:   make(map[aging.Bucket]decimal.Decimal, 6),
			}
			filas[k] = fila
			orden = append(orden, k)
		}
		fila.Montos[d.Bucket] = fila.Monto(d.Bucket).Add(d.Saldo)
	}

	resultado := make([]ResumenCliente, 0, len(orden))
	for _, k := range orden {
		fila := filas[k]
		fila.Total = decimal.Zero
		for _, b := range aging.Buckets() {
			fila.Total = fila.Total.Add(fila.Monto(b))
		}
		if !fila.Total.IsPositive() {
			continue
		}
		fila.Mayor30 = decimal.Zero
		for _, b := range aging.Vencidos() {
			fila.Mayor30 = fila.Mayor30.Add(fila.Monto(b))
		}
		resultado = append(resultado, *fila)
	}

	sort.SliceStable(resultado, func(i, j int) bool {
		a, b := resultado[i], resultado[j]
		if a.Zona != b.Zona {
			return a.Zona.Antes(b.Zona)
		}
		if a.Cliente != b.Cliente {
			return a.Cliente < b.Cliente
		}
		return a.Vendedor < b.Vendedor
	})
	return resultado
}

func fechaOVacia(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
