// Package attribution determina el vendedor responsable de cada cliente a
// partir de dos fuentes con prioridad: la ficha del cliente como base y el
// historial de facturas emitidas como sobreescritura.
package attribution

import (
	"sort"
	"time"
)

// AsignacionBase es el vendedor por defecto en la ficha del cliente.
type AsignacionBase struct {
	ClienteID int64
	Vendedor  string
}

// VentaFacturada es una factura o nota de crédito publicada con vendedor asignado.
type VentaFacturada struct {
	FacturaID int64
	ClienteID int64
	Vendedor  string
	Fecha     time.Time // fecha de la factura; decide qué sobreescritura gana
}

// Mapa es el resultado: cliente -> vendedor responsable. Se construye una vez
// por corrida y después solo se lee.
type Mapa map[int64]string

// Vendedor devuelve el responsable del cliente, o "" si no está mapeado.
func (m Mapa) Vendedor(clienteID int64) string {
	return m[clienteID]
}

// Construir aplica primero la base y encima las ventas facturadas, de modo que
// el historial real de facturación le gana a la ficha. Las ventas se ordenan
// por (fecha, id de factura) ascendente antes de aplicarse: con facturas en
// conflicto para un mismo cliente gana siempre la más reciente, sin depender
// del orden en que la fuente las entregue.
//
// Ninguna fuente escribe nombres vacíos, así que un registro sin vendedor
// nunca pisa un valor ya asignado.
func Construir(base []AsignacionBase, ventas []VentaFacturada) Mapa {
	m := make(Mapa, len(base))
	for _, b := range base {
		if b.ClienteID != 0 && b.Vendedor != "" {
			m[b.ClienteID] = b.Vendedor
		}
	}

	ordenadas := make([]VentaFacturada, len(ventas))
	copy(ordenadas, ventas)
	sort.SliceStable(ordenadas, func(i, j int) bool {
		if !ordenadas[i].Fecha.Equal(ordenadas[j].Fecha) {
			return ordenadas[i].Fecha.Before(ordenadas[j].Fecha)
		}
		return ordenadas[i].FacturaID < ordenadas[j].FacturaID
	})
	for _, v := range ordenadas {
		if v.ClienteID != 0 && v.Vendedor != "" {
			m[v.ClienteID] = v.Vendedor
		}
	}
	return m
}
