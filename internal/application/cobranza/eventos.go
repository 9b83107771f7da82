package cobranza

import (
	"sort"

	"github.com/natischnitzler/reporte-vendedores/internal/domain/territory"
)

// Evento es un elemento de la secuencia que consume el renderizador. El
// recorrido jerárquico (zona → cliente → documentos) se resuelve acá como un
// fold sobre las filas ordenadas; el renderizador no mantiene estado de
// agrupación, solo dibuja lo que recibe.
type Evento interface{ esEvento() }

// InicioZona abre un grupo de zona; el renderizador dibuja el separador.
type InicioZona struct {
	Indice int
	Nombre string
}

// FinZona cierra el grupo de zona abierto.
type FinZona struct {
	Indice int
}

// BloqueCliente es la fila resumen de un cliente. Vencido marca el bloque
// completo para destacar cuando hay saldo en tramos sobre 30 días.
type BloqueCliente struct {
	Resumen ResumenCliente
	Vencido bool
}

// FilaDocumento es un documento individual bajo el bloque de su cliente.
// Vencido destaca la fila cuando el tramo propio del documento está sobre
// 30 días.
type FilaDocumento struct {
	Saldo   SaldoPendiente
	Vencido bool
}

func (InicioZona) esEvento()    {}
func (FinZona) esEvento()       {}
func (BloqueCliente) esEvento() {}
func (FilaDocumento) esEvento() {}

// Eventos recorre las filas del pivot (ya ordenadas por zona, orden interno y
// cliente) y emite la secuencia etiquetada. Bajo cada bloque de cliente van
// sus documentos ordenados por fecha de documento.
func Eventos(filas []ResumenCliente, documentos []SaldoPendiente) []Evento {
	type clave struct{ vendedor, cliente string }
	porCliente := make(map[clave][]SaldoPendiente, len(filas))
	for _, d := range documentos {
		k := clave{d.Vendedor, d.Cliente}
		porCliente[k] = append(porCliente[k], d)
	}

	eventos := make([]Evento, 0, len(filas)+len(documentos)+8)
	zonaActual := -1

	for _, fila := range filas {
		if fila.Zona.Indice != zonaActual {
			if zonaActual >= 0 {
				eventos = append(eventos, FinZona{Indice: zonaActual})
			}
			zonaActual = fila.Zona.Indice
			eventos = append(eventos, InicioZona{
				Indice: zonaActual,
				Nombre: territory.NombreZona(zonaActual),
			})
		}

		eventos = append(eventos, BloqueCliente{Resumen: fila, Vencido: fila.Vencido()})

		docs := porCliente[clave{fila.Vendedor, fila.Cliente}]
		sort.SliceStable(docs, func(i, j int) bool {
			if fa, fb := fechaOVacia(docs[i].FechaDocumento), fechaOVacia(docs[j].FechaDocumento); fa != fb {
				return fa < fb
			}
			return docs[i].ClaveDocumento < docs[j].ClaveDocumento
		})
		for _, d := range docs {
			eventos = append(eventos, FilaDocumento{Saldo: d, Vencido: d.Bucket.EsVencido()})
		}
	}
	if zonaActual >= 0 {
		eventos = append(eventos, FinZona{Indice: zonaActual})
	}
	return eventos
}
