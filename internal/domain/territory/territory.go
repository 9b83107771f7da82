// Package territory agrupa ciudades en zonas geográficas (norte, centro, sur)
// con un orden interno por zona, para ordenar y agrupar clientes en el reporte.
package territory

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Índices de zona. La zona sentinela agrupa las ciudades que la tabla no
// conoce y las ordena después de todas las zonas conocidas.
const (
	ZonaNorte   = 0
	ZonaCentro  = 1
	ZonaSur     = 2
	ZonaSinZona = 3
)

// NombreZona devuelve el rótulo de la zona para el reporte.
func NombreZona(indice int) string {
	switch indice {
	case ZonaNorte:
		return "NORTE"
	case ZonaCentro:
		return "CENTRO"
	case ZonaSur:
		return "SUR"
	default:
		return "SIN ZONA"
	}
}

// Posicion es la entrada de la tabla estática: zona y orden dentro de la zona.
type Posicion struct {
	Indice int
	Rango  int
}

// Zona es el resultado de resolver una ciudad. Dentro de la zona sentinela el
// rango es siempre 0 y el desempate queda en manos del nombre normalizado, de
// modo que las ciudades desconocidas se ordenan alfabéticamente entre sí.
type Zona struct {
	Indice int
	Rango  int
	Ciudad string // ciudad normalizada, desempate final del orden
}

// Antes reporta si z debe aparecer antes que o en el reporte.
func (z Zona) Antes(o Zona) bool {
	if z.Indice != o.Indice {
		return z.Indice < o.Indice
	}
	if z.Rango != o.Rango {
		return z.Rango < o.Rango
	}
	return z.Ciudad < o.Ciudad
}

// Resolver resuelve ciudades contra una tabla inmutable inyectada al construirlo.
// La resolución nunca falla: lo que no calza cae en la zona sentinela.
type Resolver struct {
	tabla map[string]Posicion
}

// NewResolver construye el resolver copiando la tabla, de modo que el caller
// no pueda mutarla después.
func NewResolver(tabla map[string]Posicion) *Resolver {
	propia := make(map[string]Posicion, len(tabla))
	for k, v := range tabla {
		propia[Normalizar(k)] = v
	}
	return &Resolver{tabla: propia}
}

// Resolve ubica una ciudad en su zona.
//
// Fase 1: calce exacto contra la tabla normalizada.
// Fase 2: calce por prefijo en ambas direcciones (la clave es prefijo de la
// entrada o viceversa); gana la clave más larga y los empates de largo se
// resuelven por orden alfabético de la clave, para que el resultado sea
// determinista.
// Sin calce, o entrada vacía: zona sentinela.
func (r *Resolver) Resolve(ciudad string) Zona {
	cl := Normalizar(ciudad)
	if cl == "" {
		// el marcador alto hace que los vacíos queden al final de la sentinela
		return Zona{Indice: ZonaSinZona, Ciudad: "zzz"}
	}

	if pos, ok := r.tabla[cl]; ok {
		return Zona{Indice: pos.Indice, Rango: pos.Rango, Ciudad: cl}
	}

	mejor := ""
	var mejorPos Posicion
	for clave, pos := range r.tabla {
		if !strings.HasPrefix(cl, clave) && !strings.HasPrefix(clave, cl) {
			continue
		}
		if len(clave) > len(mejor) || (len(clave) == len(mejor) && clave < mejor) {
			mejor, mejorPos = clave, pos
		}
	}
	if mejor != "" {
		return Zona{Indice: mejorPos.Indice, Rango: mejorPos.Rango, Ciudad: cl}
	}

	return Zona{Indice: ZonaSinZona, Ciudad: cl}
}

var quitaDiacriticos = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalizar lleva una ciudad a la forma de la tabla: minúsculas, sin espacios
// en los bordes y sin diacríticos ("Copiapó " -> "copiapo").
func Normalizar(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if plano, _, err := transform.String(quitaDiacriticos, s); err == nil {
		return plano
	}
	return s
}
