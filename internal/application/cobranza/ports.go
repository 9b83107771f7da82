package cobranza

import (
	"context"
	"time"
)

// Renderizador es el puerto de salida hacia el formato final del reporte.
// Recibe la secuencia de eventos ya agrupada y devuelve el documento
// renderizado. La implementación concreta usa PDF; para tests se inyecta un
// renderizador falso.
type Renderizador interface {
	// Render dibuja un reporte completo. titulo encabeza el documento y hoy
	// es la fecha de corte que va en el subtítulo.
	Render(ctx context.Context, titulo string, hoy time.Time, eventos []Evento) ([]byte, error)
}
