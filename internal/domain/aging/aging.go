// Package aging clasifica saldos impagos por días de atraso.
package aging

// Bucket es el tramo de antigüedad de un saldo.
type Bucket string

const (
	BucketALaFecha Bucket = "A la fecha"
	Bucket1a30     Bucket = "1-30"
	Bucket31a60    Bucket = "31-60"
	Bucket61a90    Bucket = "61-90"
	Bucket91a120   Bucket = "91-120"
	BucketAntiguos Bucket = "Antiguos"
)

// Clasificar asigna el tramo según los días transcurridos desde el vencimiento.
// Los cortes son inclusivos por la derecha: 30 días cae en "1-30", 31 en "31-60".
func Clasificar(dias int) Bucket {
	switch {
	case dias <= 0:
		return BucketALaFecha
	case dias <= 30:
		return Bucket1a30
	case dias <= 60:
		return Bucket31a60
	case dias <= 90:
		return Bucket61a90
	case dias <= 120:
		return Bucket91a120
	default:
		return BucketAntiguos
	}
}

// EsVencido reporta si el tramo cuenta para la columna ">30 días".
func (b Bucket) EsVencido() bool {
	switch b {
	case Bucket31a60, Bucket61a90, Bucket91a120, BucketAntiguos:
		return true
	}
	return false
}

// Buckets devuelve todos los tramos en orden de columna del reporte.
func Buckets() []Bucket {
	return []Bucket{
		BucketALaFecha, Bucket1a30, Bucket31a60,
		Bucket61a90, Bucket91a120, BucketAntiguos,
	}
}

// Vencidos devuelve los tramos que componen el acumulado ">30 días".
func Vencidos() []Bucket {
	return []Bucket{Bucket31a60, Bucket61a90, Bucket91a120, BucketAntiguos}
}
