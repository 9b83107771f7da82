package cobranza

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/natischnitzler/reporte-vendedores/internal/domain/aging"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/attribution"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/entity"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/territory"
	"github.com/natischnitzler/reporte-vendedores/pkg/logger"
)

// Extractor convierte líneas contables crudas en saldos pendientes, aplicando
// los filtros y las reglas de precedencia de fechas y vendedor.
type Extractor struct {
	resolver *territory.Resolver
	log      *logger.Logger
}

// NewExtractor construye el extractor con el resolver de zonas inyectado.
func NewExtractor(resolver *territory.Resolver, log *logger.Logger) *Extractor {
	return &Extractor{resolver: resolver, log: log}
}

// Extraer filtra y normaliza. Cada condición es necesaria por sí sola:
//
//  1. el documento padre existe y está publicado;
//  2. la línea tiene cliente;
//  3. la línea no está totalmente conciliada;
//  4. el saldo residual es > 0 (el residual ya descuenta pagos parciales,
//     notas de crédito y conciliaciones: cero o negativo = saldada);
//  5. la referencia del documento no marca un cheque en cartera (papel ya
//     recibido pero aún no cobrable; incluirlo duplicaría lo ya cobrado).
//
// Precedencias: vencimiento = línea → documento → fecha contable de la línea;
// fecha de documento = fecha de factura → fecha del asiento → fecha de la
// línea; vendedor = el del documento → el del mapa de atribución → "".
// Sin vencimiento resoluble la línea queda con 0 días ("A la fecha") en vez
// de caerse; la corrida reporta cuántas líneas entraron por esa vía.
func (e *Extractor) Extraer(
	hoy time.Time,
	lineas []entity.LineaContable,
	documentos map[int64]entity.Documento,
	clientes map[int64]entity.Cliente,
	mapa attribution.Mapa,
) []SaldoPendiente {
	hoy = medianoche(hoy)

	saldos := make([]SaldoPendiente, 0, len(lineas))
	sinVencimiento := 0
	sinZona := map[string]int{}

	for _, l := range lineas {
		doc, ok := documentos[l.DocumentoID]
		if !ok || doc.Estado != entity.EstadoPublicado {
			continue
		}
		if l.ClienteID == 0 || l.Conciliada {
			continue
		}
		if !l.SaldoResidual.IsPositive() {
			continue
		}
		if esChequeEnCartera(doc.Referencia) {
			continue
		}

		cliente := clientes[l.ClienteID]
		zona := e.resolver.Resolve(cliente.Ciudad)
		if zona.Indice == territory.ZonaSinZona && cliente.Ciudad != "" {
			sinZona[cliente.Ciudad]++
		}

		venc := primeraFecha(l.FechaVencimiento, doc.FechaVencimiento, &l.Fecha)
		dias := 0
		if venc != nil {
			dias = diasEntre(*venc, hoy)
		} else {
			sinVencimiento++
		}

		fechaDoc := primeraFecha(doc.FechaFactura, fechaNoVacia(doc.Fecha), &l.Fecha)

		vendedor := doc.Vendedor
		if vendedor == "" {
			vendedor = mapa.Vendedor(l.ClienteID)
		}

		saldos = append(saldos, SaldoPendiente{
			ClaveDocumento:   fmt.Sprintf("%s||%d", doc.Nombre, l.ID),
			Etiqueta:         etiqueta(doc, l.Glosa),
			Documento:        doc.Nombre,
			EsApertura:       doc.EsApertura(),
			Cliente:          cliente.Nombre,
			Ciudad:           cliente.Ciudad,
			Zona:             zona,
			Vendedor:         vendedor,
			FechaDocumento:   fechaDoc,
			FechaVencimiento: venc,
			DiasVencido:      dias,
			Bucket:           aging.Clasificar(dias),
			Saldo:            l.SaldoResidual,
		})
	}

	if sinVencimiento > 0 {
		e.log.Warn().Int("lineas", sinVencimiento).
			Msg("líneas sin vencimiento resoluble, clasificadas a la fecha")
	}
	for ciudad, n := range sinZona {
		e.log.Warn().Str("ciudad", ciudad).Int("registros", n).
			Msg("ciudad sin zona, agregar a la tabla si corresponde")
	}

	return saldos
}

// etiqueta arma el texto visible del documento. En asientos de apertura la
// glosa identifica el saldo arrastrado, salvo que sea el placeholder "/".
func etiqueta(doc entity.Documento, glosa string) string {
	glosa = strings.TrimSpace(glosa)
	if doc.EsApertura() && glosa != "" && glosa != "/" {
		return doc.Nombre + " - " + glosa
	}
	return doc.Nombre
}

// esChequeEnCartera detecta referencias tipo "Cheque en cartera #44",
// sin distinguir mayúsculas ni tildes.
func esChequeEnCartera(referencia string) bool {
	ref := territory.Normalizar(referencia)
	return strings.Contains(ref, "cheque") && strings.Contains(ref, "cartera")
}

// primeraFecha devuelve la primera fecha no nula, o nil.
func primeraFecha(fechas ...*time.Time) *time.Time {
	for _, f := range fechas {
		if f != nil && !f.IsZero() {
			return f
		}
	}
	return nil
}

func fechaNoVacia(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// medianoche normaliza a las 00:00 del mismo día.
func medianoche(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// diasEntre cuenta días calendario entre el vencimiento y hoy (positivo =
// atrasado), ignorando la hora de ambos. El redondeo absorbe los días de 23 o
// 25 horas por cambio de hora.
func diasEntre(venc, hoy time.Time) int {
	return int(math.Round(hoy.Sub(medianoche(venc)).Hours() / 24))
}
