package cobranza

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/natischnitzler/reporte-vendedores/internal/domain"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/attribution"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/repository"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/territory"
	"github.com/natischnitzler/reporte-vendedores/pkg/logger"
)

// TituloGeneral encabeza el reporte combinado de todos los vendedores.
const TituloGeneral = "Cobranza General"

// MensajeSinSaldos es el corto circuito cuando no hay nada pendiente.
const MensajeSinSaldos = "Sin saldos pendientes."

// Resultado es la salida de una corrida completa.
type Resultado struct {
	RunID       string
	Matriz      []ResumenCliente  // pivot cliente × tramo para reportes aguas abajo
	PorVendedor map[string][]byte // un PDF por vendedor con al menos un cliente
	General     []byte            // PDF combinado; nil si su render falló
	Fallidos    []string          // reportes cuyo render falló (la corrida sigue)
	Vacio       bool
	Mensaje     string
}

// ReporteUseCase orquesta la corrida: descubrimiento de cuentas, lecturas en
// bloque, atribución, extracción, agregación y render por vendedor. Todo el
// I/O externo ocurre al inicio; el cómputo posterior es puro.
type ReporteUseCase struct {
	fuente    repository.FuenteContable
	renderer  Renderizador
	extractor *Extractor
	log       *logger.Logger
}

// NewReporteUseCase construye el caso de uso inyectando sus dependencias.
func NewReporteUseCase(
	fuente repository.FuenteContable,
	renderer Renderizador,
	resolver *territory.Resolver,
	log *logger.Logger,
) *ReporteUseCase {
	return &ReporteUseCase{
		fuente:    fuente,
		renderer:  renderer,
		extractor: NewExtractor(resolver, log),
		log:       log,
	}
}

// Generar ejecuta una corrida con fecha de corte hoy.
//
// Errores: sin cuentas por cobrar descubiertas la corrida aborta con
// domain.ErrSinCuentasPorCobrar antes de producir salida alguna; una falla de
// render de un vendedor se registra en Fallidos y la corrida continúa; cero
// saldos pendientes no es error, devuelve Resultado con Vacio.
func (uc *ReporteUseCase) Generar(ctx context.Context, hoy time.Time) (*Resultado, error) {
	runID := uuid.NewString()
	log := uc.log.With().Str("run_id", runID).Logger()

	// ── 1. Descubrir cuentas por cobrar ───────────────────────────────────────
	cuentas, err := uc.fuente.CuentasPorCobrar(ctx)
	if err != nil {
		return nil, fmt.Errorf("cobranza: descubrir cuentas: %w", err)
	}
	if len(cuentas) == 0 {
		return nil, domain.ErrSinCuentasPorCobrar
	}
	log.Info().Int("cuentas", len(cuentas)).Msg("cuentas por cobrar encontradas")

	// ── 2. Lecturas en bloque, todas antes de computar ────────────────────────
	lineas, err := uc.fuente.LineasPendientes(ctx, cuentas)
	if err != nil {
		return nil, fmt.Errorf("cobranza: leer líneas: %w", err)
	}
	log.Info().Int("lineas", len(lineas)).Msg("líneas por cobrar candidatas")

	docIDs := make([]int64, 0, len(lineas))
	clienteIDs := make([]int64, 0, len(lineas))
	vistosDoc := make(map[int64]bool, len(lineas))
	vistosCli := make(map[int64]bool, len(lineas))
	for _, l := range lineas {
		if l.DocumentoID != 0 && !vistosDoc[l.DocumentoID] {
			vistosDoc[l.DocumentoID] = true
			docIDs = append(docIDs, l.DocumentoID)
		}
		if l.ClienteID != 0 && !vistosCli[l.ClienteID] {
			vistosCli[l.ClienteID] = true
			clienteIDs = append(clienteIDs, l.ClienteID)
		}
	}

	documentos, err := uc.fuente.Documentos(ctx, docIDs)
	if err != nil {
		return nil, fmt.Errorf("cobranza: leer documentos: %w", err)
	}
	clientes, err := uc.fuente.Clientes(ctx, clienteIDs)
	if err != nil {
		return nil, fmt.Errorf("cobranza: leer clientes: %w", err)
	}
	ventas, err := uc.fuente.VentasFacturadas(ctx)
	if err != nil {
		return nil, fmt.Errorf("cobranza: leer ventas facturadas: %w", err)
	}

	// ── 3. Atribución, extracción y agregación ────────────────────────────────
	base := make([]attribution.AsignacionBase, 0, len(clientes))
	for id, c := range clientes {
		base = append(base, attribution.AsignacionBase{ClienteID: id, Vendedor: c.Vendedor})
	}
	mapa := attribution.Construir(base, ventas)

	saldos := uc.extractor.Extraer(hoy, lineas, documentos, clientes, mapa)
	porDocumento := AgruparDocumentos(saldos)
	matriz := PivotClientes(porDocumento)
	log.Info().Int("documentos", len(porDocumento)).Int("clientes", len(matriz)).
		Msg("saldos agregados")

	resultado := &Resultado{
		RunID:       runID,
		Matriz:      matriz,
		PorVendedor: make(map[string][]byte),
	}
	if len(matriz) == 0 {
		resultado.Vacio = true
		resultado.Mensaje = MensajeSinSaldos
		log.Info().Msg(MensajeSinSaldos)
		return resultado, nil
	}

	// ── 4. Un reporte por vendedor; una falla no bota la corrida ──────────────
	for _, vendedor := range vendedores(matriz) {
		filasV, docsV := filtrarPorVendedor(matriz, porDocumento, vendedor)
		pdf, err := uc.renderer.Render(ctx,
			"Cobranza pendiente - "+vendedor, hoy, Eventos(filasV, docsV))
		if err != nil {
			log.Error().Err(err).Str("vendedor", vendedor).Msg("render fallido")
			resultado.Fallidos = append(resultado.Fallidos, vendedor)
			continue
		}
		resultado.PorVendedor[vendedor] = pdf
		log.Info().Str("vendedor", vendedor).Int("bytes", len(pdf)).Msg("reporte generado")
	}

	// ── 5. Reporte combinado sobre el conjunto completo ───────────────────────
	general, err := uc.renderer.Render(ctx, TituloGeneral, hoy, Eventos(matriz, porDocumento))
	if err != nil {
		log.Error().Err(err).Msg("render del reporte general fallido")
		resultado.Fallidos = append(resultado.Fallidos, TituloGeneral)
	} else {
		resultado.General = general
	}

	return resultado, nil
}

// vendedores extrae los nombres únicos con al menos una fila, ordenados. El
// nombre vacío (saldos sin atribución) solo aparece en el reporte general.
func vendedores(matriz []ResumenCliente) []string {
	vistos := map[string]bool{}
	nombres := make([]string, 0, 8)
	for _, fila := range matriz {
		if fila.Vendedor == "" || vistos[fila.Vendedor] {
			continue
		}
		vistos[fila.Vendedor] = true
		nombres = append(nombres, fila.Vendedor)
	}
	sort.Strings(nombres)
	return nombres
}

func filtrarPorVendedor(
	matriz []ResumenCliente,
	documentos []SaldoPendiente,
	vendedor string,
) ([]ResumenCliente, []SaldoPendiente) {
	filas := make([]ResumenCliente, 0, len(matriz))
	for _, f := range matriz {
		if f.Vendedor == vendedor {
			filas = append(filas, f)
		}
	}
	docs := make([]SaldoPendiente, 0, len(documentos))
	for _, d := range documentos {
		if d.Vendedor == vendedor {
			docs = append(docs, d)
		}
	}
	return filas, docs
}
