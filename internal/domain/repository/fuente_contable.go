package repository

import (
	"context"

	"github.com/natischnitzler/reporte-vendedores/internal/domain/attribution"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/entity"
)

// FuenteContable es el puerto de lectura sobre el sistema contable externo.
// El pipeline es de solo lectura: trabaja sobre un snapshot puntual leído al
// inicio de la corrida y nunca muta el sistema de origen.
//
// Implementaciones: infrastructure/odoo (JSON-RPC) e infrastructure/postgres
// (lectura directa del esquema). Ambas leen por lotes de a 500 ids.
type FuenteContable interface {
	// CuentasPorCobrar descubre los ids de las cuentas por cobrar probando en
	// orden: patrón de código, tipo estándar asset_receivable, substring del
	// nombre. Gana la primera estrategia con resultados; si las tres quedan
	// vacías devuelve lista vacía y el caller aborta (domain.ErrSinCuentasPorCobrar).
	CuentasPorCobrar(ctx context.Context) ([]int64, error)

	// LineasPendientes trae las líneas de esas cuentas con documento publicado,
	// cliente asociado y sin conciliación total.
	LineasPendientes(ctx context.Context, cuentaIDs []int64) ([]entity.LineaContable, error)

	// Documentos lee las cabeceras de los asientos referidos por las líneas.
	Documentos(ctx context.Context, documentoIDs []int64) (map[int64]entity.Documento, error)

	// Clientes lee nombre, ciudad y vendedor de ficha de los clientes referidos.
	Clientes(ctx context.Context, clienteIDs []int64) (map[int64]entity.Cliente, error)

	// VentasFacturadas trae las facturas y notas de crédito publicadas con
	// vendedor asignado, para sobreescribir la atribución de la ficha.
	VentasFacturadas(ctx context.Context) ([]attribution.VentaFacturada, error)
}
