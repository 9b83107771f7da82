package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/natischnitzler/reporte-vendedores/internal/application/cobranza"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/repository"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/territory"
	"github.com/natischnitzler/reporte-vendedores/internal/infrastructure/odoo"
	"github.com/natischnitzler/reporte-vendedores/internal/infrastructure/pdf"
	"github.com/natischnitzler/reporte-vendedores/internal/infrastructure/postgres"
	"github.com/natischnitzler/reporte-vendedores/pkg/config"
	"github.com/natischnitzler/reporte-vendedores/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reporte",
		Short: "Reporte de cobranza pendiente por vendedor",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newGenerarCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newGenerarCommand() *cobra.Command {
	var fecha string
	var directorio string

	cmd := &cobra.Command{
		Use:   "generar",
		Short: "Genera los PDF de cobranza (uno por vendedor más el general)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hoy := time.Now()
			if fecha != "" {
				t, err := time.Parse("2006-01-02", fecha)
				if err != nil {
					return fmt.Errorf("fecha inválida %q (use AAAA-MM-DD): %w", fecha, err)
				}
				hoy = t
			}
			return runGenerar(cmd.Context(), hoy, directorio)
		},
	}

	cmd.Flags().StringVar(&fecha, "fecha", "", "fecha de corte AAAA-MM-DD (default: hoy)")
	cmd.Flags().StringVar(&directorio, "dir", "", "directorio de salida (default: REPORTE_DIR)")

	return cmd
}

func runGenerar(ctx context.Context, hoy time.Time, directorio string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if directorio == "" {
		directorio = cfg.Reporte.Directorio
	}
	if err := os.MkdirAll(directorio, 0o755); err != nil {
		return fmt.Errorf("crear directorio de salida: %w", err)
	}

	fuente, cerrar, err := nuevaFuente(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cerrar()

	uc := cobranza.NewReporteUseCase(
		fuente,
		pdf.NewMarotoRenderer(),
		territory.NewResolver(territory.TablaCiudades()),
		log,
	)

	resultado, err := uc.Generar(ctx, hoy)
	if err != nil {
		log.Error().Err(err).Msg("corrida abortada")
		return err
	}
	if resultado.Vacio {
		log.Info().Msg(resultado.Mensaje)
		fmt.Println(resultado.Mensaje)
		return nil
	}

	for vendedor, datos := range resultado.PorVendedor {
		ruta := filepath.Join(directorio, "cobranza_"+nombreArchivo(vendedor)+".pdf")
		if err := os.WriteFile(ruta, datos, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", ruta, err)
		}
		log.Info().Str("archivo", ruta).Msg("reporte escrito")
	}
	if resultado.General != nil {
		ruta := filepath.Join(directorio, "cobranza_general.pdf")
		if err := os.WriteFile(ruta, resultado.General, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", ruta, err)
		}
		log.Info().Str("archivo", ruta).Msg("reporte general escrito")
	}
	for _, fallido := range resultado.Fallidos {
		log.Warn().Str("reporte", fallido).Msg("reporte no generado por falla de render")
	}

	return nil
}

// nuevaFuente arma la fuente contable según FUENTE: la API JSON-RPC de Odoo o
// la lectura directa del esquema en PostgreSQL.
func nuevaFuente(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.FuenteContable, func(), error) {
	switch cfg.Fuente {
	case config.FuentePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		fuente := postgres.NewFuente(pool, cfg.Reporte.CodigoCuenta, cfg.Reporte.NombreCuenta, log)
		return fuente, pool.Close, nil
	default:
		cli := odoo.NewCliente(cfg.Odoo)
		fuente := odoo.NewFuente(cli, cfg.Reporte.CodigoCuenta, cfg.Reporte.NombreCuenta, log)
		return fuente, func() {}, nil
	}
}

// nombreArchivo vuelve un nombre de vendedor apto para archivo: mayúsculas y
// todo lo que no sea letra, dígito o guion pasa a guion bajo.
func nombreArchivo(nombre string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(nombre)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
