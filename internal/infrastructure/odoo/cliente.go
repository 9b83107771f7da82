// Package odoo implementa la fuente contable contra la API externa JSON-RPC
// de Odoo. Usa net/http de la stdlib; no requiere librerías de terceros.
package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/natischnitzler/reporte-vendedores/pkg/config"
)

const (
	servicioComun  = "common"
	servicioObjeto = "object"
)

// Cliente es el transporte JSON-RPC hacia /jsonrpc. No es seguro para uso
// concurrente; el pipeline es secuencial y comparte una sola instancia.
type Cliente struct {
	httpClient *http.Client
	url        string
	db         string
	usuario    string
	clave      string
	uid        int64
	secuencia  int64
}

// NewCliente construye el cliente con un timeout de red generoso (120 s):
// las lecturas masivas de líneas contables pueden tardar varios segundos.
func NewCliente(cfg config.OdooConfig) *Cliente {
	return &Cliente{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		url:        cfg.URL,
		db:         cfg.DB,
		usuario:    cfg.Usuario,
		clave:      cfg.Clave,
	}
}

// ── Estructuras JSON-RPC ──────────────────────────────────────────────────────

type peticionRPC struct {
	Jsonrpc string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  paramsRPC `json:"params"`
	ID      int64     `json:"id"`
}

type paramsRPC struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type respuestaRPC struct {
	Result json.RawMessage `json:"result"`
	Error  *errorRPC       `json:"error"`
}

type errorRPC struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

func (e *errorRPC) Error() string {
	if e.Data.Message != "" {
		return fmt.Sprintf("odoo rpc %d: %s", e.Code, e.Data.Message)
	}
	return fmt.Sprintf("odoo rpc %d: %s", e.Code, e.Message)
}

// llamar hace un POST a /jsonrpc y decodifica el resultado en out.
func (c *Cliente) llamar(ctx context.Context, servicio, metodo string, args []any, out any) error {
	c.secuencia++
	cuerpo, err := json.Marshal(peticionRPC{
		Jsonrpc: "2.0",
		Method:  "call",
		Params:  paramsRPC{Service: servicio, Method: metodo, Args: args},
		ID:      c.secuencia,
	})
	if err != nil {
		return fmt.Errorf("odoo: serializar petición: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/jsonrpc", bytes.NewReader(cuerpo))
	if err != nil {
		return fmt.Errorf("odoo: armar petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("odoo: %s.%s: %w", servicio, metodo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("odoo: %s.%s: HTTP %d", servicio, metodo, resp.StatusCode)
	}

	datos, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("odoo: leer respuesta: %w", err)
	}
	var r respuestaRPC
	if err := json.Unmarshal(datos, &r); err != nil {
		return fmt.Errorf("odoo: decodificar respuesta: %w", err)
	}
	if r.Error != nil {
		return r.Error
	}
	if out != nil {
		if err := json.Unmarshal(r.Result, out); err != nil {
			return fmt.Errorf("odoo: decodificar resultado de %s.%s: %w", servicio, metodo, err)
		}
	}
	return nil
}

// Autenticar obtiene el uid de sesión. ExecuteKw lo invoca solo cuando hace
// falta, así que normalmente no se llama directo.
func (c *Cliente) Autenticar(ctx context.Context) error {
	var uid int64
	err := c.llamar(ctx, servicioComun, "login", []any{c.db, c.usuario, c.clave}, &uid)
	if err != nil {
		return fmt.Errorf("odoo: autenticar: %w", err)
	}
	if uid == 0 {
		return fmt.Errorf("odoo: autenticar: credenciales rechazadas para %q", c.usuario)
	}
	c.uid = uid
	return nil
}

// ExecuteKw invoca modelo.metodo con args posicionales y kwargs opcionales,
// decodificando el resultado en out.
func (c *Cliente) ExecuteKw(ctx context.Context, modelo, metodo string, args []any, kw map[string]any, out any) error {
	if c.uid == 0 {
		if err := c.Autenticar(ctx); err != nil {
			return err
		}
	}
	rpcArgs := []any{c.db, c.uid, c.clave, modelo, metodo, args}
	if kw != nil {
		rpcArgs = append(rpcArgs, kw)
	}
	return c.llamar(ctx, servicioObjeto, "execute_kw", rpcArgs, out)
}

// Search devuelve los ids que calzan con el dominio, acotados a limite.
func (c *Cliente) Search(ctx context.Context, modelo string, dominio []any, limite int) ([]int64, error) {
	var ids []int64
	err := c.ExecuteKw(ctx, modelo, "search",
		[]any{dominio}, map[string]any{"limit": limite}, &ids)
	if err != nil {
		return nil, fmt.Errorf("buscar %s: %w", modelo, err)
	}
	return ids, nil
}

// Read lee los campos pedidos de los ids dados, decodificando en out.
func (c *Cliente) Read(ctx context.Context, modelo string, ids []int64, campos []string, out any) error {
	err := c.ExecuteKw(ctx, modelo, "read",
		[]any{ids}, map[string]any{"fields": campos}, out)
	if err != nil {
		return fmt.Errorf("leer %s: %w", modelo, err)
	}
	return nil
}
