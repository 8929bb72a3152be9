// Package backoffice adapta la API REST del back-office como fuente de ventas.
package backoffice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jhoicas/sales-insights/internal/domain/entity"
	"github.com/jhoicas/sales-insights/internal/domain/repository"
)

// Verificar en tiempo de compilación que Client implementa SalesSource.
var _ repository.SalesSource = (*Client)(nil)

const (
	storeSalesPath   = "/store-sales"
	onlineSalesPath  = "/online-sales"
	advanceSalesPath = "/advance-sales"

	maxBodyBytes = 32 << 20
)

// Config parámetros del cliente.
type Config struct {
	BaseURL  string
	Token    string // Bearer opcional
	PageSize int
	MaxPages int // 0 = sin límite
	Timeout  time.Duration
}

// Client consume los listados paginados del back-office usando net/http.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient construye el adaptador.
func NewClient(cfg Config) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ── Envoltura de respuesta del back-office ────────────────────────────────────

// envelope {status, data: {items, meta}} de los listados paginados.
type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Items []T      `json:"items"`
		Meta  pageMeta `json:"meta"`
	} `json:"data"`
}

type pageMeta struct {
	TotalItems   int `json:"totalItems"`
	ItemCount    int `json:"itemCount"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// ListStoreSales GET /store-sales (todas las páginas).
func (c *Client) ListStoreSales(ctx context.Context, q repository.SalesQuery) ([]entity.StoreSale, error) {
	return fetchAll[entity.StoreSale](ctx, c, storeSalesPath, q)
}

// ListOnlineSales GET /online-sales (todas las páginas).
func (c *Client) ListOnlineSales(ctx context.Context, q repository.SalesQuery) ([]entity.OnlineSale, error) {
	return fetchAll[entity.OnlineSale](ctx, c, onlineSalesPath, q)
}

// ListAdvanceSales GET /advance-sales (todas las páginas).
func (c *Client) ListAdvanceSales(ctx context.Context, q repository.SalesQuery) ([]entity.AdvanceSale, error) {
	return fetchAll[entity.AdvanceSale](ctx, c, advanceSalesPath, q)
}

// fetchAll recorre las páginas hasta currentPage >= totalPages, una página vacía o MaxPages.
func fetchAll[T any](ctx context.Context, c *Client, path string, q repository.SalesQuery) ([]T, error) {
	var all []T
	for page := 1; c.cfg.MaxPages <= 0 || page <= c.cfg.MaxPages; page++ {
		env, err := getPage[T](ctx, c, path, q, page)
		if err != nil {
			return nil, err
		}
		all = append(all, env.Data.Items...)

		meta := env.Data.Meta
		if len(env.Data.Items) == 0 || meta.TotalPages == 0 || meta.CurrentPage >= meta.TotalPages {
			break
		}
	}
	return all, nil
}

func getPage[T any](ctx context.Context, c *Client, path string, q repository.SalesQuery, page int) (*envelope[T], error) {
	u, err := url.Parse(c.cfg.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("backoffice: URL inválida: %w", err)
	}
	params := u.Query()
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(c.cfg.PageSize))
	if !q.From.IsZero() {
		params.Set("from", q.From.UTC().Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		params.Set("to", q.To.UTC().Format(time.RFC3339))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("backoffice: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("backoffice: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("backoffice: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("backoffice: leer respuesta: %w", err)
	}

	var env envelope[T]
	if resp.StatusCode != http.StatusOK {
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil && env.Message != "" {
			return nil, fmt.Errorf("backoffice: GET %s HTTP %d: %s", path, resp.StatusCode, env.Message)
		}
		return nil, fmt.Errorf("backoffice: GET %s HTTP %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("backoffice: deserializar %s página %d: %w", path, page, err)
	}
	return &env, nil
}
