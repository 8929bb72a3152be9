package backoffice_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-insights/internal/domain/entity"
	"github.com/jhoicas/sales-insights/internal/domain/repository"
	"github.com/jhoicas/sales-insights/internal/infrastructure/backoffice"
)

const onlinePage = `{
  "status": "success",
  "data": {
    "items": [{
      "id": %d,
      "status": "COMPLETED",
      "completedAt": "2026-10-18T10:00:00.000Z",
      "channel": {"id": 1, "name": "Marketplace"},
      "returnCost": null,
      "sale": {
        "id": 90,
        "totalAmount": "150.00",
        "discountAmount": 0,
        "stockMovement": {"items": [{
          "variantId": 3, "purchaseItemId": 8, "quantity": 2, "price": 75,
          "purchaseItem": {"unitCost": 20, "purchase": {"costPerKg": 4}}
        }]}
      }
    }],
    "meta": {"totalItems": 2, "itemCount": 1, "itemsPerPage": 1, "totalPages": 2, "currentPage": %d}
  }
}`

func TestClient_RecorreTodasLasPaginas(t *testing.T) {
	var pages []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/online-sales", r.URL.Path)
		assert.Equal(t, "Bearer secreto", r.Header.Get("Authorization"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		page := r.URL.Query().Get("page")
		pages = append(pages, page)

		w.Header().Set("Content-Type", "application/json")
		switch page {
		case "1":
			fmt.Fprintf(w, onlinePage, 1, 1)
		default:
			fmt.Fprintf(w, onlinePage, 2, 2)
		}
	}))
	defer srv.Close()

	client := backoffice.NewClient(backoffice.Config{BaseURL: srv.URL, Token: "secreto", PageSize: 1})
	sales, err := client.ListOnlineSales(context.Background(), repository.SalesQuery{
		From: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, pages)
	require.Len(t, sales, 2)
	assert.Equal(t, entity.Ref("1"), sales[0].ID)
	assert.Equal(t, "Marketplace", sales[0].ChannelName())
	assert.Equal(t, 150.0, sales[0].Sale.TotalAmount.Float())
	assert.False(t, sales[0].ReturnCost.Valid())
	require.Len(t, sales[0].Sale.Items(), 1)
	assert.Equal(t, 4.0, sales[0].Sale.Items()[0].PurchaseItem.Purchase.CostPerKg.Float())
}

func TestClient_RespetaMaxPages(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, onlinePage, calls, 1) // currentPage nunca alcanza totalPages
	}))
	defer srv.Close()

	client := backoffice.NewClient(backoffice.Config{BaseURL: srv.URL, MaxPages: 3})
	sales, err := client.ListOnlineSales(context.Background(), repository.SalesQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, sales, 3)
}

func TestClient_PaginaVaciaTermina(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","data":{"items":[],"meta":{"totalPages":5,"currentPage":1}}}`)
	}))
	defer srv.Close()

	client := backoffice.NewClient(backoffice.Config{BaseURL: srv.URL})
	sales, err := client.ListStoreSales(context.Background(), repository.SalesQuery{})
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestClient_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"status":"error","message":"permiso insuficiente"}`)
	}))
	defer srv.Close()

	client := backoffice.NewClient(backoffice.Config{BaseURL: srv.URL})
	_, err := client.ListAdvanceSales(context.Background(), repository.SalesQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
	assert.Contains(t, err.Error(), "permiso insuficiente")
}
