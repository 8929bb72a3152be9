package repository

import (
	"context"
	"time"

	"github.com/jhoicas/sales-insights/internal/domain/entity"
)

// SalesQuery ventana temporal solicitada a la fuente. Es solo una pista: la fuente puede
// devolver ventas fuera de la ventana y el motor las descarta al agrupar.
type SalesQuery struct {
	From time.Time // inclusive
	To   time.Time // exclusive
}

// SalesSource define el puerto de lectura de ventas del back-office (DIP).
// Las implementaciones son read-only.
type SalesSource interface {
	ListStoreSales(ctx context.Context, q SalesQuery) ([]entity.StoreSale, error)
	ListOnlineSales(ctx context.Context, q SalesQuery) ([]entity.OnlineSale, error)
	ListAdvanceSales(ctx context.Context, q SalesQuery) ([]entity.AdvanceSale, error)
}
