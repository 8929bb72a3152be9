package entity

import "time"

// SaleKind tipo de venta del back-office.
type SaleKind string

const (
	SaleKindStore   SaleKind = "store"
	SaleKindOnline  SaleKind = "online"
	SaleKindAdvance SaleKind = "advance"
)

// SaleKinds orden fijo de los tipos de venta (series del gráfico de actividad).
var SaleKinds = []SaleKind{SaleKindOnline, SaleKindAdvance, SaleKindStore}

// Status estado de una venta. Cada tipo de venta maneja su propio conjunto.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusCompleted Status = "COMPLETED"
	StatusReturned  Status = "RETURNED"
	StatusCanceled  Status = "CANCELED"
)

// Sale raíz monetaria de una venta: montos y ledger de inventario.
type Sale struct {
	ID             Ref            `json:"id"`
	TotalAmount    Number         `json:"totalAmount"`
	DiscountAmount Number         `json:"discountAmount"`
	StockMovement  *StockMovement `json:"stockMovement,omitempty"`
}

// Items líneas del ledger de la venta.
func (s Sale) Items() []StockMovementItem {
	return s.StockMovement.LedgerItems()
}

// SaleRecord vista común de las tres envolturas de venta.
type SaleRecord interface {
	Kind() SaleKind
	CurrentStatus() Status
	// CompletionTime fecha que ubica la venta en el calendario; false si no existe.
	CompletionTime() (time.Time, bool)
	Ledger() Sale
}

// StoreSale venta en tienda física.
type StoreSale struct {
	ID          Ref       `json:"id"`
	Status      Status    `json:"status"`
	CompletedAt Timestamp `json:"completedAt"`
	Sale        Sale      `json:"sale"`
}

func (s StoreSale) Kind() SaleKind        { return SaleKindStore }
func (s StoreSale) CurrentStatus() Status { return s.Status }
func (s StoreSale) Ledger() Sale          { return s.Sale }
func (s StoreSale) CompletionTime() (time.Time, bool) {
	return s.CompletedAt.Time, s.CompletedAt.Present()
}

// OnlineSale venta online atribuida a un canal. ReturnCost se registra aparte al devolverse.
type OnlineSale struct {
	ID          Ref       `json:"id"`
	Status      Status    `json:"status"`
	CompletedAt Timestamp `json:"completedAt"`
	Channel     *Channel  `json:"channel,omitempty"`
	ReturnCost  Number    `json:"returnCost"`
	Sale        Sale      `json:"sale"`
}

func (s OnlineSale) Kind() SaleKind        { return SaleKindOnline }
func (s OnlineSale) CurrentStatus() Status { return s.Status }
func (s OnlineSale) Ledger() Sale          { return s.Sale }
func (s OnlineSale) CompletionTime() (time.Time, bool) {
	return s.CompletedAt.Time, s.CompletedAt.Present()
}

// ChannelName nombre del canal o UnknownGroup si la relación no viene cargada.
func (s OnlineSale) ChannelName() string {
	if s.Channel == nil || s.Channel.Name == "" {
		return UnknownGroup
	}
	return s.Channel.Name
}

// AdvanceSale venta con anticipo (apartado). No tiene completedAt: se usa UpdatedAt
// como fecha de cierre.
type AdvanceSale struct {
	ID        Ref       `json:"id"`
	Status    Status    `json:"status"`
	UpdatedAt Timestamp `json:"updatedAt"`
	Sale      Sale      `json:"sale"`
}

func (s AdvanceSale) Kind() SaleKind        { return SaleKindAdvance }
func (s AdvanceSale) CurrentStatus() Status { return s.Status }
func (s AdvanceSale) Ledger() Sale          { return s.Sale }
func (s AdvanceSale) CompletionTime() (time.Time, bool) {
	return s.UpdatedAt.Time, s.UpdatedAt.Present()
}

// SalesSnapshot colecciones ya cargadas sobre las que corre el motor de agregación.
type SalesSnapshot struct {
	Store   []StoreSale
	Online  []OnlineSale
	Advance []AdvanceSale
}

// Records aplana el snapshot en una sola colección heterogénea, en orden store, online, advance.
func (s SalesSnapshot) Records() []SaleRecord {
	out := make([]SaleRecord, 0, len(s.Store)+len(s.Online)+len(s.Advance))
	for _, r := range s.Store {
		out = append(out, r)
	}
	for _, r := range s.Online {
		out = append(out, r)
	}
	for _, r := range s.Advance {
		out = append(out, r)
	}
	return out
}
