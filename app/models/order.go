package models

import "github.com/lojas7/produtos/pkg/collection"

// PlaceholderOrderID is sent as id_pedido; the intake service assigns the
// real order number.
const PlaceholderOrderID = 0

// OrderLine is one product inside a forwarded order.
type OrderLine struct {
	ProductID int64   `json:"id_produto"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
}

// OrderPayload is the body POSTed to the order-intake service.
type OrderPayload struct {
	OrderID  int         `json:"id_pedido"`
	Products []OrderLine `json:"produtos"`
}

// NewOrderPayload projects resolved summaries into an order, in the given order.
func NewOrderPayload(resolved []ProductSummary) OrderPayload {
	lines := collection.Map(resolved, func(s ProductSummary) OrderLine {
		return OrderLine{ProductID: s.ID, Title: s.Title, Price: s.Price}
	})
	return OrderPayload{OrderID: PlaceholderOrderID, Products: lines}
}

// OrderRequest is the inbound body of POST /produtos_enviar. A missing or
// null product_ids is rejected; an empty list is accepted and resolves to
// nothing.
type OrderRequest struct {
	ProductIDs *[]int64 `json:"product_ids" validate:"required"`
}

// IDs returns the requested ids, or nil.
func (r OrderRequest) IDs() []int64 {
	if r.ProductIDs == nil {
		return nil
	}
	return *r.ProductIDs
}
