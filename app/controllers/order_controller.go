package controllers

import (
	"net/http"

	"github.com/lojas7/produtos/app/models"
	"github.com/lojas7/produtos/app/services"
	"github.com/lojas7/produtos/pkg/ctx"
)

// OrderController accepts order requests and forwards them downstream.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Send handles POST /produtos_enviar.
func (oc *OrderController) Send(c *ctx.Context) {
	var input models.OrderRequest
	if !c.BindJSON(&input) {
		return
	}

	out := oc.orders.Forward(c.Context(), input.IDs())
	switch {
	case out.Status == services.OrderSent:
		c.Message(http.StatusOK, msgOrderSent)
	case out.Status == services.OrderNotFound:
		c.Error(http.StatusNotFound, msgOrderNotFound)
	case out.Downstream():
		c.Error(http.StatusInternalServerError, msgOrderDownstream+out.Err.Error())
	default:
		c.Error(http.StatusInternalServerError, msgOrderInternal+out.Err.Error())
	}
}
