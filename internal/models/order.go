package models

import (
	"time"

	"restaurant-panel/internal/utils"
)

// Order statuses as stored in the "pedidos" collection.
const (
	StatusPendente   = "pendente"
	StatusPreparando = "preparando"
	StatusPronto     = "pronto"
	StatusEntregue   = "entregue"
	StatusCancelado  = "cancelado"
)

type OrderItem struct {
	Nome       string  `json:"nome"`
	Preco      float64 `json:"preco"`
	Quantidade int     `json:"quantidade"`
}

// Order is a document from the "pedidos" collection, created by the customer
// ordering app. The dashboard only ever flips it to delivered; it never
// creates or deletes orders. Cliente is the in-memory join against the
// owner's profile and is never written back.
type Order struct {
	ID             string       `json:"id"`
	UID            string       `json:"uid,omitempty"`
	Status         string       `json:"status"`
	Items          []OrderItem  `json:"items"`
	Subtotal       float64      `json:"subtotal,omitempty"`
	DeliveryCost   float64      `json:"deliveryCost,omitempty"`
	Total          float64      `json:"total"`
	FormaPagamento string       `json:"formaPagamento,omitempty"`
	Delivery       string       `json:"delivery,omitempty"`
	Observacoes    string       `json:"observacoes,omitempty"`
	Concluido      bool         `json:"concluido"`
	Data           time.Time    `json:"data"`
	Cliente        *UserProfile `json:"cliente,omitempty"`
}

// IsConcluido reports completion in either of the stored forms: the newer
// concluido flag or the legacy delivered status.
func (o *Order) IsConcluido() bool {
	return o.Status == StatusEntregue || o.Concluido
}

// ComputedSubtotal sums the line items. Used when the ordering app did not
// store a subtotal.
func (o *Order) ComputedSubtotal() float64 {
	var sum float64
	for _, item := range o.Items {
		qty := item.Quantidade
		if qty == 0 {
			qty = 1
		}
		sum += item.Preco * float64(qty)
	}
	return sum
}

// EffectiveSubtotal prefers the stored subtotal and falls back to the
// computed one.
func (o *Order) EffectiveSubtotal() float64 {
	if o.Subtotal > 0 {
		return o.Subtotal
	}
	return o.ComputedSubtotal()
}

// EffectiveTotal prefers the stored total and falls back to subtotal plus
// delivery cost.
func (o *Order) EffectiveTotal() float64 {
	if o.Total > 0 {
		return o.Total
	}
	return o.EffectiveSubtotal() + o.DeliveryCost
}

// OrderFromDoc materializes a snapshot document into an Order. The "data"
// timestamp is normalized at this boundary; missing or unparseable values
// become the zero time so sorting can fall back to it.
func OrderFromDoc(id string, data map[string]interface{}) Order {
	order := Order{
		ID:             id,
		UID:            asString(data["uid"]),
		Status:         asString(data["status"]),
		Subtotal:       asFloat(data["subtotal"]),
		DeliveryCost:   asFloat(data["deliveryCost"]),
		Total:          asFloat(data["total"]),
		FormaPagamento: asString(data["formaPagamento"]),
		Delivery:       asString(data["delivery"]),
		Observacoes:    asString(data["observacoes"]),
		Concluido:      asBool(data["concluido"]),
		Data:           utils.NormalizeTimestamp(data["data"]),
	}
	if order.Status == "" {
		order.Status = StatusPendente
	}

	if rawItems, ok := data["items"].([]interface{}); ok {
		for _, rawItem := range rawItems {
			itemMap, ok := rawItem.(map[string]interface{})
			if !ok {
				continue
			}
			item := OrderItem{
				Nome:       asString(itemMap["nome"]),
				Preco:      asFloat(itemMap["preco"]),
				Quantidade: asInt(itemMap["quantidade"]),
			}
			if item.Quantidade == 0 {
				item.Quantidade = 1
			}
			order.Items = append(order.Items, item)
		}
	}

	return order
}
