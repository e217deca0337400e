package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is one itemized row of a submitted order.
type OrderLine struct {
	ProductName string          `json:"product"`
	Weight      WeightTier      `json:"weight"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
	LineTotal   decimal.Decimal `json:"total"`
}

// OrderPayload is the write-once snapshot handed to the order intake
// endpoint. It is built fresh at submission time from the current cart
// snapshot plus the contact form and is never stored; mutations to the live
// cart after it is built do not affect it.
type OrderPayload struct {
	OrderID      string          `json:"order_id"`
	CustomerName string          `json:"customerName"`
	Address      string          `json:"address"`
	Phone        string          `json:"phone"`
	Lines        []OrderLine     `json:"items"`
	GrandTotal   decimal.Decimal `json:"totalAmount"`
	SubmittedAt  time.Time       `json:"submittedAt"`
}
