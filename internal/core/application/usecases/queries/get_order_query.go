// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models built with plain SQL, bypassing the aggregates.
package queries

import (
	"errors"
	"strings"
	"time"

	"orderintake/internal/pkg/errs"
	"orderintake/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one non-deleted order of a merchant by the
// merchant's own order identifier.
//
// Example:
//
//	query, err := NewGetOrderQuery(42, "ORD-1001")
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
//	fmt.Println(view.Status, view.Zone, view.TotalAmount)
type GetOrderQuery struct {
	merchantID uint64
	orderID    string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates the query. Both identifiers are required.
func NewGetOrderQuery(merchantID uint64, orderID string) (GetOrderQuery, error) {
	orderID = strings.TrimSpace(orderID)

	var err error
	if merchantID == 0 {
		err = errors.Join(err, errs.NewValueIsRequiredError("merchant_id"))
	}
	if orderID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("order_id"))
	}
	if err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		merchantID: merchantID,
		orderID:    orderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) MerchantID() uint64 { return q.merchantID }
func (q GetOrderQuery) OrderID() string    { return q.orderID }

// GetOrderQueryResponse is the order read model.
type GetOrderQueryResponse struct {
	InternalID       uint64
	OrderID          string
	MerchantID       uint64
	Channel          string
	OrderDate        time.Time
	Status           string
	SubStatus        string
	Zone             string
	PaymentMode      string
	PickupLocation   string
	ConsigneeName    string
	ConsigneePincode string
	ConsigneeCity    string
	ConsigneeState   string
	OrderValue       decimal.Decimal
	TaxAmount        decimal.Decimal
	TotalAmount      decimal.Decimal
	CODToCollect     decimal.Decimal
	DeadWeight       decimal.Decimal
	VolumetricWeight decimal.Decimal
	ApplicableWeight decimal.Decimal
	AWBNumber        *string
	CreatedAt        time.Time
	LineItems        []GetOrderQueryLineItem
}

// GetOrderQueryLineItem is a line item in the order read model.
type GetOrderQueryLineItem struct {
	Name      string
	SKU       string
	HSNCode   string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}
