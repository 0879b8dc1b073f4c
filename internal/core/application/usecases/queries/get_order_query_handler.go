package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"orderintake/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order and its line items with plain SQL.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(42, "ORD-1001")
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s is %s with %d items\n", view.OrderID, view.Status, len(view.LineItems))
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates the handler.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the read model or an errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var resp GetOrderQueryResponse
	err := db.Raw(`
		SELECT
			id,
			order_id,
			merchant_id,
			channel,
			order_date,
			status,
			sub_status,
			zone,
			payment_mode,
			pickup_location_code,
			consignee_name,
			consignee_pincode,
			consignee_city,
			consignee_state,
			order_value,
			tax_amount,
			total_amount,
			cod_to_collect,
			weight,
			volumetric_weight,
			applicable_weight,
			awb_number,
			created_at
		FROM orders
		WHERE merchant_id = ? AND order_id = ? AND deleted_at IS NULL
	`, query.MerchantID(), query.OrderID()).Row().Scan(
		&resp.InternalID,
		&resp.OrderID,
		&resp.MerchantID,
		&resp.Channel,
		&resp.OrderDate,
		&resp.Status,
		&resp.SubStatus,
		&resp.Zone,
		&resp.PaymentMode,
		&resp.PickupLocation,
		&resp.ConsigneeName,
		&resp.ConsigneePincode,
		&resp.ConsigneeCity,
		&resp.ConsigneeState,
		&resp.OrderValue,
		&resp.TaxAmount,
		&resp.TotalAmount,
		&resp.CODToCollect,
		&resp.DeadWeight,
		&resp.VolumetricWeight,
		&resp.ApplicableWeight,
		&resp.AWBNumber,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
		}
		return GetOrderQueryResponse{}, fmt.Errorf("failed to read order %s: %w", query.OrderID(), err)
	}

	rows, err := db.Raw(`
		SELECT
			name,
			sku,
			hsn_code,
			quantity,
			unit_price,
			total
		FROM order_line_items
		WHERE order_id = ?
		ORDER BY id
	`, resp.InternalID).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	resp.LineItems = make([]GetOrderQueryLineItem, 0)
	for rows.Next() {
		var item GetOrderQueryLineItem
		if err = rows.Scan(
			&item.Name,
			&item.SKU,
			&item.HSNCode,
			&item.Quantity,
			&item.UnitPrice,
			&item.Total,
		); err != nil {
			return GetOrderQueryResponse{}, err
		}
		resp.LineItems = append(resp.LineItems, item)
	}

	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}
