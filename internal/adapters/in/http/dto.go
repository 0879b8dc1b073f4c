package http

import (
	"orderintake/internal/core/application/usecases/commands"
	"orderintake/internal/core/application/usecases/queries"
	"orderintake/internal/core/application/validation"
	"orderintake/internal/core/domain/model/order"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the JSON body of POST /api/v1/orders.
// Numbers are decoded into decimal.NullDecimal so that an omitted or null
// amount stays distinguishable from zero.
type CreateOrderRequest struct {
	OrderID                string              `json:"order_id"`
	OrderDate              openapi_types.Date  `json:"order_date"`
	Channel                string              `json:"channel"`
	Consignee              AddressRequest      `json:"consignee"`
	Billing                *AddressRequest     `json:"billing"`
	BillingSameAsConsignee bool                `json:"billing_same_as_consignee"`
	PickupLocation         string              `json:"pickup_location"`
	PaymentMode            string              `json:"payment_mode"`
	Products               []ProductRequest    `json:"products"`
	Package                PackageRequest      `json:"package"`
	Charges                ChargesRequest      `json:"charges"`
	CODToCollect           decimal.NullDecimal `json:"cod_to_collect"`
}

type AddressRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AltPhone     string `json:"alt_phone"`
	Email        string `json:"email"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	Landmark     string `json:"landmark"`
	Pincode      string `json:"pincode"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	CompanyName  string `json:"company_name"`
	GSTIN        string `json:"gstin"`
}

type ProductRequest struct {
	Name      string              `json:"name"`
	SKU       string              `json:"sku"`
	HSNCode   string              `json:"hsn_code"`
	Quantity  int                 `json:"quantity"`
	UnitPrice decimal.NullDecimal `json:"unit_price"`
}

type PackageRequest struct {
	Weight  decimal.NullDecimal `json:"weight"`
	Length  decimal.NullDecimal `json:"length"`
	Breadth decimal.NullDecimal `json:"breadth"`
	Height  decimal.NullDecimal `json:"height"`
}

type ChargesRequest struct {
	Shipping      decimal.NullDecimal `json:"shipping"`
	CODCharge     decimal.NullDecimal `json:"cod_charge"`
	GiftWrap      decimal.NullDecimal `json:"gift_wrap"`
	Other         decimal.NullDecimal `json:"other"`
	Discount      decimal.NullDecimal `json:"discount"`
	TaxAmount     decimal.NullDecimal `json:"tax_amount"`
	TaxPercentage decimal.NullDecimal `json:"tax_percentage"`
}

// ToDraft converts the body into the domain draft.
func (r CreateOrderRequest) ToDraft() order.Draft {
	draft := order.Draft{
		OrderID:                r.OrderID,
		OrderDate:              r.OrderDate.Time,
		Channel:                r.Channel,
		Consignee:              r.Consignee.toDomain(),
		BillingSameAsConsignee: r.BillingSameAsConsignee,
		PickupLocationCode:     r.PickupLocation,
		PaymentMode:            r.PaymentMode,
		Products:               make([]order.Product, len(r.Products)),
		Package: order.Package{
			Weight:  r.Package.Weight,
			Length:  r.Package.Length,
			Breadth: r.Package.Breadth,
			Height:  r.Package.Height,
		},
		Charges: order.Charges{
			Shipping:      r.Charges.Shipping,
			CODCharge:     r.Charges.CODCharge,
			GiftWrap:      r.Charges.GiftWrap,
			Other:         r.Charges.Other,
			Discount:      r.Charges.Discount,
			TaxAmount:     r.Charges.TaxAmount,
			TaxPercentage: r.Charges.TaxPercentage,
		},
		CODToCollect: r.CODToCollect,
	}

	if r.Billing != nil {
		billing := r.Billing.toDomain()
		draft.Billing = &billing
	}
	for i, p := range r.Products {
		draft.Products[i] = order.Product{
			Name:      p.Name,
			SKU:       p.SKU,
			HSNCode:   p.HSNCode,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
		}
	}
	return draft
}

func (a AddressRequest) toDomain() order.Address {
	return order.Address{
		Name:         a.Name,
		Phone:        a.Phone,
		AltPhone:     a.AltPhone,
		Email:        a.Email,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		Landmark:     a.Landmark,
		Pincode:      a.Pincode,
		City:         a.City,
		State:        a.State,
		Country:      a.Country,
		CompanyName:  a.CompanyName,
		GSTIN:        a.GSTIN,
	}
}

// CreatedOrderResponse is the 201 body.
type CreatedOrderResponse struct {
	OrderID    string   `json:"order_id"`
	InternalID uint64   `json:"internal_id"`
	Zone       string   `json:"zone"`
	Warnings   []string `json:"warnings"`
}

func createdOrderFromResult(result commands.CreateOrderResult) CreatedOrderResponse {
	return CreatedOrderResponse{
		OrderID:    result.OrderID,
		InternalID: result.InternalID,
		Zone:       result.Zone,
		Warnings:   nonNil(result.Warnings),
	}
}

// FieldErrorResponse is one entry of ErrorResponse.Errors.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code     string               `json:"code"`
	Message  string               `json:"message"`
	Field    string               `json:"field,omitempty"`
	Details  map[string]string    `json:"details,omitempty"`
	Errors   []FieldErrorResponse `json:"errors,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
}

func errorFromIntake(e *commands.CreateOrderError) ErrorResponse {
	resp := ErrorResponse{
		Code:     e.Code,
		Message:  e.Message,
		Field:    e.Field,
		Details:  e.Details,
		Warnings: e.Warnings,
	}
	for _, fe := range e.Errors {
		resp.Errors = append(resp.Errors, fieldErrorFromValidation(fe))
	}
	return resp
}

func fieldErrorFromValidation(fe validation.FieldError) FieldErrorResponse {
	return FieldErrorResponse{Field: fe.Field, Code: fe.Code, Message: fe.Message}
}

// OrderResponse is the 200 body of GET /api/v1/orders/{order_id}.
type OrderResponse struct {
	InternalID       uint64             `json:"internal_id"`
	OrderID          string             `json:"order_id"`
	Channel          string             `json:"channel"`
	OrderDate        openapi_types.Date `json:"order_date"`
	Status           string             `json:"status"`
	SubStatus        string             `json:"sub_status"`
	Zone             string             `json:"zone"`
	PaymentMode      string             `json:"payment_mode"`
	PickupLocation   string             `json:"pickup_location"`
	ConsigneeName    string             `json:"consignee_name"`
	ConsigneePincode string             `json:"consignee_pincode"`
	ConsigneeCity    string             `json:"consignee_city"`
	ConsigneeState   string             `json:"consignee_state"`
	OrderValue       string             `json:"order_value"`
	TaxAmount        string             `json:"tax_amount"`
	TotalAmount      string             `json:"total_amount"`
	CODToCollect     string             `json:"cod_to_collect"`
	DeadWeight       string             `json:"dead_weight"`
	VolumetricWeight string             `json:"volumetric_weight"`
	ApplicableWeight string             `json:"applicable_weight"`
	AWBNumber        *string            `json:"awb_number"`
	CreatedAt        string             `json:"created_at"`
	LineItems        []LineItemResponse `json:"line_items"`
}

type LineItemResponse struct {
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	HSNCode   string `json:"hsn_code"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

func orderFromView(v queries.GetOrderQueryResponse) OrderResponse {
	resp := OrderResponse{
		InternalID:       v.InternalID,
		OrderID:          v.OrderID,
		Channel:          v.Channel,
		OrderDate:        openapi_types.Date{Time: v.OrderDate},
		Status:           v.Status,
		SubStatus:        v.SubStatus,
		Zone:             v.Zone,
		PaymentMode:      v.PaymentMode,
		PickupLocation:   v.PickupLocation,
		ConsigneeName:    v.ConsigneeName,
		ConsigneePincode: v.ConsigneePincode,
		ConsigneeCity:    v.ConsigneeCity,
		ConsigneeState:   v.ConsigneeState,
		OrderValue:       v.OrderValue.StringFixed(2),
		TaxAmount:        v.TaxAmount.StringFixed(2),
		TotalAmount:      v.TotalAmount.StringFixed(2),
		CODToCollect:     v.CODToCollect.StringFixed(2),
		DeadWeight:       v.DeadWeight.StringFixed(3),
		VolumetricWeight: v.VolumetricWeight.StringFixed(3),
		ApplicableWeight: v.ApplicableWeight.StringFixed(3),
		AWBNumber:        v.AWBNumber,
		CreatedAt:        v.CreatedAt.UTC().Format(timeLayout),
		LineItems:        make([]LineItemResponse, len(v.LineItems)),
	}
	for i, item := range v.LineItems {
		resp.LineItems[i] = LineItemResponse{
			Name:      item.Name,
			SKU:       item.SKU,
			HSNCode:   item.HSNCode,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Total:     item.Total.StringFixed(2),
		}
	}
	return resp
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
