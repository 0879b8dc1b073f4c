// Package orderrepo persists the order aggregate: the orders row, its line
// items and its audit entries. It maps between domain objects and GORM DTOs
// and turns the (order_id, merchant_id) uniqueness violation into an explicit
// conflict outcome.
package orderrepo

import (
	"time"

	"orderintake/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row.
type OrderDTO struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	OrderID    string `gorm:"column:order_id"`
	MerchantID uint64
	Channel    string
	OrderDate  time.Time `gorm:"type:date"`

	Consignee              AddressDTO `gorm:"embedded;embeddedPrefix:consignee_"`
	Billing                AddressDTO `gorm:"embedded;embeddedPrefix:billing_"`
	BillingSameAsConsignee bool

	PickupLocationCode string
	PickupPincode      string
	Zone               string
	PaymentMode        string

	ShippingCharges decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	CODCharges      decimal.NullDecimal `gorm:"column:cod_charges;type:numeric(12,2)"`
	GiftWrapCharges decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	OtherCharges    decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Discount        decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	FlatTaxAmount   decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	TaxPercentage   decimal.NullDecimal `gorm:"type:numeric(5,2)"`

	OrderValue   decimal.Decimal `gorm:"type:numeric(14,2)"`
	TaxAmount    decimal.Decimal `gorm:"type:numeric(14,2)"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(14,2)"`
	CODToCollect decimal.Decimal `gorm:"column:cod_to_collect;type:numeric(14,2)"`

	Weight           decimal.Decimal `gorm:"type:numeric(8,3)"`
	Length           decimal.Decimal `gorm:"type:numeric(8,2)"`
	Breadth          decimal.Decimal `gorm:"type:numeric(8,2)"`
	Height           decimal.Decimal `gorm:"type:numeric(8,2)"`
	VolumetricWeight decimal.Decimal `gorm:"type:numeric(10,3)"`
	ApplicableWeight decimal.Decimal `gorm:"type:numeric(10,3)"`

	Status           string
	SubStatus        string
	IsLabelGenerated bool
	CancelCount      int
	AWBNumber        *string `gorm:"column:awb_number"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// TableName overrides GORM's default naming.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is embedded twice in the orders row, once per prefix.
type AddressDTO struct {
	Name         string `gorm:"column:name"`
	Phone        string `gorm:"column:phone"`
	AltPhone     string `gorm:"column:alt_phone"`
	Email        string `gorm:"column:email"`
	AddressLine1 string `gorm:"column:address_line1"`
	AddressLine2 string `gorm:"column:address_line2"`
	Landmark     string `gorm:"column:landmark"`
	Pincode      string `gorm:"column:pincode"`
	City         string `gorm:"column:city"`
	State        string `gorm:"column:state"`
	Country      string `gorm:"column:country"`
	CompanyName  string `gorm:"column:company_name"`
	GSTIN        string `gorm:"column:gstin"`
}

// LineItemDTO is an order_line_items row.
type LineItemDTO struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	OrderID   uint64 `gorm:"column:order_id"`
	Name      string
	SKU       string `gorm:"column:sku"`
	HSNCode   string `gorm:"column:hsn_code"`
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total     decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName overrides GORM's default naming.
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// AuditEntryDTO is an order_audit_entries row.
type AuditEntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uint64    `gorm:"column:order_id"`
	Action     string
	Actor      string
	Source     string
	OccurredAt time.Time
}

// TableName overrides GORM's default naming.
func (AuditEntryDTO) TableName() string {
	return "order_audit_entries"
}

func addressFromDomain(a order.Address) AddressDTO {
	return AddressDTO{
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

func (a AddressDTO) toDomain() order.Address {
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

// fromDomain converts the aggregate into its row. The primary key is left
// zero so that the database assigns it.
func fromDomain(o *order.Order) OrderDTO {
	charges := o.Charges()
	amounts := o.Amounts()
	parcel := o.Parcel()

	var awb *string
	if number, ok := o.AWBNumber(); ok {
		awb = &number
	}

	return OrderDTO{
		ID:                     o.InternalID(),
		OrderID:                o.OrderID(),
		MerchantID:             o.MerchantID(),
		Channel:                o.Channel(),
		OrderDate:              o.OrderDate(),
		Consignee:              addressFromDomain(o.Consignee()),
		Billing:                addressFromDomain(o.Billing()),
		BillingSameAsConsignee: o.BillingSameAsConsignee(),
		PickupLocationCode:     o.PickupLocationCode(),
		PickupPincode:          o.PickupPincode(),
		Zone:                   o.Zone(),
		PaymentMode:            o.PaymentMode().String(),
		ShippingCharges:        charges.Shipping,
		CODCharges:             charges.CODCharge,
		GiftWrapCharges:        charges.GiftWrap,
		OtherCharges:           charges.Other,
		Discount:               charges.Discount,
		FlatTaxAmount:          charges.TaxAmount,
		TaxPercentage:          charges.TaxPercentage,
		OrderValue:             amounts.OrderValue,
		TaxAmount:              amounts.TaxAmount,
		TotalAmount:            amounts.TotalAmount,
		CODToCollect:           amounts.CODToCollect,
		Weight:                 parcel.DeadWeight,
		Length:                 parcel.Length,
		Breadth:                parcel.Breadth,
		Height:                 parcel.Height,
		VolumetricWeight:       parcel.VolumetricWeight,
		ApplicableWeight:       parcel.ApplicableWeight,
		Status:                 o.Status().String(),
		SubStatus:              o.SubStatus(),
		IsLabelGenerated:       o.IsLabelGenerated(),
		CancelCount:            o.CancelCount(),
		AWBNumber:              awb,
		CreatedAt:              o.CreatedAt(),
		UpdatedAt:              o.CreatedAt(),
	}
}

func lineItemsFromDomain(orderPK uint64, items []order.LineItem) []LineItemDTO {
	dtos := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, LineItemDTO{
			OrderID:   orderPK,
			Name:      item.Name(),
			SKU:       item.SKU(),
			HSNCode:   item.HSNCode(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Total:     item.Total(),
		})
	}
	return dtos
}

func auditEntriesFromDomain(orderPK uint64, entries []order.AuditEntry) []AuditEntryDTO {
	dtos := make([]AuditEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, AuditEntryDTO{
			ID:         entry.ID().Bytes(),
			OrderID:    orderPK,
			Action:     string(entry.Action()),
			Actor:      entry.Actor(),
			Source:     entry.Source(),
			OccurredAt: entry.OccurredAt(),
		})
	}
	return dtos
}

// toDomain rebuilds the aggregate with RestoreOrder.
func toDomain(dto OrderDTO, itemDTOs []LineItemDTO) (*order.Order, error) {
	mode, err := order.ParsePaymentMode(dto.PaymentMode)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := order.RestoreLineItem(
			itemDTO.ID, itemDTO.Name, itemDTO.SKU, itemDTO.HSNCode, itemDTO.Quantity, itemDTO.UnitPrice,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(dto.ID, order.Params{
		OrderID:                dto.OrderID,
		MerchantID:             dto.MerchantID,
		Channel:                dto.Channel,
		OrderDate:              dto.OrderDate,
		Consignee:              dto.Consignee.toDomain(),
		Billing:                dto.Billing.toDomain(),
		BillingSameAsConsignee: dto.BillingSameAsConsignee,
		PickupLocationCode:     dto.PickupLocationCode,
		PickupPincode:          dto.PickupPincode,
		Zone:                   dto.Zone,
		PaymentMode:            mode,
		Charges: order.Charges{
			Shipping:      dto.ShippingCharges,
			CODCharge:     dto.CODCharges,
			GiftWrap:      dto.GiftWrapCharges,
			Other:         dto.OtherCharges,
			Discount:      dto.Discount,
			TaxAmount:     dto.FlatTaxAmount,
			TaxPercentage: dto.TaxPercentage,
		},
		Amounts: order.Amounts{
			OrderValue:   dto.OrderValue,
			TaxAmount:    dto.TaxAmount,
			TotalAmount:  dto.TotalAmount,
			CODToCollect: dto.CODToCollect,
		},
		Parcel: order.Parcel{
			DeadWeight:       dto.Weight,
			Length:           dto.Length,
			Breadth:          dto.Breadth,
			Height:           dto.Height,
			VolumetricWeight: dto.VolumetricWeight,
			ApplicableWeight: dto.ApplicableWeight,
		},
		LineItems: items,
		CreatedAt: dto.CreatedAt,
	}, order.State{
		Status:           order.Status(dto.Status),
		SubStatus:        dto.SubStatus,
		IsLabelGenerated: dto.IsLabelGenerated,
		CancelCount:      dto.CancelCount,
		AWBNumber:        dto.AWBNumber,
		DeletedAt:        dto.DeletedAt,
	})
}

