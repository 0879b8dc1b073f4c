package services

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"orderintake/internal/core/domain/model/order"

	"golang.org/x/text/unicode/norm"
)

// Storage limits of the free-text columns, in characters.
const (
	limitName     = 100
	limitPhone    = 15
	limitEmail    = 254
	limitAddress  = 255
	limitCity     = 100
	limitState    = 100
	limitCountry  = 60
	limitCompany  = 150
	limitGSTIN    = 15
	limitProduct  = 255
	limitSKU      = 100
	limitHSN      = 20
	limitPickup   = 50
	limitChannel  = 30
	limitOrderID  = order.MaxOrderIDLength
	defaultMaxLen = 255
)

// Truncation describes a value shortened to fit its column.
type Truncation struct {
	Field          string
	OriginalLength int
	NewLength      int
}

// Warning renders the truncation for the caller.
func (t Truncation) Warning() string {
	return fmt.Sprintf("%s was truncated from %d to %d characters", t.Field, t.OriginalLength, t.NewLength)
}

// TextSanitizer prepares free text for storage: NFC normalisation, control
// characters removed (tabs and line breaks become spaces), surrounding
// whitespace trimmed and the column length enforced. Phones are reduced to
// their normalized form. Every truncation is reported, never silent.
type TextSanitizer struct{}

// NewTextSanitizer creates a new TextSanitizer instance.
func NewTextSanitizer() TextSanitizer {
	return TextSanitizer{}
}

// Clean sanitizes one value. maxLen <= 0 selects the default column length.
// The second result is nil unless the value had to be truncated.
func (TextSanitizer) Clean(field, value string, maxLen int) (string, *Truncation) {
	if maxLen <= 0 {
		maxLen = defaultMaxLen
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, norm.NFC.String(value))
	cleaned = strings.TrimSpace(cleaned)

	length := utf8.RuneCountInString(cleaned)
	if length <= maxLen {
		return cleaned, nil
	}

	runes := []rune(cleaned)
	cleaned = strings.TrimSpace(string(runes[:maxLen]))
	return cleaned, &Truncation{
		Field:          field,
		OriginalLength: length,
		NewLength:      utf8.RuneCountInString(cleaned),
	}
}

// SanitizeDraft returns a cleaned copy of the draft and one warning per
// truncated field. Products are expected to be filtered already; blank
// entries are kept untouched.
func (s TextSanitizer) SanitizeDraft(draft order.Draft) (order.Draft, []string) {
	var warnings []string
	clean := func(field, value string, maxLen int) string {
		cleaned, truncation := s.Clean(field, value, maxLen)
		if truncation != nil {
			warnings = append(warnings, truncation.Warning())
		}
		return cleaned
	}

	out := draft
	out.OrderID = clean("order_id", draft.OrderID, limitOrderID)
	out.Channel = clean("channel", draft.Channel, limitChannel)
	out.PickupLocationCode = clean("pickup_location", draft.PickupLocationCode, limitPickup)
	out.Consignee = s.sanitizeAddress("consignee", draft.Consignee, clean)

	if draft.Billing != nil {
		billing := s.sanitizeAddress("billing", *draft.Billing, clean)
		out.Billing = &billing
	}

	out.Products = make([]order.Product, len(draft.Products))
	for i, p := range draft.Products {
		prefix := fmt.Sprintf("products[%d]", i)
		out.Products[i] = p
		out.Products[i].Name = clean(prefix+".name", p.Name, limitProduct)
		out.Products[i].SKU = clean(prefix+".sku", p.SKU, limitSKU)
		out.Products[i].HSNCode = clean(prefix+".hsn_code", p.HSNCode, limitHSN)
	}

	return out, warnings
}

func (TextSanitizer) sanitizeAddress(
	prefix string,
	a order.Address,
	clean func(field, value string, maxLen int) string,
) order.Address {
	field := func(name string) string { return prefix + "." + name }

	phone := a.Phone
	if normalized := NormalizePhone(phone); normalized != "" {
		phone = normalized
	}
	altPhone := a.AltPhone
	if normalized := NormalizePhone(altPhone); normalized != "" {
		altPhone = normalized
	}

	return order.Address{
		Name:         clean(field("name"), a.Name, limitName),
		Phone:        clean(field("phone"), phone, limitPhone),
		AltPhone:     clean(field("alt_phone"), altPhone, limitPhone),
		Email:        clean(field("email"), a.Email, limitEmail),
		AddressLine1: clean(field("address_line1"), a.AddressLine1, limitAddress),
		AddressLine2: clean(field("address_line2"), a.AddressLine2, limitAddress),
		Landmark:     clean(field("landmark"), a.Landmark, limitAddress),
		Pincode:      clean(field("pincode"), a.Pincode, 6),
		City:         clean(field("city"), a.City, limitCity),
		State:        clean(field("state"), a.State, limitState),
		Country:      clean(field("country"), a.Country, limitCountry),
		CompanyName:  clean(field("company_name"), a.CompanyName, limitCompany),
		GSTIN:        strings.ToUpper(clean(field("gstin"), a.GSTIN, limitGSTIN)),
	}
}
