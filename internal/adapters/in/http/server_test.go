package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"orderintake/api"
	httpin "orderintake/internal/adapters/in/http"
	"orderintake/internal/core/application/usecases/commands"
	"orderintake/internal/core/application/usecases/queries"
	"orderintake/internal/core/application/validation"
	"orderintake/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateOrderHandler struct {
	mock.Mock
}

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateOrderResult), args.Error(1)
}

type MockGetOrderHandler struct {
	mock.Mock
}

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

const createOrderBody = `{
  "order_id": "ORD-1001",
  "order_date": "2026-10-01",
  "consignee": {
    "name": "Asha Rao",
    "phone": "+91 98765 43210",
    "address_line1": "12 MG Road",
    "pincode": "560001",
    "city": "Bengaluru",
    "state": "Karnataka"
  },
  "billing_same_as_consignee": true,
  "pickup_location": "WH-01",
  "payment_mode": "cod",
  "products": [
    {"name": "Mug", "sku": "MUG-1", "quantity": 2, "unit_price": 250},
    {"name": "", "quantity": 1, "unit_price": 10}
  ],
  "package": {"weight": 0.3, "length": 10, "breadth": 10, "height": 10},
  "charges": {"discount": 40},
  "cod_to_collect": null
}`

type serverFixture struct {
	create *MockCreateOrderHandler
	get    *MockGetOrderHandler
	router *echo.Echo
}

func newServerFixture(t *testing.T) serverFixture {
	t.Helper()

	doc, err := api.Load(context.Background())
	require.NoError(t, err)
	validator, err := httpin.NewRequestValidator(doc)
	require.NoError(t, err)

	f := serverFixture{
		create: new(MockCreateOrderHandler),
		get:    new(MockGetOrderHandler),
	}
	f.router = httpin.NewRouter(httpin.RouterConfig{
		Server:    httpin.NewServer(f.create, f.get),
		Validator: validator,
	})
	return f
}

func (f serverFixture) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpin.ErrorResponse {
	t.Helper()
	var resp httpin.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func merchantHeaders() map[string]string {
	return map[string]string{httpin.HeaderMerchantID: "42", httpin.HeaderActor: "ops@merchant"}
}

func TestCreateOrder_Created(t *testing.T) {
	f := newServerFixture(t)

	f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		draft := cmd.Draft()
		return cmd.MerchantID() == 42 &&
			cmd.Actor() == "ops@merchant" &&
			draft.OrderID == "ORD-1001" &&
			draft.OrderDate.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)) &&
			draft.BillingSameAsConsignee &&
			len(draft.Products) == 2 &&
			draft.Products[0].UnitPrice.Valid &&
			draft.Products[0].UnitPrice.Decimal.Equal(decimal.NewFromInt(250)) &&
			draft.Package.Weight.Decimal.Equal(decimal.RequireFromString("0.3")) &&
			draft.Charges.Discount.Valid &&
			!draft.Charges.Shipping.Valid &&
			!draft.CODToCollect.Valid
	})).Return(commands.CreateOrderResult{InternalID: 7, OrderID: "ORD-1001", Zone: "A"}, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders", createOrderBody, merchantHeaders())

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"order_id":"ORD-1001","internal_id":7,"zone":"A","warnings":[]}`, rec.Body.String())
	f.create.AssertExpectations(t)
}

func TestCreateOrder_IntakeErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      *commands.CreateOrderError
		status   int
		contains []string
	}{
		{
			name: "validation error lists every field",
			err: &commands.CreateOrderError{
				Code:       commands.CodeValidationError,
				Message:    "order has 2 validation error(s)",
				Field:      "consignee.phone",
				HTTPStatus: http.StatusBadRequest,
				Errors: []validation.FieldError{
					{Field: "consignee.phone", Code: validation.CodeInvalidPhone, Message: "invalid phone"},
					{Field: "consignee.pincode", Code: validation.CodePincodeNotNumeric, Message: "digits only"},
				},
			},
			status:   http.StatusBadRequest,
			contains: []string{`"code":"VALIDATION_ERROR"`, `"field":"consignee.pincode"`, `"INVALID_PHONE"`},
		},
		{
			name: "already processed duplicate carries the AWB",
			err: &commands.CreateOrderError{
				Code:       commands.CodeOrderAlreadyProcessed,
				Message:    "order ORD-1001 was already processed",
				Field:      "order_id",
				HTTPStatus: http.StatusConflict,
				Details:    map[string]string{"status": "shipped", "awb_number": "AWB123"},
			},
			status:   http.StatusConflict,
			contains: []string{`"code":"ORDER_ALREADY_PROCESSED"`, `"awb_number":"AWB123"`},
		},
		{
			name: "pickup location is unprocessable",
			err: &commands.CreateOrderError{
				Code:       commands.CodePickupInvalid,
				Message:    "pickup location is missing or inactive",
				Field:      "pickup_location",
				HTTPStatus: http.StatusUnprocessableEntity,
			},
			status:   http.StatusUnprocessableEntity,
			contains: []string{`"code":"PICKUP_INVALID"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t)
			f.create.On("Handle", mock.Anything, mock.Anything).Return(commands.CreateOrderResult{}, tt.err).Once()

			rec := f.do(http.MethodPost, "/api/v1/orders", createOrderBody, merchantHeaders())

			assert.Equal(t, tt.status, rec.Code)
			for _, fragment := range tt.contains {
				assert.Contains(t, rec.Body.String(), fragment)
			}
			resp := decodeError(t, rec)
			assert.Equal(t, tt.err.Code, resp.Code)
			assert.Equal(t, tt.err.Field, resp.Field)
		})
	}
}

func TestCreateOrder_RejectedBeforeHandler(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		headers map[string]string
		field   string
	}{
		{
			name:    "missing merchant header",
			body:    createOrderBody,
			headers: map[string]string{},
			field:   httpin.HeaderMerchantID,
		},
		{
			name:    "merchant header is not a number",
			body:    createOrderBody,
			headers: map[string]string{httpin.HeaderMerchantID: "acme"},
			field:   httpin.HeaderMerchantID,
		},
		{
			name:    "quantity has the wrong type",
			body:    `{"order_id":"ORD-1","products":[{"name":"Mug","quantity":"two"}]}`,
			headers: merchantHeaders(),
			field:   "quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t)

			rec := f.do(http.MethodPost, "/api/v1/orders", tt.body, tt.headers)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, httpin.CodeInvalidRequest, resp.Code)
			assert.Contains(t, resp.Field, tt.field)
			f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestGetOrder(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newServerFixture(t)
		awb := "AWB123"
		created := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

		f.get.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
			return q.MerchantID() == 42 && q.OrderID() == "ORD-1001"
		})).Return(queries.GetOrderQueryResponse{
			InternalID:       7,
			OrderID:          "ORD-1001",
			OrderDate:        created,
			Status:           "shipped",
			Zone:             "A",
			TotalAmount:      decimal.NewFromInt(500),
			ApplicableWeight: decimal.RequireFromString("0.3"),
			AWBNumber:        &awb,
			CreatedAt:        created,
			LineItems: []queries.GetOrderQueryLineItem{
				{Name: "Mug", Quantity: 2, UnitPrice: decimal.NewFromInt(250), Total: decimal.NewFromInt(500)},
			},
		}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/orders/ORD-1001", "", merchantHeaders())

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp httpin.OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "500.00", resp.TotalAmount)
		assert.Equal(t, "0.300", resp.ApplicableWeight)
		assert.Equal(t, "2026-10-01", resp.OrderDate.String())
		assert.Equal(t, "2026-10-01T09:30:00Z", resp.CreatedAt)
		require.NotNil(t, resp.AWBNumber)
		assert.Equal(t, "AWB123", *resp.AWBNumber)
		require.Len(t, resp.LineItems, 1)
		assert.Equal(t, "250.00", resp.LineItems[0].UnitPrice)
	})

	t.Run("not found", func(t *testing.T) {
		f := newServerFixture(t)
		f.get.On("Handle", mock.Anything, mock.Anything).
			Return(queries.GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", "ORD-404")).Once()

		rec := f.do(http.MethodGet, "/api/v1/orders/ORD-404", "", merchantHeaders())

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, httpin.CodeOrderNotFound, decodeError(t, rec).Code)
	})
}

func TestHealth(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}
