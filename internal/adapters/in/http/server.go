package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"orderintake/internal/core/application/usecases/commands"
	"orderintake/internal/core/application/usecases/queries"
	"orderintake/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	// HeaderMerchantID carries the authenticated merchant.
	HeaderMerchantID = "X-Merchant-ID"
	// HeaderActor names the user or system submitting the order.
	HeaderActor = "X-Actor"

	// CodeOrderNotFound is returned by GET when no live order matches.
	CodeOrderNotFound = "ORDER_NOT_FOUND"

	timeLayout = time.RFC3339
)

// CreateOrderHandler runs the intake pipeline.
type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
}

// GetOrderHandler reads one order.
type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
}

// Server handles the order endpoints.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler CreateOrderHandler

	// Query handlers
	getOrderHandler GetOrderHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(createOrderHandler CreateOrderHandler, getOrderHandler GetOrderHandler) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		getOrderHandler:    getOrderHandler,
	}
}

// RegisterRoutes mounts the order endpoints on a /api/v1 group.
func (s *Server) RegisterRoutes(g *echo.Group) {
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders/:order_id", s.GetOrder)
}

// CreateOrder handles POST /api/v1/orders - runs the intake pipeline.
func (s *Server) CreateOrder(ctx echo.Context) error {
	merchantID, err := merchantIDFrom(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidRequest,
			Message: err.Error(),
			Field:   HeaderMerchantID,
		})
	}

	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateOrderCommand(merchantID, ctx.Request().Header.Get(HeaderActor), body.ToDraft())
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    commands.CodeValidationError,
			Message: err.Error(),
		})
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		var intakeErr *commands.CreateOrderError
		if errors.As(err, &intakeErr) {
			return ctx.JSON(intakeErr.HTTPStatus, errorFromIntake(intakeErr))
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    commands.CodeInternalError,
			Message: "Failed to create order",
		})
	}

	return ctx.JSON(http.StatusCreated, createdOrderFromResult(result))
}

// GetOrder handles GET /api/v1/orders/:order_id - reads one order of the merchant.
func (s *Server) GetOrder(ctx echo.Context) error {
	merchantID, err := merchantIDFrom(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidRequest,
			Message: err.Error(),
			Field:   HeaderMerchantID,
		})
	}

	query, err := queries.NewGetOrderQuery(merchantID, ctx.Param("order_id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidRequest,
			Message: err.Error(),
		})
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    CodeOrderNotFound,
				Message: "Order " + query.OrderID() + " not found",
				Field:   "order_id",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    commands.CodeInternalError,
			Message: "Failed to retrieve order",
		})
	}

	return ctx.JSON(http.StatusOK, orderFromView(view))
}

func merchantIDFrom(ctx echo.Context) (uint64, error) {
	raw := strings.TrimSpace(ctx.Request().Header.Get(HeaderMerchantID))
	if raw == "" {
		return 0, errs.NewValueIsRequiredError(HeaderMerchantID)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errs.NewValueIsInvalidError(HeaderMerchantID)
	}
	return id, nil
}
