package queries_test

import (
	"context"
	"testing"

	"orderintake/internal/adapters/out/postgres/orderrepo"
	"orderintake/internal/adapters/out/postgres/pgtest"
	"orderintake/internal/core/application/usecases/queries"
	"orderintake/internal/core/domain/model/order/ordertest"
	"orderintake/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	database *pgtest.Database
	handler  queries.GetOrderQueryHandler
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.handler = queries.NewGetOrderQueryHandler(database.DB)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ExistingOrder() {
	ctx := context.Background()
	repo := orderrepo.NewGormOrderRepository(suite.database.DB, nil)
	result, err := repo.Add(ctx, ordertest.New(suite.T(), "ORD-1", 42))
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderQuery(42, "ORD-1")
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(result.InternalID, view.InternalID)
	suite.Equal("ORD-1", view.OrderID)
	suite.Equal("new", view.Status)
	suite.Equal("awaiting_shipment", view.SubStatus)
	suite.Equal("D", view.Zone)
	suite.Equal("cod", view.PaymentMode)
	suite.Equal("WH-01", view.PickupLocation)
	suite.Equal("560001", view.ConsigneePincode)
	suite.True(view.TotalAmount.Equal(decimal.RequireFromString("500")))
	suite.True(view.ApplicableWeight.Equal(decimal.RequireFromString("0.3")))
	suite.Nil(view.AWBNumber)

	suite.Require().Len(view.LineItems, 2)
	suite.Equal("Ceramic mug", view.LineItems[0].Name)
	suite.Equal("6912", view.LineItems[0].HSNCode)
	suite.True(view.LineItems[1].Total.Equal(decimal.RequireFromString("100")))
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_UnknownOrder() {
	query, err := queries.NewGetOrderQuery(42, "ORD-404")
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_NotConstructed() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOrderQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
