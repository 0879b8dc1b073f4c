package commands

import (
	"errors"
	"strings"

	"orderintake/internal/core/domain/model/order"
	"orderintake/internal/pkg/errs"
	"orderintake/internal/pkg/guard"
)

// DefaultActor is recorded in the audit trail when the caller does not name one.
const DefaultActor = "system"

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to run the intake pipeline for one
// merchant submitted draft.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(merchantID, "ops@merchant", draft)
//	if err != nil {
//	    return fmt.Errorf("invalid command: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	merchantID uint64
	actor      string
	draft      order.Draft

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates the command. The merchant is mandatory; the
// draft itself is validated by the handler so that every problem is reported.
func NewCreateOrderCommand(merchantID uint64, actor string, draft order.Draft) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		draft: draft,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMerchantID(merchantID),
		cmd.setActor(actor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// MerchantID returns the submitting merchant.
func (c CreateOrderCommand) MerchantID() uint64 {
	return c.merchantID
}

// Actor returns who submitted the order.
func (c CreateOrderCommand) Actor() string {
	return c.actor
}

// Draft returns the untrusted submission.
func (c CreateOrderCommand) Draft() order.Draft {
	return c.draft
}

func (c *CreateOrderCommand) setMerchantID(merchantID uint64) error {
	if merchantID == 0 {
		return errs.NewValueIsRequiredError("merchant_id")
	}

	c.merchantID = merchantID
	return nil
}

func (c *CreateOrderCommand) setActor(actor string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = DefaultActor
	}

	c.actor = actor
	return nil
}
