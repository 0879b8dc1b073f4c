// Package order contains the order aggregate of the intake pipeline.
//
// A Draft is the untrusted submission. After validation, zone resolution and
// calculation it becomes an Order together with its LineItems and a single
// creation AuditEntry; all three are persisted in one transaction or not at
// all.
//
// Orders are created in status New with sub-status awaiting_shipment.
// Later transitions (pickup, transit, delivery, RTO, cancellation) belong to
// other services; this package only knows enough about them to classify
// duplicate submissions through Status.IsResubmittable.
package order
