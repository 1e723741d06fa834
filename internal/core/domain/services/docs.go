// Package services holds the marketplace state machine. Each service is a set of pure
// functions over explicit snapshots (order, quotes, invoice) and an explicit company.Actor.
// Services mutate the aggregates they are given and return what the caller must persist,
// notify or clean up; they never touch storage themselves.
//
// The package includes:
//   - OrderDesk: order creation, forwarder invitations and the move into quote review
//   - QuoteDesk: quote submission, amendment and cancellation
//   - QuoteSelector: the PENDING -> CLOSED selection transition
//   - StatusChanger: admin REASSIGN and VOIDED transitions with invoice cleanup
//   - InvoiceDesk: final invoice upload planning and acceptance
//   - RatingGate: the two directional rating checks
//   - ReminderPlanner: quotation deadline reminder events
package services
