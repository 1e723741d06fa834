// Package order provides the shipment order aggregate of the freight marketplace.
//
// The package includes:
//   - Order: the aggregate root holding route, cargo, quotation deadline and status
//   - Status: the OPEN -> PENDING -> CLOSED -> REASSIGN/VOIDED state machine
//   - Invitation: the record that allows a forwarder company to quote on an order
//   - StatusChange: append-only history rows for administrative transitions
//
// Key business rules:
//   - Orders are created OPEN by an exporter and are never deleted, only voided
//   - A selected quote reference exists iff the order is CLOSED or REASSIGN (VOIDED may keep it)
//   - REASSIGN is reachable only from CLOSED; VOIDED from CLOSED or REASSIGN
package order
