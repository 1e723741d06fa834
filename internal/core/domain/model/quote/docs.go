// Package quote models forwarder bids on shipment orders and their price amendment trail.
//
// A forwarder holds at most one ACTIVE quote per order; resubmitting amends it. Selection,
// rejection, cancellation and expiry all move a quote away from ACTIVE for good.
package quote
