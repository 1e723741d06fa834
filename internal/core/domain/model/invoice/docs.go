// Package invoice holds the FINAL_INVOICE document a winning forwarder uploads and the
// exporter accepts. Acceptance locks the document permanently.
package invoice
