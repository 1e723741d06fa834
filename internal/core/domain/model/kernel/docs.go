// Package kernel provides the value objects shared by every aggregate of the
// freight marketplace.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Money: positive decimal amount with an ISO currency code (github.com/shopspring/decimal)
//
// Both are immutable and must be created through their constructors; zero values fail
// validation.
package kernel
