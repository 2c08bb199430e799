// Package models defines the core domain models for the subscription ledger.
//
// # Configuration Models
//
// These are loaded once from the book file and never mutated:
//   - Participant: one of the fixed, ordered set of people sharing costs
//   - RecurringCharge: a monthly subscription with a price, start month,
//     optional free first month and a default payer
//
// # State Models
//
// These change through ledger commands and are persisted:
//   - Matrix: a square participant-by-participant amount matrix. The
//     settlement record (cumulative recorded transfers) is a Matrix, and so
//     is every derived balance matrix.
//   - PayerOverrides: who actually paid a charge in a given month, when it
//     was not the default payer
//
// # Design Principles
//
//  1. Participants are referenced by ID strings, never by pointer
//  2. Amounts are decimal.Decimal so repeated recomputation is bit-identical
//  3. Matrices iterate in participant order, never in map order
//  4. State models expose Clone for history snapshots
package models
