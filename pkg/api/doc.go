// Package api holds the request and response messages of the ledger RPC
// services. Messages are plain structs carried as JSON by the codec in
// apiconnect; amounts are decimal strings.
package api
