// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Multi-entity writes run through RunInTransaction; each store offers WithTx
// to bind itself to the transaction.
package store
