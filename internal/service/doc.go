// Package service contains the application use cases of the vocabulary API.
// It orchestrates domain entities and the repositories defined in internal/store
// to implement word lifecycle changes, group management, AI generation and
// device pairing.
//
// Multi-entity writes run inside store.RunInTransaction with transactional
// repositories obtained through WithTx, so a word write and its group counter
// adjustment either both land or neither does.
//
// Services return sentinel errors (ErrNotOwned, ErrWordGroupMismatch and the
// store/domain families) that the API layer maps to HTTP status codes.
package service
