// Package testutils provides testing utilities for the vocabulary API.
//
// This package contains helpers for:
//  1. Creating test domain entities (Word, WordGroup, Device)
//  2. An in-memory store implementing the word and word group repositories
//  3. sqlmock-backed databases for code that opens transactions
//  4. Auth components and headers for handler tests
//
// # Test Domain Entities
//
//	// Create a word with default values:
//	word := testutils.MustCreateWordForTest(t)
//
//	// Create a word with specific options:
//	word := testutils.MustCreateWordForTest(t,
//	    testutils.WithWordGroupID(groupID),
//	    testutils.WithWordStatus(domain.WordStatusLearned),
//	)
//
// # In-memory store
//
// MemStore keeps words and groups in maps and exposes the store.WordStore and
// store.WordGroupStore views over them. Its clock is set explicitly and moved
// with Advance, which makes timeout windows deterministic.
package testutils
