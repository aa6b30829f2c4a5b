// Package mocks provides testify-based mock implementations of the store,
// auth, generation and service interfaces.
//
// Usage:
//
//	words := &mocks.MockWordStore{}
//	words.On("GetByID", mock.Anything, wordID).Return(word, nil)
//	defer words.AssertExpectations(t)
//
// Store mocks return themselves from WithTx, so expectations registered on a
// mock also apply to the transactional repository a service obtains from it.
package mocks
