// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the port interfaces. To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockAuthenticator(ctrl)
//	api.EXPECT().Login(gomock.Any(), "a@uni.edu", "pw").Return("token", nil)
//
// Hand-written doubles for simpler cases live in internal/mocks/auth.
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=authenticator_mock.go github.com/uniadmin/records-console/internal/ports Authenticator

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/uniadmin/records-console/internal/ports SessionStore
