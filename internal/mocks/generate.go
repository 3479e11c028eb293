// Package mocks provides generated mock implementations for port interfaces.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks.
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	provider := identity.NewMockIdentityProvider(ctrl)
//	provider.EXPECT().ResetPassword(gomock.Any(), "admin@x.com").Return(nil)
package mocks

// Generate mocks for the identity provider port and its subscription handle.
//go:generate go run go.uber.org/mock/mockgen -package=identity -destination=identity/identity_mock.go github.com/koherence/ui-api/internal/ports IdentityProvider,Subscription
