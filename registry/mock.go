package registry

import (
	"github.com/ruteri/signature-registry/cryptoutils"
	"github.com/ruteri/signature-registry/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockRegistry mocks the interfaces.KeyRegistry interface
type MockRegistry struct {
	mock.Mock
}

var _ interfaces.KeyRegistry = (*MockRegistry)(nil)

// Register mocks the Register method
func (m *MockRegistry) Register(password string, publicKey cryptoutils.PublicKeyPEM) error {
	args := m.Called(password, publicKey)
	return args.Error(0)
}

// Verify mocks the Verify method
func (m *MockRegistry) Verify(message []byte, signature string) (bool, error) {
	args := m.Called(message, signature)
	return args.Bool(0), args.Error(1)
}
