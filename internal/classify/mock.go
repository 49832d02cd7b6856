package classify

import (
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetClassifyStore implements the StoreManager interface.
func (m *MockStoreManager) GetClassifyStore() contract.ClassifyStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ClassifyStore)
	return store
}

// MockClassifyStore is a mock implementation of ClassifyStore for testing.
type MockClassifyStore struct {
	mock.Mock
}

var _ contract.ClassifyStore = &MockClassifyStore{} // Compile-time check

// Upsert implements the ClassifyStore interface.
func (m *MockClassifyStore) Upsert(rec *schema.UnknownRecord) error {
	args := m.Called(rec)
	return args.Error(0)
}

// Get implements the ClassifyStore interface.
func (m *MockClassifyStore) Get(executable string) (*schema.UnknownRecord, error) {
	args := m.Called(executable)
	rec, _ := args.Get(0).(*schema.UnknownRecord)
	return rec, args.Error(1)
}

// List implements the ClassifyStore interface.
func (m *MockClassifyStore) List(class schema.Classification) ([]schema.UnknownRecord, error) {
	args := m.Called(class)
	records, _ := args.Get(0).([]schema.UnknownRecord)
	return records, args.Error(1)
}

// SetClassification implements the ClassifyStore interface.
func (m *MockClassifyStore) SetClassification(executable string, class schema.Classification, notes string) error {
	args := m.Called(executable, class, notes)
	return args.Error(0)
}

// Exceptions implements the ClassifyStore interface.
func (m *MockClassifyStore) Exceptions() ([]string, error) {
	args := m.Called()
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

// Clear implements the ClassifyStore interface.
func (m *MockClassifyStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the ClassifyStore interface.
func (m *MockClassifyStore) GetStatus() (schema.ClassifyStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.ClassifyStatus), args.Error(1)
}

// Close implements the ClassifyStore interface.
func (m *MockClassifyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
