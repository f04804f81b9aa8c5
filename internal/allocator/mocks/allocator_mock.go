// Hand-maintained in the shape MockGen produces for the Allocator
// interface in internal/allocator/hostmem.go.

// Package mocks contains a gomock-style mock of allocator.Allocator, used
// to exercise Open's transactional rollback when the backing allocation
// fails mid-sequence.
package mocks

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockAllocator is a mock of the Allocator interface.
type MockAllocator struct {
	ctrl     *gomock.Controller
	recorder *MockAllocatorMockRecorder
}

// MockAllocatorMockRecorder is the mock recorder for MockAllocator.
type MockAllocatorMockRecorder struct {
	mock *MockAllocator
}

// NewMockAllocator creates a new mock instance.
func NewMockAllocator(ctrl *gomock.Controller) *MockAllocator {
	mock := &MockAllocator{ctrl: ctrl}
	mock.recorder = &MockAllocatorMockRecorder{mock}

	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAllocator) EXPECT() *MockAllocatorMockRecorder {
	return m.recorder
}

// AllocateBytes mocks base method.
func (m *MockAllocator) AllocateBytes(size int) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AllocateBytes", size)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)

	return ret0, ret1
}

// AllocateBytes indicates an expected call of AllocateBytes.
func (mr *MockAllocatorMockRecorder) AllocateBytes(size interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AllocateBytes", reflect.TypeOf((*MockAllocator)(nil).AllocateBytes), size)
}

// FreeBytes mocks base method.
func (m *MockAllocator) FreeBytes(buf []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FreeBytes", buf)
	ret0, _ := ret[0].(error)

	return ret0
}

// FreeBytes indicates an expected call of FreeBytes.
func (mr *MockAllocatorMockRecorder) FreeBytes(buf interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FreeBytes", reflect.TypeOf((*MockAllocator)(nil).FreeBytes), buf)
}

// ResizeBytes mocks base method.
func (m *MockAllocator) ResizeBytes(buf []byte, newSize int) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResizeBytes", buf, newSize)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)

	return ret0, ret1
}

// ResizeBytes indicates an expected call of ResizeBytes.
func (mr *MockAllocatorMockRecorder) ResizeBytes(buf, newSize interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResizeBytes", reflect.TypeOf((*MockAllocator)(nil).ResizeBytes), buf, newSize)
}

// TotalAllocated mocks base method.
func (m *MockAllocator) TotalAllocated() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TotalAllocated")
	ret0, _ := ret[0].(int)

	return ret0
}

// TotalAllocated indicates an expected call of TotalAllocated.
func (mr *MockAllocatorMockRecorder) TotalAllocated() *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TotalAllocated", reflect.TypeOf((*MockAllocator)(nil).TotalAllocated))
}

// TotalFreed mocks base method.
func (m *MockAllocator) TotalFreed() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TotalFreed")
	ret0, _ := ret[0].(int)

	return ret0
}

// TotalFreed indicates an expected call of TotalFreed.
func (mr *MockAllocatorMockRecorder) TotalFreed() *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TotalFreed", reflect.TypeOf((*MockAllocator)(nil).TotalFreed))
}
