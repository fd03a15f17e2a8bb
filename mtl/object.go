package mtl

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"
)

// object is a retained reference to a native Metal object. Value types in
// this package share one *object so that Release on any copy releases the
// reference exactly once.
type object struct {
	ptr      unsafe.Pointer
	kind     string
	free     func(unsafe.Pointer) // nil for borrowed references; release ignores them
	once     sync.Once
	released atomic.Bool
}

func newObject(ptr unsafe.Pointer, kind string, free func(unsafe.Pointer)) *object {
	if ptr == nil {
		return nil
	}
	return &object{ptr: ptr, kind: kind, free: free}
}

// pointer returns the native pointer, or nil once the object was released.
func (o *object) pointer() unsafe.Pointer {
	if o == nil || o.released.Load() {
		return nil
	}
	return o.ptr
}

// release frees an owned reference once. Borrowed references are left
// untouched and stay usable.
func (o *object) release() {
	if o == nil || o.free == nil {
		return
	}
	o.once.Do(func() {
		o.released.Store(true)
		o.free(o.ptr)
		Logger().Debug("released native object", zap.String("kind", o.kind))
	})
}
