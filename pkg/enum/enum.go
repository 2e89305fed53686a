package enum

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	mutex       sync.RWMutex
	enumManager = map[string]any{}
)

type enum[T comparable] struct {
	toEnum map[string]T
	values []T
}

// New registers value as a member of its type and returns it unchanged. It is
// meant to be called while initializing package-level variables.
func New[T comparable](value T) T {
	mutex.Lock()
	defer mutex.Unlock()

	v := reflect.ValueOf(value)
	name := typeName[T]()
	e, ok := enumManager[name].(*enum[T])
	if !ok {
		e = &enum[T]{toEnum: make(map[string]T)}
		enumManager[name] = e
	}

	key := fmt.Sprint(v.Interface())
	if _, ok := e.toEnum[key]; !ok {
		e.values = append(e.values, value)
	}
	e.toEnum[key] = value
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	var defaultT T
	e, ok := enumManager[typeName[T]()].(*enum[T])
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

// Values returns members of T in registration order.
func Values[T comparable]() []T {
	mutex.RLock()
	defer mutex.RUnlock()

	e, ok := enumManager[typeName[T]()].(*enum[T])
	if !ok {
		return nil
	}

	return append([]T(nil), e.values...)
}

func typeName[T any]() string {
	var t T
	rt := reflect.TypeOf(t)
	return rt.PkgPath() + "." + rt.Name()
}
