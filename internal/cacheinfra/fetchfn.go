package cacheinfra

import (
	"context"
	"reflect"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// validateFetchFn checks that fetchFn has the shape func(context.Context) (T, error).
// Both backends validate up front so a bad callback fails loudly instead of
// surfacing as an opaque conversion error deep inside the cache client.
func validateFetchFn(fetchFn any) error {
	if fetchFn == nil {
		return &ConfigError{Field: "fetchFn", Message: "cannot be nil"}
	}

	t := reflect.TypeOf(fetchFn)
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 2 {
		return &ConfigError{Field: "fetchFn", Message: "must have signature func(context.Context) (T, error)"}
	}
	if !t.In(0).Implements(contextType) {
		return &ConfigError{Field: "fetchFn", Message: "first parameter must be context.Context"}
	}
	if !t.Out(1).Implements(errorType) {
		return &ConfigError{Field: "fetchFn", Message: "second return value must be error"}
	}
	return nil
}

// fetchResultType reports the T in func(context.Context) (T, error).
// Callers must have validated fetchFn first.
func fetchResultType(fetchFn any) reflect.Type {
	return reflect.TypeOf(fetchFn).Out(0)
}

// callFetchFn invokes a pre-validated fetch function reflectively, erasing
// the generic return type to any.
func callFetchFn(ctx context.Context, fetchFn any) (any, error) {
	if fn, ok := fetchFn.(func(context.Context) (any, error)); ok {
		return fn(ctx)
	}

	results := reflect.ValueOf(fetchFn).Call([]reflect.Value{reflect.ValueOf(ctx)})

	var result any
	if v := results[0]; v.IsValid() && v.CanInterface() {
		result = v.Interface()
	}

	var err error
	if v := results[1]; v.IsValid() && !v.IsNil() {
		err = v.Interface().(error)
	}

	return result, err
}
