// Package assert provides the most basic test assertions, kept minimal
// on purpose. Anything more elaborate belongs in the test itself.
package assert

import (
	"reflect"
	"testing"

	"github.com/meteorroute/feeroute/errors"
)

// Nil fails the test if the value is not nil.
func Nil(t testing.TB, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails the test if the two values are not equal.
func Equal(t testing.TB, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %+v\n got %+v", want, got)
	}
}

// IsErr fails the test if got does not belong to the class of want.
func IsErr(t testing.TB, want *errors.Error, got error) {
	t.Helper()
	if !want.Is(got) {
		t.Fatalf("want %q error, got %+v", want, got)
	}
}

// Panics fails the test if calling fn does not panic.
func Panics(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}
