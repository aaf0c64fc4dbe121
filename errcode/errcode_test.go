package errcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestOf(t *testing.T) {
	cases := []struct {
		err  error
		want Code
	}{
		{nil, OK},
		{NotReady, NotReady},
		{fmt.Errorf("read: %w", NotReady), NotReady},
		{&E{C: UnknownPin, Msg: "GPIO99"}, UnknownPin},
		{fmt.Errorf("open: %w", &E{C: UnknownBus}), UnknownBus},
		{errors.New("plain"), Error},
	}
	for _, tc := range cases {
		if got := Of(tc.err); got != tc.want {
			t.Errorf("Of(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestEMatchesCode(t *testing.T) {
	cause := errors.New("no such device")
	err := Wrap(UnknownBus, "i2c.open", cause)
	if !errors.Is(err, UnknownBus) {
		t.Fatal("errors.Is by code")
	}
	if !errors.Is(err, cause) {
		t.Fatal("errors.Is by cause")
	}
	if err.Error() != "i2c.open: unknown_bus: no such device" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if Wrap(BusFault, "x", nil) != nil {
		t.Fatal("Wrap(nil) not nil")
	}
}

func TestMapDriverErr(t *testing.T) {
	if MapDriverErr(nil) != OK {
		t.Fatal("nil")
	}
	if MapDriverErr(errors.New("nack")) != BusFault {
		t.Fatal("plain error should be a bus fault")
	}
	if MapDriverErr(NotReady) != NotReady {
		t.Fatal("coded error should keep its code")
	}
}
