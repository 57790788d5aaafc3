package kernel

import "testing"

func TestKernelError(t *testing.T) {
	var err error = &Error{
		Module:  "tty",
		Message: "invalid screen index",
	}

	if got, exp := err.Error(), "invalid screen index"; got != exp {
		t.Fatalf("expected err.Error() to return %q; got %q", exp, got)
	}
}
