package kernel

// Error describes a kernel error. Kernel errors are declared as package-level
// pointers to Error so that returning one never requires the Go allocator;
// drivers compare them by identity.
type Error struct {
	// The module that raised the error.
	Module string

	// The error message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
