package service

import "errors"

var (
	// ErrUserNotFound is returned when a user id resolves to no user.
	ErrUserNotFound = errors.New("user not found")
	// ErrMachineNotFound is returned when a machine id resolves to no machine.
	ErrMachineNotFound = errors.New("machine not found")
	// ErrUnauthenticated is returned when an operation needs a caller identity.
	ErrUnauthenticated = errors.New("user not authenticated")
	// ErrInvalidDateRange is returned when a rental ends before it starts.
	ErrInvalidDateRange = errors.New("endDate must not be before startDate")
)
