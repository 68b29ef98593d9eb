package storage

import "errors"

// ErrNotFound is returned when a record does not exist or is not visible to the caller.
var ErrNotFound = errors.New("not found")

// ErrMovementNotPending is returned when settling or reminding a movement that is no longer a pending payment.
var ErrMovementNotPending = errors.New("movement is not a pending payment")

// ErrEmailTaken is returned when registering an email that already has an account.
var ErrEmailTaken = errors.New("email already registered")

// ErrReminderAlreadySent is returned when a reminder was already recorded for a movement.
var ErrReminderAlreadySent = errors.New("reminder already sent")
