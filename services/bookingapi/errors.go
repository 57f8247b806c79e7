package bookingapi

import "fmt"

// NotFoundError is returned when the booking service answers 404.
type NotFoundError struct {
	BookingID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Booking not found with id : '%d'", e.BookingID)
}

// UpstreamError covers every other failure talking to the booking service:
// transport errors, non-2xx responses and undecodable bodies.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
