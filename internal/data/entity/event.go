package entity

import "time"

// Event is one edition of the camp. Its date window is immutable and serves
// as the implicit stay dates for every booking; BookingOpen gates new
// bookings and allocations.
type Event struct {
	BaseNoDelete
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Year        int       `db:"year"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	Location    string    `db:"location"`
	Description string    `db:"description"`
	Active      bool      `db:"active"`
	BookingOpen bool      `db:"booking_open"`
}

// Nights returns the stay length implied by the event window.
func (e *Event) Nights() int {
	n := int(e.EndDate.Sub(e.StartDate).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}
