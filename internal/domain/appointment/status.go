package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// InitialStatus é o único estado de entrada; agendamentos nascem
// confirmados via Booking.
func InitialStatus() Status {
	return StatusConfirmed
}

// CountsForSlot diz se o agendamento ocupa seu slot (date, time).
// Cancelados liberam o horário.
func CountsForSlot(current Status) bool {
	return current == StatusConfirmed
}
