package domain

import (
	"errors"
	"fmt"
)

// User-facing messages stay in Spanish, matching the product's UI copy.
const (
	MsgWeekendRejected = "No atendemos los fines de semana. Por favor selecciona de Lunes a Viernes."
	MsgBookingFailed   = "Ocurrió un error al procesar la reserva."
	MsgScheduleFull    = "Agenda completa para este día."
	MsgSlotTaken       = "El horario seleccionado ya no está disponible. Por favor elige otro."
	MsgDoctorsLoad     = "No se pudieron cargar los doctores disponibles."
	MsgAppointmentLoad = "No se pudieron cargar las citas."
)

var (
	// ErrWeekendDate rejects Saturday/Sunday dates before any network call.
	ErrWeekendDate = errors.New(MsgWeekendRejected)

	// ErrSlotTaken means the chosen time is no longer in the available set.
	ErrSlotTaken = errors.New("slot not available for the selected doctor and date")

	// ErrUnauthorized is mapped from any upstream 401 and always clears the
	// session, whatever request produced it.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoSession means the caller presented no (or an expired) session id.
	ErrNoSession = errors.New("no active session")

	// ErrSearchSuperseded is returned to a debounced search whose query was
	// replaced by a newer one before the delay elapsed.
	ErrSearchSuperseded = errors.New("search superseded by a newer query")

	// ErrPatientInvalid rejects patient forms missing required fields.
	ErrPatientInvalid = errors.New("firstName, lastName and email are required")

	// ErrPrescriptionUnavailable gates PDF downloads on COMPLETED status.
	ErrPrescriptionUnavailable = errors.New("prescription is only available for completed appointments")
)

// UpstreamError carries a backend rejection whose message is surfaced to the
// user verbatim (e.g. a booking conflict the client-side filter lost a race
// on).
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend rejected request with status %d", e.StatusCode)
}

// UserMessage is what reaches the form: the backend's own text when it sent
// any, the generic fallback otherwise.
func (e *UpstreamError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return MsgBookingFailed
}
