package medibook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"strconv"

	"github.com/medibook/medibook-booking-gateway/internal/config"
	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

// MediBookAdapter talks to the MediBook REST backend. It attaches the
// bearer token found in the request context and maps every 401 to
// domain.ErrUnauthorized so callers can tear down the session uniformly.
type MediBookAdapter struct {
	client  *http.Client
	baseURL string
	logger  out.LoggerPort
}

func NewMediBookAdapter(cfg *config.Config, logger out.LoggerPort) *MediBookAdapter {
	return &MediBookAdapter{
		client:  &http.Client{Timeout: cfg.Backend.Timeout},
		baseURL: cfg.Backend.URL,
		logger:  logger,
	}
}

func (a *MediBookAdapter) Login(ctx context.Context, creds out.Credentials) (*out.LoginResult, error) {
	a.logger.Info("medibook.auth.login", out.LogFields{
		"email": creds.Email,
	})

	var result out.LoginResult
	if err := a.doJSON(ctx, http.MethodPost, "/auth/login", nil, creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *MediBookAdapter) Register(ctx context.Context, req out.RegisterRequest) error {
	a.logger.Info("medibook.auth.register", out.LogFields{
		"email": req.Email,
	})

	return a.doJSON(ctx, http.MethodPost, "/auth/register", nil, req, nil)
}

func (a *MediBookAdapter) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	if err := a.doJSON(ctx, http.MethodGet, "/appointments", nil, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (a *MediBookAdapter) MyAppointments(ctx context.Context) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	if err := a.doJSON(ctx, http.MethodGet, "/appointments/my-appointments", nil, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (a *MediBookAdapter) BookMe(ctx context.Context, req out.BookRequest, idempotencyKey string) (*domain.Appointment, error) {
	a.logger.Info("medibook.appointments.book", out.LogFields{
		"doctorId":       req.DoctorID,
		"dateTime":       req.DateTime.String(),
		"idempotencyKey": idempotencyKey,
	})

	httpReq, err := a.newRequest(ctx, http.MethodPost, "/appointments/book-me", nil, req)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Idempotency-Key", idempotencyKey)

	var appointment domain.Appointment
	if err := a.do(httpReq, &appointment); err != nil {
		a.logger.Error("medibook.appointments.book_failed", out.LogFields{
			"doctorId": req.DoctorID,
			"error":    err.Error(),
		})
		return nil, err
	}
	return &appointment, nil
}

func (a *MediBookAdapter) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	query := nurl.Values{}
	query.Set("status", string(status))

	path := fmt.Sprintf("/appointments/%d/status", id)
	return a.doJSON(ctx, http.MethodPatch, path, query, nil, nil)
}

func (a *MediBookAdapter) SaveDiagnosis(ctx context.Context, id int64, diagnosis, treatment string) error {
	body := map[string]string{
		"diagnosis": diagnosis,
		"treatment": treatment,
	}

	path := fmt.Sprintf("/appointments/%d/diagnosis", id)
	return a.doJSON(ctx, http.MethodPatch, path, nil, body, nil)
}

func (a *MediBookAdapter) PatientHistory(ctx context.Context, email string) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	path := "/appointments/patient/" + nurl.PathEscape(email)
	if err := a.doJSON(ctx, http.MethodGet, path, nil, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// PrescriptionPDF returns the raw binary document.
func (a *MediBookAdapter) PrescriptionPDF(ctx context.Context, id int64) ([]byte, error) {
	req, err := a.newRequest(ctx, http.MethodGet, fmt.Sprintf("/appointments/%d/pdf", id), nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := a.checkStatus(resp); err != nil {
		return nil, err
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("medibook.appointments.pdf.fetched", out.LogFields{
		"appointmentId": id,
		"bytes":         len(pdf),
	})
	return pdf, nil
}

func (a *MediBookAdapter) TakenSlots(ctx context.Context, doctorID int64, date jsontypes.CivilDate) ([]jsontypes.ClockTime, error) {
	query := nurl.Values{}
	query.Set("doctorId", strconv.FormatInt(doctorID, 10))
	query.Set("date", date.String())

	// The backend answers with HH:MM:SS strings; ClockTime drops seconds.
	var taken []jsontypes.ClockTime
	if err := a.doJSON(ctx, http.MethodGet, "/appointments/taken-slots", query, nil, &taken); err != nil {
		return nil, err
	}

	a.logger.Debug("medibook.taken_slots.fetched", out.LogFields{
		"doctorId": doctorID,
		"date":     date.String(),
		"count":    len(taken),
	})
	return taken, nil
}

func (a *MediBookAdapter) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	var doctors []domain.Doctor
	if err := a.doJSON(ctx, http.MethodGet, "/doctors", nil, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (a *MediBookAdapter) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	var patients []domain.Patient
	if err := a.doJSON(ctx, http.MethodGet, "/patients", nil, nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (a *MediBookAdapter) GetPatient(ctx context.Context, id int64) (*domain.Patient, error) {
	var patient domain.Patient
	if err := a.doJSON(ctx, http.MethodGet, fmt.Sprintf("/patients/%d", id), nil, nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (a *MediBookAdapter) SearchPatients(ctx context.Context, searchQuery string) ([]domain.Patient, error) {
	query := nurl.Values{}
	query.Set("query", searchQuery)

	var patients []domain.Patient
	if err := a.doJSON(ctx, http.MethodGet, "/patients/search", query, nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (a *MediBookAdapter) CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	var created domain.Patient
	if err := a.doJSON(ctx, http.MethodPost, "/patients", nil, patient, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *MediBookAdapter) UpdatePatient(ctx context.Context, id int64, patient domain.Patient) (*domain.Patient, error) {
	var updated domain.Patient
	if err := a.doJSON(ctx, http.MethodPut, fmt.Sprintf("/patients/%d", id), nil, patient, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *MediBookAdapter) newRequest(ctx context.Context, method, path string, query nurl.Values, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := out.TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func (a *MediBookAdapter) doJSON(ctx context.Context, method, path string, query nurl.Values, body, result interface{}) error {
	req, err := a.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	return a.do(req, result)
}

func (a *MediBookAdapter) do(req *http.Request, result interface{}) error {
	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("medibook.request.failed", out.LogFields{
			"method": req.Method,
			"path":   req.URL.Path,
			"error":  err.Error(),
		})
		return err
	}
	defer resp.Body.Close()

	if err := a.checkStatus(resp); err != nil {
		return err
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		a.logger.Error("medibook.response.decode_failed", out.LogFields{
			"method": req.Method,
			"path":   req.URL.Path,
			"error":  err.Error(),
		})
		return err
	}

	return nil
}

// checkStatus maps non-2xx responses. 401 becomes ErrUnauthorized; anything
// else becomes an UpstreamError carrying the backend's own message when the
// body held one, either as a bare string or as {"message": "..."}.
func (a *MediBookAdapter) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}

	raw, _ := io.ReadAll(resp.Body)

	// The backend rejects either with a bare string body or with a
	// {"message": ...} object; both are surfaced verbatim.
	var message string
	var structured struct {
		Message string `json:"message"`
	}
	var plain string
	switch {
	case json.Unmarshal(raw, &structured) == nil && structured.Message != "":
		message = structured.Message
	case json.Unmarshal(raw, &plain) == nil:
		message = plain
	case !json.Valid(raw):
		message = string(bytes.TrimSpace(raw))
	}

	a.logger.Warn("medibook.request.rejected", out.LogFields{
		"status":  resp.StatusCode,
		"message": message,
	})

	return &domain.UpstreamError{StatusCode: resp.StatusCode, Message: message}
}
