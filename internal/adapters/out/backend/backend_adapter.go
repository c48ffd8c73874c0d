package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"strconv"

	"github.com/suchimauz/appointment-reminder-bot/internal/config"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

var errNoOwner = errors.New("email or phone is required")

type BackendAdapter struct {
	client  *http.Client
	baseURL string
	logger  out.LoggerPort
}

var _ out.SchedulerPort = (*BackendAdapter)(nil)

func NewBackendAdapter(cfg *config.Config, logger out.LoggerPort) *BackendAdapter {
	return &BackendAdapter{
		client:  &http.Client{Timeout: cfg.Backend.Timeout},
		baseURL: cfg.Backend.URL,
		logger:  logger.WithModule("BackendAdapter"),
	}
}

type freeformBody struct {
	Message string                `json:"message"`
	Contact domain.ContactProfile `json:"contact"`
}

type structuredBody struct {
	Subject      string                `json:"subject"`
	DateStr      string                `json:"date_str"`
	Contact      domain.ContactProfile `json:"contact"`
	IsStructured bool                  `json:"is_structured"`
}

type updateBody struct {
	Subject string `json:"subject"`
	DateStr string `json:"date_str"`
}

func (a *BackendAdapter) Schedule(ctx context.Context, request domain.ScheduleRequest, contact domain.ContactProfile) (*out.ScheduleResponse, error) {
	const op = "backend.schedule"

	var body interface{}
	if request.IsStructured() {
		body = structuredBody{
			Subject:      request.Subject(),
			DateStr:      request.DateString(),
			Contact:      contact,
			IsStructured: true,
		}
	} else {
		body = freeformBody{
			Message: request.Message(),
			Contact: contact,
		}
	}

	a.logger.Info("backend.schedule.send", out.LogFields{
		"kind": request.Kind(),
	})

	resp, err := a.do(ctx, op, http.MethodPost, a.baseURL+"/api/schedule", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		a.logger.Error("backend.schedule.failed", out.LogFields{
			"status": resp.StatusCode,
		})
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	var response out.ScheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		a.logger.Error("backend.schedule.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	a.logger.Debug("backend.schedule.success", out.LogFields{
		"scheduledTime": response.ScheduledTime,
		"delaySeconds":  response.DelaySeconds,
	})

	return &response, nil
}

func (a *BackendAdapter) ListAppointments(ctx context.Context, email, phone string) ([]domain.Appointment, error) {
	const op = "backend.appointments.list"

	if email == "" && phone == "" {
		return nil, &domain.TransportError{Op: op, Err: errNoOwner}
	}

	// Пустые параметры не передаются
	params := nurl.Values{}
	if email != "" {
		params.Set("email", email)
	}
	if phone != "" {
		params.Set("phone", phone)
	}
	url := fmt.Sprintf("%s/api/appointments?%s", a.baseURL, params.Encode())

	resp, err := a.do(ctx, op, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("backend.appointments.list_failed", out.LogFields{
			"status": resp.StatusCode,
		})
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	var appointments []domain.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&appointments); err != nil {
		a.logger.Error("backend.appointments.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	a.logger.Debug("backend.appointments.list_success", out.LogFields{
		"count": len(appointments),
	})

	return appointments, nil
}

func (a *BackendAdapter) UpdateAppointment(ctx context.Context, id int, subject, dateStr string) (*out.MutationResponse, error) {
	url := fmt.Sprintf("%s/api/appointments/%s", a.baseURL, strconv.Itoa(id))
	return a.mutate(ctx, "backend.appointments.update", http.MethodPut, url, updateBody{
		Subject: subject,
		DateStr: dateStr,
	})
}

func (a *BackendAdapter) DeleteAppointment(ctx context.Context, id int) (*out.MutationResponse, error) {
	url := fmt.Sprintf("%s/api/appointments/%s", a.baseURL, strconv.Itoa(id))
	return a.mutate(ctx, "backend.appointments.delete", http.MethodDelete, url, nil)
}

// mutate decodes the body whatever the status: the server answers 400/404 with {status, message}.
func (a *BackendAdapter) mutate(ctx context.Context, op, method, url string, body interface{}) (*out.MutationResponse, error) {
	resp, err := a.do(ctx, op, method, url, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var response out.MutationResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		a.logger.Error(op+".decode_failed", out.LogFields{
			"status": resp.StatusCode,
			"error":  err.Error(),
		})
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	a.logger.Debug(op+".done", out.LogFields{
		"status":   resp.StatusCode,
		"mutation": response.Status,
		"newTime":  response.NewTime,
		"message":  response.Message,
	})

	return &response, nil
}

func (a *BackendAdapter) do(ctx context.Context, op, method, url string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &domain.TransportError{Op: op, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		a.logger.Error(op+".request_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error(op+".request_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	return resp, nil
}
