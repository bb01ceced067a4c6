// internal/app/features/registrations/register.go
package registrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	errorsfeature "github.com/tantrafest/tantra/internal/app/features/errors"
	departmentstore "github.com/tantrafest/tantra/internal/app/store/departments"
	eventstore "github.com/tantrafest/tantra/internal/app/store/events"
	registrationstore "github.com/tantrafest/tantra/internal/app/store/registrations"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/app/system/limits"
	"github.com/tantrafest/tantra/internal/app/system/timeouts"
	"github.com/tantrafest/tantra/internal/domain/models"
	"go.uber.org/zap"
)

// HandleRegister stores one registration.
// POST /api/register
//
// On success: 201 and {"status":"ok","saved":true,"id":"<registration id>"}.
// Validation failures are 400 {"error":"..."}. Repeated submissions are stored
// again; there is no idempotency key.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxRegisterBody))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil || body == nil {
		h.ErrLog.JSON(w, r, "register decode failed", apperr.Validation("Request body must be a JSON object."))
		return
	}

	sub := parseSubmission(body)
	if err := sub.validate(); err != nil {
		h.Log.Info("registration rejected", zap.String("event_id", sub.EventID), zap.String("reason", apperr.Message(err)))
		h.ErrLog.JSON(w, r, "registration rejected", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "register")
	defer cancel()

	reg := models.Registration{
		EventID:       sub.EventID,
		EventName:     sub.EventName,
		Participant:   sub.Participant,
		TransactionID: sub.TransactionID,
	}
	if err := h.denormalize(ctx, &reg); err != nil {
		h.ErrLog.JSON(w, r, "registration event lookup failed", err)
		return
	}

	saved, err := registrationstore.New(h.Store).Create(ctx, reg)
	if err != nil {
		h.ErrLog.JSON(w, r, "registration insert failed", err)
		return
	}

	h.Log.Info("registration saved",
		zap.String("id", saved.ID),
		zap.String("event_id", saved.EventID),
		zap.Bool("has_txn", saved.TransactionID != ""),
	)
	errorsfeature.WriteJSON(w, http.StatusCreated, map[string]any{
		"status": "ok",
		"saved":  true,
		"id":     saved.ID,
	})
}

// denormalize copies the event's name and department onto reg. An event that
// does not exist is not an error: the registration keeps whatever event name
// the client sent and no department.
func (h *Handler) denormalize(ctx context.Context, reg *models.Registration) error {
	ev, err := eventstore.New(h.Store).Get(ctx, reg.EventID)
	if errors.Is(err, apperr.ErrNotFound) {
		h.Log.Info("registration for unknown event", zap.String("event_id", reg.EventID))
		return nil
	}
	if err != nil {
		return err
	}
	if ev.Name != "" {
		reg.EventName = ev.Name
	}

	ref := ev.DepartmentRef()
	if ref == "" {
		return nil
	}
	dept, err := departmentstore.New(h.Store).Get(ctx, ref)
	switch {
	case err == nil:
		reg.DeptID = dept.ID
		reg.DeptName = dept.Name
	case errors.Is(err, apperr.ErrNotFound):
		// Older events store the department's display name.
		reg.DeptName = ref
	default:
		return err
	}
	return nil
}
