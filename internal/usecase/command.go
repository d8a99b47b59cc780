package usecase

import (
	"encoding/json"

	"civicdesk/internal/pkg/errs"
	"civicdesk/internal/usecase/shared"

	"civicdesk/internal/domain/request"

	"github.com/google/uuid"
)

// CommandInput is the client-facing description of a mutating operation
// to reify. Exactly one command kind applies; kind-specific fields are
// validated before execution.
type CommandInput struct {
	Kind         shared.CommandKind
	RequestID    uuid.UUID
	NewStatus    *request.Status
	TechnicianID *uuid.UUID
	Notes        string
}

// updateStatusPayload captures everything needed to perform and invert a
// status change. PrevStatus is recorded at execution time; undo targets
// it through the normal validated path.
type updateStatusPayload struct {
	RequestID  uuid.UUID      `json:"request_id"`
	NewStatus  request.Status `json:"new_status"`
	PrevStatus request.Status `json:"prev_status"`
	Notes      string         `json:"notes"`
}

// assignTechnicianPayload captures an assignment change. StatusDriven
// records whether executing the command also moved the request to
// assigned, so undo knows to restore the previous status as well.
type assignTechnicianPayload struct {
	RequestID        uuid.UUID      `json:"request_id"`
	TechnicianID     *uuid.UUID     `json:"technician_id,omitempty"`
	PrevTechnicianID *uuid.UUID     `json:"prev_technician_id,omitempty"`
	PrevStatus       request.Status `json:"prev_status"`
	StatusDriven     bool           `json:"status_driven"`
}

func (in CommandInput) validate() error {
	if !in.Kind.IsValid() {
		return errs.Mark(errs.Newf("unknown command kind %q", in.Kind), errs.ErrDomainValidation)
	}
	if in.RequestID == uuid.Nil {
		return errs.Mark(errs.New("request id is required"), errs.ErrDomainValidation)
	}
	if in.Kind == shared.CommandUpdateStatus && in.NewStatus == nil {
		return errs.Mark(errs.New("new status is required"), errs.ErrDomainValidation)
	}
	return nil
}

func marshalPayload(payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}
	return data, nil
}

func unmarshalUpdateStatus(rec *shared.CommandRecord) (updateStatusPayload, error) {
	var p updateStatusPayload
	if err := json.Unmarshal(rec.Payload, &p); err != nil {
		return p, errs.Mark(err, errs.ErrStorageFailure)
	}
	return p, nil
}

func unmarshalAssignTechnician(rec *shared.CommandRecord) (assignTechnicianPayload, error) {
	var p assignTechnicianPayload
	if err := json.Unmarshal(rec.Payload, &p); err != nil {
		return p, errs.Mark(err, errs.ErrStorageFailure)
	}
	return p, nil
}
