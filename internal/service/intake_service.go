package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/patient-booking/internal/api/dto"
	"github.com/spec-kit/patient-booking/internal/catalog"
	"github.com/spec-kit/patient-booking/internal/domain"
	"github.com/spec-kit/patient-booking/internal/events"
	"github.com/spec-kit/patient-booking/internal/validation"
	apperrors "github.com/spec-kit/patient-booking/pkg/util/errorutil"
)

const dateLayout = "2006-01-02"

// Submitter delivers a validated appointment request downstream. Delivery is
// an external collaborator capability; the service only validates and hands
// off.
type Submitter interface {
	Submit(ctx context.Context, reference string, req domain.AppointmentRequest) error
}

// EventSubmitter publishes the submission as a domain event and logs it.
// It stands in until a real scheduling integration exists.
type EventSubmitter struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewEventSubmitter builds the default submitter.
func NewEventSubmitter(dispatcher events.Dispatcher, logger *zap.Logger) *EventSubmitter {
	return &EventSubmitter{dispatcher: dispatcher, logger: logger}
}

// Submit publishes an appointment_submitted event.
func (e *EventSubmitter) Submit(ctx context.Context, reference string, req domain.AppointmentRequest) error {
	platform, _ := req.Visit.Platform()
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAppointmentSubmitted,
		Timestamp: time.Now().UTC(),
		Payload: events.AppointmentSubmittedPayload{
			Reference:     reference,
			Email:         req.Email,
			Department:    req.Department,
			Doctor:        req.Doctor,
			VisitKind:     req.Visit.Kind(),
			VideoPlatform: platform,
			PreferredDate: req.PreferredDate,
			PreferredTime: req.PreferredTime,
		},
	}
	e.logger.Info("appointment submitted",
		zap.String("reference", reference),
		zap.String("department", req.Department),
		zap.String("doctor", req.Doctor),
		zap.String("visit_kind", string(req.Visit.Kind())),
	)
	if e.dispatcher == nil {
		return nil
	}
	return e.dispatcher.Publish(ctx, event)
}

// IntakeService validates appointment requests against the whole schema and
// hands accepted ones to the submitter.
type IntakeService struct {
	catalog   *catalog.Catalog
	submitter Submitter
	validator *validation.Validator
	logger    *zap.Logger

	now func() time.Time
}

// NewIntakeService builds the service.
func NewIntakeService(cat *catalog.Catalog, submitter Submitter, logger *zap.Logger) *IntakeService {
	v := validation.New().WithMessages(map[string]string{
		"fullName.required":       "Full name must be at least 2 characters",
		"fullName.min":            "Full name must be at least 2 characters",
		"email.required":          "Please enter a valid email address",
		"email.email":             "Please enter a valid email address",
		"phoneNumber.required":    "Please enter a valid phone number",
		"phoneNumber.min":         "Please enter a valid phone number",
		"gender.required":         "Please select your gender",
		"gender.oneof":            "Please select your gender",
		"dateOfBirth.required":    "Please select your date of birth",
		"department.required":     "Please select a department",
		"doctor.required":         "Please select a doctor",
		"preferredDate.required":  "Please select a preferred date",
		"preferredTime.required":  "Please select a preferred time",
		"reasonForVisit.required": "Please provide at least 10 characters describing your reason for visit",
		"reasonForVisit.min":      "Please provide at least 10 characters describing your reason for visit",
		"agreeToTerms.required":   "You must agree to the terms and privacy policy",
	})

	return &IntakeService{
		catalog:   cat,
		submitter: submitter,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// Validate evaluates the whole schema in one pass: tag rules first, then the
// cross-field rules (visit variant, roster membership, date window). All
// violations are reported together.
func (s *IntakeService) Validate(input dto.AppointmentRequest) (domain.AppointmentRequest, validation.Errors) {
	errs := s.validator.Struct(input)
	if errs == nil {
		errs = validation.Errors{}
	}

	visit := domain.InPersonVisit()
	if input.AppointmentType == string(domain.VisitVideo) {
		var err error
		visit, err = domain.VideoVisit(domain.VideoPlatform(input.VideoPlatform))
		if err != nil {
			errs["videoPlatform"] = "Please select a video platform for video consultations"
		}
	}

	if input.Department != "" {
		if !s.catalog.HasDepartment(input.Department) {
			errs["department"] = "Please select a department"
		} else if input.Doctor != "" && !s.catalog.HasDoctor(input.Department, input.Doctor) {
			errs["doctor"] = "Please select a doctor from the chosen department"
		}
	}

	if input.PreferredDate != "" {
		if _, err := time.Parse(dateLayout, input.PreferredDate); err != nil {
			errs["preferredDate"] = "Please select a preferred date"
		} else if input.PreferredDate < s.now().Format(dateLayout) {
			// dates are ISO formatted so string order is date order
			errs["preferredDate"] = "Preferred date cannot be in the past"
		}
	}

	if len(errs) > 0 {
		return domain.AppointmentRequest{}, errs
	}

	return domain.AppointmentRequest{
		FullName:       input.FullName,
		Email:          input.Email,
		PhoneNumber:    input.PhoneNumber,
		Gender:         domain.Gender(input.Gender),
		DateOfBirth:    input.DateOfBirth,
		Visit:          visit,
		Department:     input.Department,
		Doctor:         input.Doctor,
		PreferredDate:  input.PreferredDate,
		PreferredTime:  input.PreferredTime,
		ReasonForVisit: input.ReasonForVisit,
		AgreeToTerms:   input.AgreeToTerms,
	}, nil
}

// Submit validates and hands the request to the submitter, returning the
// tracking reference.
func (s *IntakeService) Submit(ctx context.Context, input dto.AppointmentRequest) (string, error) {
	req, errs := s.Validate(input)
	if errs != nil {
		return "", apperrors.NewValidationError("validation failed", errs.Details())
	}

	reference := uuid.NewString()
	if err := s.submitter.Submit(ctx, reference, req); err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return reference, nil
}

// Catalog exposes the injected roster for the catalog endpoint.
func (s *IntakeService) Catalog() *catalog.Catalog {
	return s.catalog
}

// FormState holds the fields that shape the rest of the intake form.
type FormState struct {
	AppointmentType domain.VisitKind
	Department      string
	Doctor          string
}

// FormView is the visible section set, a pure function of the state.
type FormView struct {
	ShowVideoSection bool
	DoctorOptions    []string
}

// View derives what the form should show for the given state.
func (s *IntakeService) View(state FormState) FormView {
	view := FormView{ShowVideoSection: state.AppointmentType == domain.VisitVideo}
	if doctors, ok := s.catalog.Doctors(state.Department); ok {
		view.DoctorOptions = doctors
	}
	return view
}

// SetDepartment moves the form to a new department. Rosters are disjoint per
// department, so a previously chosen doctor is reset.
func (s *IntakeService) SetDepartment(state FormState, department string) FormState {
	if state.Department == department {
		return state
	}
	state.Department = department
	state.Doctor = ""
	return state
}

// SetAppointmentType switches the visit kind, toggling the video section.
func (s *IntakeService) SetAppointmentType(state FormState, kind domain.VisitKind) FormState {
	state.AppointmentType = kind
	return state
}
