package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/patient-booking/internal/api/dto"
	"github.com/spec-kit/patient-booking/internal/catalog"
	"github.com/spec-kit/patient-booking/internal/domain"
	apperrors "github.com/spec-kit/patient-booking/pkg/util/errorutil"
)

type fakeSubmitter struct {
	refs []string
	reqs []domain.AppointmentRequest
	err  error
}

func (f *fakeSubmitter) Submit(_ context.Context, reference string, req domain.AppointmentRequest) error {
	if f.err != nil {
		return f.err
	}
	f.refs = append(f.refs, reference)
	f.reqs = append(f.reqs, req)
	return nil
}

func newIntake(t *testing.T) (*IntakeService, *fakeSubmitter) {
	t.Helper()
	submitter := &fakeSubmitter{}
	svc := NewIntakeService(catalog.Default(), submitter, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return svc, submitter
}

func validIntake() dto.AppointmentRequest {
	return dto.AppointmentRequest{
		FullName:        "Ann Lee",
		Email:           "ann@x.com",
		PhoneNumber:     "5550123456",
		Gender:          "female",
		DateOfBirth:     "1990-06-15",
		AppointmentType: "in-person",
		Department:      "Cardiology",
		Doctor:          "Dr. Robert Wilson",
		PreferredDate:   "2026-03-20",
		PreferredTime:   "10:30",
		ReasonForVisit:  "Recurring chest pain during exercise",
		AgreeToTerms:    true,
	}
}

func TestIntakeValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete in-person request", func(t *testing.T) {
		t.Parallel()
		svc, _ := newIntake(t)

		req, errs := svc.Validate(validIntake())
		require.Nil(t, errs)
		assert.Equal(t, domain.VisitInPerson, req.Visit.Kind())
		_, isVideo := req.Visit.Platform()
		assert.False(t, isVideo)
	})

	t.Run("video without platform fails, in-person ignores platform", func(t *testing.T) {
		t.Parallel()
		svc, _ := newIntake(t)

		input := validIntake()
		input.AppointmentType = "video"
		input.VideoPlatform = ""
		_, errs := svc.Validate(input)
		require.NotNil(t, errs)
		assert.Equal(t, "Please select a video platform for video consultations", errs["videoPlatform"])

		input.AppointmentType = "in-person"
		_, errs = svc.Validate(input)
		assert.Nil(t, errs)
	})

	t.Run("video with platform carries the variant", func(t *testing.T) {
		t.Parallel()
		svc, _ := newIntake(t)

		input := validIntake()
		input.AppointmentType = "video"
		input.VideoPlatform = "zoom"
		req, errs := svc.Validate(input)
		require.Nil(t, errs)

		assert.Equal(t, domain.VisitVideo, req.Visit.Kind())
		platform, ok := req.Visit.Platform()
		require.True(t, ok)
		assert.Equal(t, domain.PlatformZoom, platform)
	})

	t.Run("unknown video platform fails", func(t *testing.T) {
		t.Parallel()
		svc, _ := newIntake(t)

		input := validIntake()
		input.AppointmentType = "video"
		input.VideoPlatform = "skype"
		_, errs := svc.Validate(input)
		require.NotNil(t, errs)
		assert.Contains(t, errs, "videoPlatform")
	})

	t.Run("doctor outside the selected department fails", func(t *testing.T) {
		t.Parallel()
		svc, _ := newIntake(t)

		input := validIntake()
		input.Doctor = "Dr. Jennifer Lee" // Pediatrics roster
		_, errs := svc.Validate(input)
		require.NotNil(t, errs)
		assert.Equal(t, "Please select a doctor from the chosen department", errs["doctor"])
	})

	t.Run("unknown department fails", func(t *testing.T) {
		t.Parallel()
		svc, _ := newIntake(t)

		input := validIntake()
		input.Department = "Astrology"
		_, errs := svc.Validate(input)
		require.NotNil(t, errs)
		assert.Contains(t, errs, "department")
	})

	t.Run("preferred date must not precede today", func(t *testing.T) {
		t.Parallel()
		svc, _ := newIntake(t)

		input := validIntake()
		input.PreferredDate = "2026-03-09"
		_, errs := svc.Validate(input)
		require.NotNil(t, errs)
		assert.Equal(t, "Preferred date cannot be in the past", errs["preferredDate"])

		input.PreferredDate = "2026-03-10" // today is fine
		_, errs = svc.Validate(input)
		assert.Nil(t, errs)
	})

	t.Run("short reason and missing consent are rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := newIntake(t)

		input := validIntake()
		input.ReasonForVisit = "sick"
		input.AgreeToTerms = false
		_, errs := svc.Validate(input)
		require.NotNil(t, errs)
		assert.Equal(t, "Please provide at least 10 characters describing your reason for visit", errs["reasonForVisit"])
		assert.Equal(t, "You must agree to the terms and privacy policy", errs["agreeToTerms"])
	})

	t.Run("all violations reported in one pass", func(t *testing.T) {
		t.Parallel()
		svc, _ := newIntake(t)

		_, errs := svc.Validate(dto.AppointmentRequest{AppointmentType: "video"})
		require.NotNil(t, errs)
		for _, field := range []string{
			"fullName", "email", "phoneNumber", "gender", "dateOfBirth",
			"department", "doctor", "preferredDate", "preferredTime",
			"reasonForVisit", "agreeToTerms", "videoPlatform",
		} {
			assert.Contains(t, errs, field)
		}
	})
}

func TestIntakeSubmit(t *testing.T) {
	t.Parallel()

	t.Run("valid request is handed to the submitter", func(t *testing.T) {
		t.Parallel()
		svc, submitter := newIntake(t)

		reference, err := svc.Submit(context.Background(), validIntake())
		require.NoError(t, err)
		assert.NotEmpty(t, reference)
		require.Len(t, submitter.reqs, 1)
		assert.Equal(t, reference, submitter.refs[0])
		assert.Equal(t, "Cardiology", submitter.reqs[0].Department)
	})

	t.Run("invalid request never reaches the submitter", func(t *testing.T) {
		t.Parallel()
		svc, submitter := newIntake(t)

		input := validIntake()
		input.AgreeToTerms = false
		_, err := svc.Submit(context.Background(), input)

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		assert.Empty(t, submitter.reqs)
	})

	t.Run("submitter failure surfaces as internal error", func(t *testing.T) {
		t.Parallel()
		submitter := &fakeSubmitter{err: errors.New("downstream unavailable")}
		svc := NewIntakeService(catalog.Default(), submitter, zap.NewNop())
		svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

		_, err := svc.Submit(context.Background(), validIntake())
		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	})
}

func TestFormState(t *testing.T) {
	t.Parallel()

	t.Run("video section visible iff visit kind is video", func(t *testing.T) {
		t.Parallel()
		svc, _ := newIntake(t)

		state := FormState{AppointmentType: domain.VisitInPerson}
		assert.False(t, svc.View(state).ShowVideoSection)

		state = svc.SetAppointmentType(state, domain.VisitVideo)
		assert.True(t, svc.View(state).ShowVideoSection)
	})

	t.Run("changing department resets chosen doctor", func(t *testing.T) {
		t.Parallel()
		svc, _ := newIntake(t)

		state := FormState{Department: "Cardiology", Doctor: "Dr. Robert Wilson"}
		state = svc.SetDepartment(state, "Neurology")
		assert.Equal(t, "Neurology", state.Department)
		assert.Empty(t, state.Doctor)
	})

	t.Run("re-selecting the same department keeps the doctor", func(t *testing.T) {
		t.Parallel()
		svc, _ := newIntake(t)

		state := FormState{Department: "Cardiology", Doctor: "Dr. Robert Wilson"}
		state = svc.SetDepartment(state, "Cardiology")
		assert.Equal(t, "Dr. Robert Wilson", state.Doctor)
	})

	t.Run("doctor options follow the department roster", func(t *testing.T) {
		t.Parallel()
		svc, _ := newIntake(t)

		view := svc.View(FormState{Department: "Pediatrics"})
		assert.Equal(t, []string{"Dr. Jennifer Lee", "Dr. Mark Anderson", "Dr. Rachel Green"}, view.DoctorOptions)

		view = svc.View(FormState{})
		assert.Empty(t, view.DoctorOptions)
	})
}
