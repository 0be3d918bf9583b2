package domain

import (
	"errors"
	"fmt"
)

// Gender enumerates accepted gender selections on the intake form.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists all accepted values, in form display order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// VisitKind discriminates in-person from video consultations.
type VisitKind string

const (
	VisitInPerson VisitKind = "in-person"
	VisitVideo    VisitKind = "video"
)

// VideoPlatform enumerates supported consultation platforms.
type VideoPlatform string

const (
	PlatformZoom       VideoPlatform = "zoom"
	PlatformGoogleMeet VideoPlatform = "google-meet"
	PlatformTeams      VideoPlatform = "microsoft-teams"
)

// VideoPlatforms lists all supported platforms.
func VideoPlatforms() []VideoPlatform {
	return []VideoPlatform{PlatformZoom, PlatformGoogleMeet, PlatformTeams}
}

// ErrPlatformRequired is returned when a video visit lacks a platform.
var ErrPlatformRequired = errors.New("video consultations require a platform")

// Visit is the appointment-type variant. A video visit always carries a valid
// platform; an in-person visit never does. Construct via InPersonVisit or
// VideoVisit so the video-without-platform state cannot be built.
type Visit struct {
	kind     VisitKind
	platform VideoPlatform
}

// InPersonVisit builds the in-person variant.
func InPersonVisit() Visit {
	return Visit{kind: VisitInPerson}
}

// VideoVisit builds the video variant, rejecting missing or unknown platforms.
func VideoVisit(platform VideoPlatform) (Visit, error) {
	switch platform {
	case PlatformZoom, PlatformGoogleMeet, PlatformTeams:
		return Visit{kind: VisitVideo, platform: platform}, nil
	case "":
		return Visit{}, ErrPlatformRequired
	default:
		return Visit{}, fmt.Errorf("unknown video platform %q", platform)
	}
}

// Kind reports the variant tag.
func (v Visit) Kind() VisitKind {
	return v.kind
}

// Platform returns the platform and whether this is a video visit.
func (v Visit) Platform() (VideoPlatform, bool) {
	if v.kind != VisitVideo {
		return "", false
	}
	return v.platform, true
}

// AppointmentRequest is the validated intake form. It is transient: delivery
// to downstream scheduling is a collaborator capability, not local persistence.
type AppointmentRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	Gender         Gender `json:"gender"`
	DateOfBirth    string `json:"dateOfBirth"`
	Visit          Visit  `json:"-"`
	Department     string `json:"department"`
	Doctor         string `json:"doctor"`
	PreferredDate  string `json:"preferredDate"`
	PreferredTime  string `json:"preferredTime"`
	ReasonForVisit string `json:"reasonForVisit"`
	AgreeToTerms   bool   `json:"agreeToTerms"`
}
