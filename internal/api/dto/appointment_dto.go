package dto

// AppointmentRequest is the wire shape of the intake form. The
// appointmentType/videoPlatform pair is decoded into the visit variant by the
// intake service; the cross-field rule lives there, not in tags.
type AppointmentRequest struct {
	FullName        string `json:"fullName" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber" validate:"required,min=10"`
	Gender          string `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth     string `json:"dateOfBirth" validate:"required"`
	AppointmentType string `json:"appointmentType" validate:"required,oneof=in-person video"`
	Department      string `json:"department" validate:"required"`
	Doctor          string `json:"doctor" validate:"required"`
	PreferredDate   string `json:"preferredDate" validate:"required"`
	PreferredTime   string `json:"preferredTime" validate:"required"`
	ReasonForVisit  string `json:"reasonForVisit" validate:"required,min=10"`
	VideoPlatform   string `json:"videoPlatform"`
	AgreeToTerms    bool   `json:"agreeToTerms" validate:"required"`
}

// AppointmentAccepted is returned when an intake submission is handed off.
type AppointmentAccepted struct {
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

// CatalogResponse describes the selectable values for the intake form.
type CatalogResponse struct {
	Departments []CatalogDepartment `json:"departments"`
	Genders     []string            `json:"genders"`
	Platforms   []string            `json:"videoPlatforms"`
}

// CatalogDepartment pairs a department with its doctor roster.
type CatalogDepartment struct {
	Name    string   `json:"name"`
	Doctors []string `json:"doctors"`
}

// PrefillResponse carries the signed-in patient's details for form pre-fill.
type PrefillResponse struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
