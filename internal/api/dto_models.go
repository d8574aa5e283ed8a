package api

// ErrorResponse is the standard error envelope returned by every handler.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse is the envelope for operations with no payload.
type SuccessResponse struct {
	Message string `json:"message"`
}

// EnrollmentStatusResponse reports the caller's enrollment state for a
// course: none, pending or approved.
type EnrollmentStatusResponse struct {
	Status string `json:"status"`
}

// CertificateResponse carries an issued certificate id.
type CertificateResponse struct {
	CertificateID string `json:"certificateId"`
}

// ProgressUpdateResponse is returned after a lesson completion.
type ProgressUpdateResponse struct {
	Progress int `json:"progress"`
}

// AccessResponse reports whether the caller may access course content.
type AccessResponse struct {
	Enrolled bool `json:"enrolled"`
}

// RoleResponse reports the caller's role.
type RoleResponse struct {
	Role string `json:"role"`
}
