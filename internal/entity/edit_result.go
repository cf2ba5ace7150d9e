package entity

import "encoding/base64"

type FailureKind string

const (
	FailureConfiguration FailureKind = "CONFIGURATION_ERROR"
	FailureValidation    FailureKind = "VALIDATION_ERROR"
	FailureTransport     FailureKind = "TRANSPORT_ERROR"
	FailureService       FailureKind = "SERVICE_ERROR"
	FailureDecode        FailureKind = "DECODE_ERROR"
	FailureRateLimited   FailureKind = "RATE_LIMITED"
	FailureNotFound      FailureKind = "NOT_FOUND"
	FailureUnexpected    FailureKind = "UNEXPECTED_ERROR"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// EditResult is what the page renders after a submission: exactly one of
// Success or Failure is set.
type EditResult struct {
	Success *EditSuccess
	Failure *EditFailure
}

type EditSuccess struct {
	Status      string `json:"status"`
	Image       string `json:"image"`
	MIMEType    string `json:"mime_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Instruction string `json:"instruction"`
	Note        string `json:"note,omitempty"`
}

type EditFailure struct {
	Status  string      `json:"status"`
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
	TraceID string      `json:"trace_id,omitempty"`
}

func NewEditSuccess(img *EditedImage, instruction string) EditResult {
	return EditResult{Success: &EditSuccess{
		Status:      ResultSuccess,
		Image:       base64.StdEncoding.EncodeToString(img.Data),
		MIMEType:    img.MIMEType,
		Width:       img.Width,
		Height:      img.Height,
		Instruction: instruction,
		Note:        img.Note,
	}}
}

func NewEditFailure(kind FailureKind, message string) EditResult {
	return EditResult{Failure: &EditFailure{
		Status:  ResultFailure,
		Kind:    kind,
		Message: message,
	}}
}

func (r EditResult) IsSuccess() bool {
	return r.Success != nil
}

// Payload is the JSON body for whichever variant is set.
func (r EditResult) Payload() interface{} {
	if r.Success != nil {
		return r.Success
	}
	return r.Failure
}
