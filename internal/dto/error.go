package dto

import (
	"time"

	"aquaorders/internal/errors"
)

type ErrorResponse struct {
	TraceID   string                    `json:"traceId"`
	Status    int                       `json:"status"`
	Code      string                    `json:"code"`
	Message   string                    `json:"message"`
	Details   []errors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                 `json:"timestamp"`
}
