// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ServiceStatus is the outcome of a health probe. It only drives the status
// indicator and never gates conversions.
type ServiceStatus string

const (
	StatusOnline  ServiceStatus = "online"
	StatusOffline ServiceStatus = "offline"
)

// HealthReport pairs a status with the message shown next to it.
type HealthReport struct {
	Status  ServiceStatus `json:"status" yaml:"status"`
	Message string        `json:"message" yaml:"message"`
}

// Online reports whether the service answered the probe successfully.
func (h HealthReport) Online() bool {
	return h.Status == StatusOnline
}
