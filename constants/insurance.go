package constants

import "strings"

// InsuranceType selects the prompt and partial schema used for extraction.
type InsuranceType string

const (
	InsuranceHome   InsuranceType = "home"
	InsuranceAuto   InsuranceType = "auto"
	InsuranceLegacy InsuranceType = "legacy" // pre-split combined fact finder
)

// MaxPagesPerBatch is the vision endpoint's input limit per request.
const MaxPagesPerBatch = 5

// ParseInsuranceType normalizes s into an InsuranceType.
// An empty string maps to InsuranceLegacy for older clients.
func ParseInsuranceType(s string) (InsuranceType, bool) {
	switch InsuranceType(strings.ToLower(strings.TrimSpace(s))) {
	case InsuranceHome:
		return InsuranceHome, true
	case InsuranceAuto:
		return InsuranceAuto, true
	case InsuranceLegacy, "":
		return InsuranceLegacy, true
	}
	return "", false
}
