package llm

import (
	"strings"

	"github.com/quotewise/factfinder/constants"
)

// Prompt text is static configuration. Selecting a prompt also fixes which
// partial schema the validator uses for the batch.

const basePromptRules = `You are reading scanned pages of a handwritten insurance fact finder form.
Extract every fact you can see into JSON. Return ONLY a JSON object, no prose.

Every extracted fact is an object: {"value": <string|boolean|null>, "confidence": "high"|"medium"|"low", "flagged": <boolean>, "rawText": <string, optional>}.
- "value" is the normalized datum; use null ONLY when the field is visible but unreadable.
- OMIT any field these pages do not mention at all. Never invent values.
- "confidence" reflects how certain you are of the reading.
- Set "flagged" true when a human must review: illegible, ambiguous, contradictory, or a required field that looks suspicious.
- Put the original page text in "rawText" when your normalized value differs from it (e.g. date reformatting).
- Normalize dates to YYYY-MM-DD. Normalize dollar amounts to plain digits without symbols.`

const homePromptSections = `The form covers HOME insurance. Top-level keys (all optional): "personal", "property", "coverage", "safety".
personal: ownerFirstName, ownerLastName, dateOfBirth, maritalStatus, email, phone, mailingAddress, city, state, zip, occupation.
property: sameAsMailing (boolean), propertyAddress, yearBuilt, squareFootage, constructionType, roofType, roofYear, numStories, garageType, purchaseDate, dwellingUse.
coverage: dwellingCoverage, personalPropertyCoverage, liabilityCoverage, medicalPayments, deductible, windHailDeductible, priorCarrier, priorPremium, yearsWithPriorCarrier.
safety: smokeDetectors, burglarAlarm, sprinklerSystem, deadbolts, poolOnPremises, trampoline, dogOnPremises (all boolean), dogBreed.`

const autoPromptSections = `The form covers AUTO insurance. Top-level keys (all optional): "personal", "coverage", "vehicles", "additionalDrivers", "lienholders", "deductibles", "incidents".
personal: ownerFirstName, ownerLastName, dateOfBirth, maritalStatus, email, phone, mailingAddress, city, state, zip, occupation.
coverage: bodilyInjuryLimit, propertyDamageLimit, uninsuredMotoristLimit, medicalPayments, rentalReimbursement (boolean), roadsideAssistance (boolean), priorCarrier, priorPremium, continuousCoverageYears.
vehicles: array; each has vin, year, make, model, annualMileage, primaryUse, ownershipStatus, antiTheftDevice (boolean). Read VINs character by character; flag a vehicle's vin when any character is uncertain.
additionalDrivers: array; each has licenseNumber, firstName, lastName, dateOfBirth, relationship, licenseState, yearsLicensed, goodStudent (boolean).
lienholders: array; each has vehicleRef (the vehicle it applies to, as written), name, address, city, state, zip.
deductibles: array; each has vehicleRef, collisionDeductible, comprehensiveDeductible, fullGlass (boolean).
incidents: array of accidents/tickets/claims; each has incidentDate, driverName, incidentType, description, atFault (boolean), amountPaid.`

const legacyPromptSections = `The form is a combined fact finder covering both HOME and AUTO. Top-level keys (all optional): "personal", "property", "coverage", "safety", "vehicles", "additionalDrivers".
Use the home field names for personal/property/coverage/safety and the auto field names for vehicles/additionalDrivers.`

// BuildPrompt returns the fixed prompt for the requested insurance type.
func BuildPrompt(typ constants.InsuranceType) string {
	sections := legacyPromptSections
	switch typ {
	case constants.InsuranceHome:
		sections = homePromptSections
	case constants.InsuranceAuto:
		sections = autoPromptSections
	}
	return strings.Join([]string{basePromptRules, sections}, "\n\n")
}
