package llm

import "github.com/quotewise/factfinder/constants"

// Partial schemas for per-batch model output. Every field is optional at
// every nesting level: a page batch that mentions nothing in a category is a
// valid result. The field shape itself is strict so a malformed confidence or
// a non-boolean flag shows up in the mismatch list.

type fieldKind int

const (
	textKind fieldKind = iota
	boolKind
)

func fieldSchema(kind fieldKind) map[string]any {
	valueType := []string{"string", "null"}
	if kind == boolKind {
		valueType = []string{"boolean", "null"}
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"value":      map[string]any{"type": valueType},
			"confidence": map[string]any{"enum": []string{"high", "medium", "low"}},
			"flagged":    map[string]any{"type": "boolean"},
			"rawText":    map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	}
}

func categorySchema(fields map[string]fieldKind) map[string]any {
	props := make(map[string]any, len(fields))
	for name, kind := range fields {
		props[name] = fieldSchema(kind)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

func entityArraySchema(fields map[string]fieldKind) map[string]any {
	return map[string]any{
		"type":  "array",
		"items": categorySchema(fields),
	}
}

var personalFields = map[string]fieldKind{
	"ownerFirstName": textKind, "ownerLastName": textKind, "dateOfBirth": textKind,
	"maritalStatus": textKind, "email": textKind, "phone": textKind,
	"mailingAddress": textKind, "city": textKind, "state": textKind,
	"zip": textKind, "occupation": textKind,
}

var propertyFields = map[string]fieldKind{
	"sameAsMailing": boolKind, "propertyAddress": textKind, "yearBuilt": textKind,
	"squareFootage": textKind, "constructionType": textKind, "roofType": textKind,
	"roofYear": textKind, "numStories": textKind, "garageType": textKind,
	"purchaseDate": textKind, "dwellingUse": textKind,
}

var homeCoverageFields = map[string]fieldKind{
	"dwellingCoverage": textKind, "personalPropertyCoverage": textKind,
	"liabilityCoverage": textKind, "medicalPayments": textKind,
	"deductible": textKind, "windHailDeductible": textKind,
	"priorCarrier": textKind, "priorPremium": textKind,
	"yearsWithPriorCarrier": textKind,
}

var safetyFields = map[string]fieldKind{
	"smokeDetectors": boolKind, "burglarAlarm": boolKind, "sprinklerSystem": boolKind,
	"deadbolts": boolKind, "poolOnPremises": boolKind, "trampoline": boolKind,
	"dogOnPremises": boolKind, "dogBreed": textKind,
}

var autoCoverageFields = map[string]fieldKind{
	"bodilyInjuryLimit": textKind, "propertyDamageLimit": textKind,
	"uninsuredMotoristLimit": textKind, "medicalPayments": textKind,
	"rentalReimbursement": boolKind, "roadsideAssistance": boolKind,
	"priorCarrier": textKind, "priorPremium": textKind,
	"continuousCoverageYears": textKind,
}

var vehicleFields = map[string]fieldKind{
	"vin": textKind, "year": textKind, "make": textKind, "model": textKind,
	"annualMileage": textKind, "primaryUse": textKind,
	"ownershipStatus": textKind, "antiTheftDevice": boolKind,
}

var driverFields = map[string]fieldKind{
	"licenseNumber": textKind, "firstName": textKind, "lastName": textKind,
	"dateOfBirth": textKind, "relationship": textKind, "licenseState": textKind,
	"yearsLicensed": textKind, "goodStudent": boolKind,
}

var lienholderFields = map[string]fieldKind{
	"vehicleRef": textKind, "name": textKind, "address": textKind,
	"city": textKind, "state": textKind, "zip": textKind,
}

var deductibleFields = map[string]fieldKind{
	"vehicleRef": textKind, "collisionDeductible": textKind,
	"comprehensiveDeductible": textKind, "fullGlass": boolKind,
}

var incidentFields = map[string]fieldKind{
	"incidentDate": textKind, "driverName": textKind, "incidentType": textKind,
	"description": textKind, "atFault": boolKind, "amountPaid": textKind,
}

// BuildPartialSchema returns the partial JSON-Schema (draft 2020-12 subset)
// for one insurance type, as a generic map.
func BuildPartialSchema(typ constants.InsuranceType) map[string]any {
	props := map[string]any{
		"personal": categorySchema(personalFields),
	}
	switch typ {
	case constants.InsuranceHome:
		props["property"] = categorySchema(propertyFields)
		props["coverage"] = categorySchema(homeCoverageFields)
		props["safety"] = categorySchema(safetyFields)
	case constants.InsuranceAuto:
		props["coverage"] = categorySchema(autoCoverageFields)
		props["vehicles"] = entityArraySchema(vehicleFields)
		props["additionalDrivers"] = entityArraySchema(driverFields)
		props["lienholders"] = entityArraySchema(lienholderFields)
		props["deductibles"] = entityArraySchema(deductibleFields)
		props["incidents"] = entityArraySchema(incidentFields)
	default: // legacy: combined pre-split form
		props["property"] = categorySchema(propertyFields)
		props["coverage"] = categorySchema(homeCoverageFields)
		props["safety"] = categorySchema(safetyFields)
		props["vehicles"] = entityArraySchema(vehicleFields)
		props["additionalDrivers"] = entityArraySchema(driverFields)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}
