package extraction

// Merge rules. Scalars: an incoming populated field replaces the existing one
// when the existing field is flagged, still null, or strictly less confident.
// An incoming null field carries no information and never replaces anything.
// Repeated entities: first non-null identity key wins; later entities with the
// same key are dropped whole. Entities with a null key cannot be deduplicated
// and are always appended so they still surface for human review.

// mergeField applies the scalar replacement rule in place.
func mergeField[T any](dst *Field[T], src Field[T]) {
	if src.Value == nil {
		return
	}
	if dst.Flagged || dst.Value == nil || src.Confidence.Rank() > dst.Confidence.Rank() {
		*dst = src
	}
}

func mergePersonal(dst *PersonalInfo, src *PersonalInfo) {
	if src == nil {
		return
	}
	mergeField(&dst.OwnerFirstName, src.OwnerFirstName)
	mergeField(&dst.OwnerLastName, src.OwnerLastName)
	mergeField(&dst.DateOfBirth, src.DateOfBirth)
	mergeField(&dst.MaritalStatus, src.MaritalStatus)
	mergeField(&dst.Email, src.Email)
	mergeField(&dst.Phone, src.Phone)
	mergeField(&dst.MailingAddress, src.MailingAddress)
	mergeField(&dst.City, src.City)
	mergeField(&dst.State, src.State)
	mergeField(&dst.Zip, src.Zip)
	mergeField(&dst.Occupation, src.Occupation)
}

func mergeProperty(dst *PropertyInfo, src *PropertyInfo) {
	if src == nil {
		return
	}
	mergeField(&dst.SameAsMailing, src.SameAsMailing)
	mergeField(&dst.PropertyAddress, src.PropertyAddress)
	mergeField(&dst.YearBuilt, src.YearBuilt)
	mergeField(&dst.SquareFootage, src.SquareFootage)
	mergeField(&dst.ConstructionType, src.ConstructionType)
	mergeField(&dst.RoofType, src.RoofType)
	mergeField(&dst.RoofYear, src.RoofYear)
	mergeField(&dst.NumStories, src.NumStories)
	mergeField(&dst.GarageType, src.GarageType)
	mergeField(&dst.PurchaseDate, src.PurchaseDate)
	mergeField(&dst.DwellingUse, src.DwellingUse)
}

func mergeHomeCoverage(dst *HomeCoverage, src *HomeCoverage) {
	if src == nil {
		return
	}
	mergeField(&dst.DwellingCoverage, src.DwellingCoverage)
	mergeField(&dst.PersonalPropertyCoverage, src.PersonalPropertyCoverage)
	mergeField(&dst.LiabilityCoverage, src.LiabilityCoverage)
	mergeField(&dst.MedicalPayments, src.MedicalPayments)
	mergeField(&dst.Deductible, src.Deductible)
	mergeField(&dst.WindHailDeductible, src.WindHailDeductible)
	mergeField(&dst.PriorCarrier, src.PriorCarrier)
	mergeField(&dst.PriorPremium, src.PriorPremium)
	mergeField(&dst.YearsWithPriorCarrier, src.YearsWithPriorCarrier)
}

func mergeSafety(dst *SafetyInfo, src *SafetyInfo) {
	if src == nil {
		return
	}
	mergeField(&dst.SmokeDetectors, src.SmokeDetectors)
	mergeField(&dst.BurglarAlarm, src.BurglarAlarm)
	mergeField(&dst.SprinklerSystem, src.SprinklerSystem)
	mergeField(&dst.Deadbolts, src.Deadbolts)
	mergeField(&dst.PoolOnPremises, src.PoolOnPremises)
	mergeField(&dst.Trampoline, src.Trampoline)
	mergeField(&dst.DogOnPremises, src.DogOnPremises)
	mergeField(&dst.DogBreed, src.DogBreed)
}

func mergeAutoCoverage(dst *AutoCoverage, src *AutoCoverage) {
	if src == nil {
		return
	}
	mergeField(&dst.BodilyInjuryLimit, src.BodilyInjuryLimit)
	mergeField(&dst.PropertyDamageLimit, src.PropertyDamageLimit)
	mergeField(&dst.UninsuredMotoristLimit, src.UninsuredMotoristLimit)
	mergeField(&dst.MedicalPayments, src.MedicalPayments)
	mergeField(&dst.RentalReimbursement, src.RentalReimbursement)
	mergeField(&dst.RoadsideAssistance, src.RoadsideAssistance)
	mergeField(&dst.PriorCarrier, src.PriorCarrier)
	mergeField(&dst.PriorPremium, src.PriorPremium)
	mergeField(&dst.ContinuousCoverageYears, src.ContinuousCoverageYears)
}

// textKey lifts a field value into an identity key. nil means "no key".
func textKey(f TextField) *string {
	return f.Value
}

// pairKey joins two field values; both must be present to form a key.
func pairKey(a, b TextField) *string {
	if a.Value == nil || b.Value == nil {
		return nil
	}
	k := *a.Value + "\x00" + *b.Value
	return &k
}

// appendEntities appends incoming entities to dst, dropping any whose
// non-null identity key was already seen.
//
// TODO: duplicate entities are dropped whole even when the later one has
// better data for fields the first left blank; field-level merging with the
// scalar rule is pending product sign-off.
func appendEntities[E any](dst []E, incoming []E, key func(E) *string) []E {
	seen := make(map[string]struct{}, len(dst))
	for _, e := range dst {
		if k := key(e); k != nil {
			seen[*k] = struct{}{}
		}
	}
	for _, e := range incoming {
		k := key(e)
		if k != nil {
			if _, dup := seen[*k]; dup {
				continue
			}
			seen[*k] = struct{}{}
		}
		dst = append(dst, e)
	}
	return dst
}

func vehicleKey(v Vehicle) *string              { return textKey(v.VIN) }
func driverKey(d AdditionalDriver) *string      { return textKey(d.LicenseNumber) }
func lienholderKey(l Lienholder) *string        { return textKey(l.VehicleRef) }
func deductibleKey(d VehicleDeductible) *string { return textKey(d.VehicleRef) }
func incidentKey(i Incident) *string            { return pairKey(i.IncidentDate, i.DriverName) }

// MergeHome folds one partial into the complete home result.
func MergeHome(dst *HomeData, src *HomePartial) {
	if src == nil {
		return
	}
	mergePersonal(&dst.Personal, src.Personal)
	mergeProperty(&dst.Property, src.Property)
	mergeHomeCoverage(&dst.Coverage, src.Coverage)
	mergeSafety(&dst.Safety, src.Safety)
}

// MergeAuto folds one partial into the complete auto result.
func MergeAuto(dst *AutoData, src *AutoPartial) {
	if src == nil {
		return
	}
	mergePersonal(&dst.Personal, src.Personal)
	mergeAutoCoverage(&dst.Coverage, src.Coverage)
	dst.Vehicles = appendEntities(dst.Vehicles, src.Vehicles, vehicleKey)
	dst.AdditionalDrivers = appendEntities(dst.AdditionalDrivers, src.AdditionalDrivers, driverKey)
	dst.Lienholders = appendEntities(dst.Lienholders, src.Lienholders, lienholderKey)
	dst.Deductibles = appendEntities(dst.Deductibles, src.Deductibles, deductibleKey)
	dst.Incidents = appendEntities(dst.Incidents, src.Incidents, incidentKey)
}

// MergeLegacy folds one partial into the complete combined result.
func MergeLegacy(dst *LegacyData, src *LegacyPartial) {
	if src == nil {
		return
	}
	mergePersonal(&dst.Personal, src.Personal)
	mergeProperty(&dst.Property, src.Property)
	mergeHomeCoverage(&dst.Coverage, src.Coverage)
	mergeSafety(&dst.Safety, src.Safety)
	dst.Vehicles = appendEntities(dst.Vehicles, src.Vehicles, vehicleKey)
	dst.AdditionalDrivers = appendEntities(dst.AdditionalDrivers, src.AdditionalDrivers, driverKey)
}
