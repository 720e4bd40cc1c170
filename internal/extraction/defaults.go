package extraction

// Default constructors produce the all-unfilled baseline the merger folds
// partials into: every scalar {value: null, confidence: low, flagged: true},
// every entity array empty. A pipeline run where no batch succeeded returns
// these unchanged.

func defaultPersonal() PersonalInfo {
	return PersonalInfo{
		OwnerFirstName: DefaultField[string](),
		OwnerLastName:  DefaultField[string](),
		DateOfBirth:    DefaultField[string](),
		MaritalStatus:  DefaultField[string](),
		Email:          DefaultField[string](),
		Phone:          DefaultField[string](),
		MailingAddress: DefaultField[string](),
		City:           DefaultField[string](),
		State:          DefaultField[string](),
		Zip:            DefaultField[string](),
		Occupation:     DefaultField[string](),
	}
}

func defaultProperty() PropertyInfo {
	return PropertyInfo{
		SameAsMailing:    DefaultField[bool](),
		PropertyAddress:  DefaultField[string](),
		YearBuilt:        DefaultField[string](),
		SquareFootage:    DefaultField[string](),
		ConstructionType: DefaultField[string](),
		RoofType:         DefaultField[string](),
		RoofYear:         DefaultField[string](),
		NumStories:       DefaultField[string](),
		GarageType:       DefaultField[string](),
		PurchaseDate:     DefaultField[string](),
		DwellingUse:      DefaultField[string](),
	}
}

func defaultHomeCoverage() HomeCoverage {
	return HomeCoverage{
		DwellingCoverage:         DefaultField[string](),
		PersonalPropertyCoverage: DefaultField[string](),
		LiabilityCoverage:        DefaultField[string](),
		MedicalPayments:          DefaultField[string](),
		Deductible:               DefaultField[string](),
		WindHailDeductible:       DefaultField[string](),
		PriorCarrier:             DefaultField[string](),
		PriorPremium:             DefaultField[string](),
		YearsWithPriorCarrier:    DefaultField[string](),
	}
}

func defaultSafety() SafetyInfo {
	return SafetyInfo{
		SmokeDetectors:  DefaultField[bool](),
		BurglarAlarm:    DefaultField[bool](),
		SprinklerSystem: DefaultField[bool](),
		Deadbolts:       DefaultField[bool](),
		PoolOnPremises:  DefaultField[bool](),
		Trampoline:      DefaultField[bool](),
		DogOnPremises:   DefaultField[bool](),
		DogBreed:        DefaultField[string](),
	}
}

func defaultAutoCoverage() AutoCoverage {
	return AutoCoverage{
		BodilyInjuryLimit:       DefaultField[string](),
		PropertyDamageLimit:     DefaultField[string](),
		UninsuredMotoristLimit:  DefaultField[string](),
		MedicalPayments:         DefaultField[string](),
		RentalReimbursement:     DefaultField[bool](),
		RoadsideAssistance:      DefaultField[bool](),
		PriorCarrier:            DefaultField[string](),
		PriorPremium:            DefaultField[string](),
		ContinuousCoverageYears: DefaultField[string](),
	}
}

// NewHomeData returns the all-default home result.
func NewHomeData() *HomeData {
	return &HomeData{
		Personal: defaultPersonal(),
		Property: defaultProperty(),
		Coverage: defaultHomeCoverage(),
		Safety:   defaultSafety(),
	}
}

// NewAutoData returns the all-default auto result.
func NewAutoData() *AutoData {
	return &AutoData{
		Personal:          defaultPersonal(),
		Coverage:          defaultAutoCoverage(),
		Vehicles:          []Vehicle{},
		AdditionalDrivers: []AdditionalDriver{},
		Lienholders:       []Lienholder{},
		Deductibles:       []VehicleDeductible{},
		Incidents:         []Incident{},
	}
}

// NewLegacyData returns the all-default combined result.
func NewLegacyData() *LegacyData {
	return &LegacyData{
		Personal:          defaultPersonal(),
		Property:          defaultProperty(),
		Coverage:          defaultHomeCoverage(),
		Safety:            defaultSafety(),
		Vehicles:          []Vehicle{},
		AdditionalDrivers: []AdditionalDriver{},
	}
}
