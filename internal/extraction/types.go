package extraction

// Category structs mirror the field inventory of carrier quoting forms.
// Every scalar is a TextField or BoolField; repeated entities carry their
// identity key as a regular field (VIN, license number, vehicle reference).

// PersonalInfo is common to every fact finder.
type PersonalInfo struct {
	OwnerFirstName TextField `json:"ownerFirstName"`
	OwnerLastName  TextField `json:"ownerLastName"`
	DateOfBirth    TextField `json:"dateOfBirth"`
	MaritalStatus  TextField `json:"maritalStatus"`
	Email          TextField `json:"email"`
	Phone          TextField `json:"phone"`
	MailingAddress TextField `json:"mailingAddress"`
	City           TextField `json:"city"`
	State          TextField `json:"state"`
	Zip            TextField `json:"zip"`
	Occupation     TextField `json:"occupation"`
}

// PropertyInfo describes the insured dwelling.
type PropertyInfo struct {
	SameAsMailing    BoolField `json:"sameAsMailing"`
	PropertyAddress  TextField `json:"propertyAddress"`
	YearBuilt        TextField `json:"yearBuilt"`
	SquareFootage    TextField `json:"squareFootage"`
	ConstructionType TextField `json:"constructionType"`
	RoofType         TextField `json:"roofType"`
	RoofYear         TextField `json:"roofYear"`
	NumStories       TextField `json:"numStories"`
	GarageType       TextField `json:"garageType"`
	PurchaseDate     TextField `json:"purchaseDate"`
	DwellingUse      TextField `json:"dwellingUse"`
}

// HomeCoverage holds requested limits and prior-carrier history for home.
type HomeCoverage struct {
	DwellingCoverage         TextField `json:"dwellingCoverage"`
	PersonalPropertyCoverage TextField `json:"personalPropertyCoverage"`
	LiabilityCoverage        TextField `json:"liabilityCoverage"`
	MedicalPayments          TextField `json:"medicalPayments"`
	Deductible               TextField `json:"deductible"`
	WindHailDeductible       TextField `json:"windHailDeductible"`
	PriorCarrier             TextField `json:"priorCarrier"`
	PriorPremium             TextField `json:"priorPremium"`
	YearsWithPriorCarrier    TextField `json:"yearsWithPriorCarrier"`
}

// SafetyInfo covers discounts and liability exposures on the dwelling.
type SafetyInfo struct {
	SmokeDetectors  BoolField `json:"smokeDetectors"`
	BurglarAlarm    BoolField `json:"burglarAlarm"`
	SprinklerSystem BoolField `json:"sprinklerSystem"`
	Deadbolts       BoolField `json:"deadbolts"`
	PoolOnPremises  BoolField `json:"poolOnPremises"`
	Trampoline      BoolField `json:"trampoline"`
	DogOnPremises   BoolField `json:"dogOnPremises"`
	DogBreed        TextField `json:"dogBreed"`
}

// AutoCoverage holds requested limits and prior-carrier history for auto.
type AutoCoverage struct {
	BodilyInjuryLimit       TextField `json:"bodilyInjuryLimit"`
	PropertyDamageLimit     TextField `json:"propertyDamageLimit"`
	UninsuredMotoristLimit  TextField `json:"uninsuredMotoristLimit"`
	MedicalPayments         TextField `json:"medicalPayments"`
	RentalReimbursement     BoolField `json:"rentalReimbursement"`
	RoadsideAssistance      BoolField `json:"roadsideAssistance"`
	PriorCarrier            TextField `json:"priorCarrier"`
	PriorPremium            TextField `json:"priorPremium"`
	ContinuousCoverageYears TextField `json:"continuousCoverageYears"`
}

// Vehicle is a repeated entity keyed by VIN.
type Vehicle struct {
	VIN             TextField `json:"vin"`
	Year            TextField `json:"year"`
	Make            TextField `json:"make"`
	Model           TextField `json:"model"`
	AnnualMileage   TextField `json:"annualMileage"`
	PrimaryUse      TextField `json:"primaryUse"`
	OwnershipStatus TextField `json:"ownershipStatus"`
	AntiTheftDevice BoolField `json:"antiTheftDevice"`
}

// AdditionalDriver is a repeated entity keyed by license number.
type AdditionalDriver struct {
	LicenseNumber TextField `json:"licenseNumber"`
	FirstName     TextField `json:"firstName"`
	LastName      TextField `json:"lastName"`
	DateOfBirth   TextField `json:"dateOfBirth"`
	Relationship  TextField `json:"relationship"`
	LicenseState  TextField `json:"licenseState"`
	YearsLicensed TextField `json:"yearsLicensed"`
	GoodStudent   BoolField `json:"goodStudent"`
}

// Lienholder is a repeated entity keyed by the vehicle reference string
// the agent wrote next to it ("2019 Camry", "vehicle 2", ...).
type Lienholder struct {
	VehicleRef TextField `json:"vehicleRef"`
	Name       TextField `json:"name"`
	Address    TextField `json:"address"`
	City       TextField `json:"city"`
	State      TextField `json:"state"`
	Zip        TextField `json:"zip"`
}

// VehicleDeductible is a repeated entity keyed by vehicle reference.
type VehicleDeductible struct {
	VehicleRef              TextField `json:"vehicleRef"`
	CollisionDeductible     TextField `json:"collisionDeductible"`
	ComprehensiveDeductible TextField `json:"comprehensiveDeductible"`
	FullGlass               BoolField `json:"fullGlass"`
}

// Incident is a repeated entity (accident, ticket, claim) keyed by the
// (date, driver name) pair.
type Incident struct {
	IncidentDate TextField `json:"incidentDate"`
	DriverName   TextField `json:"driverName"`
	IncidentType TextField `json:"incidentType"`
	Description  TextField `json:"description"`
	AtFault      BoolField `json:"atFault"`
	AmountPaid   TextField `json:"amountPaid"`
}

// HomeData is the complete result for a home fact finder. The persisted blob
// is its JSON; the property+safety keys identify it as home data.
type HomeData struct {
	Personal PersonalInfo `json:"personal"`
	Property PropertyInfo `json:"property"`
	Coverage HomeCoverage `json:"coverage"`
	Safety   SafetyInfo   `json:"safety"`
}

// AutoData is the complete result for an auto fact finder. The
// vehicles+additionalDrivers keys identify it as auto data.
type AutoData struct {
	Personal          PersonalInfo        `json:"personal"`
	Coverage          AutoCoverage        `json:"coverage"`
	Vehicles          []Vehicle           `json:"vehicles"`
	AdditionalDrivers []AdditionalDriver  `json:"additionalDrivers"`
	Lienholders       []Lienholder        `json:"lienholders"`
	Deductibles       []VehicleDeductible `json:"deductibles"`
	Incidents         []Incident          `json:"incidents"`
}

// LegacyData is the pre-split combined fact finder shape, kept for documents
// scanned before the home/auto forms diverged.
type LegacyData struct {
	Personal          PersonalInfo       `json:"personal"`
	Property          PropertyInfo       `json:"property"`
	Coverage          HomeCoverage       `json:"coverage"`
	Safety            SafetyInfo         `json:"safety"`
	Vehicles          []Vehicle          `json:"vehicles"`
	AdditionalDrivers []AdditionalDriver `json:"additionalDrivers"`
}

// Partials are the per-batch sparse results: a nil category means the batch
// mentioned nothing in it.

type HomePartial struct {
	Personal *PersonalInfo `json:"personal,omitempty"`
	Property *PropertyInfo `json:"property,omitempty"`
	Coverage *HomeCoverage `json:"coverage,omitempty"`
	Safety   *SafetyInfo   `json:"safety,omitempty"`
}

type AutoPartial struct {
	Personal          *PersonalInfo       `json:"personal,omitempty"`
	Coverage          *AutoCoverage       `json:"coverage,omitempty"`
	Vehicles          []Vehicle           `json:"vehicles,omitempty"`
	AdditionalDrivers []AdditionalDriver  `json:"additionalDrivers,omitempty"`
	Lienholders       []Lienholder        `json:"lienholders,omitempty"`
	Deductibles       []VehicleDeductible `json:"deductibles,omitempty"`
	Incidents         []Incident          `json:"incidents,omitempty"`
}

type LegacyPartial struct {
	Personal          *PersonalInfo      `json:"personal,omitempty"`
	Property          *PropertyInfo      `json:"property,omitempty"`
	Coverage          *HomeCoverage      `json:"coverage,omitempty"`
	Safety            *SafetyInfo        `json:"safety,omitempty"`
	Vehicles          []Vehicle          `json:"vehicles,omitempty"`
	AdditionalDrivers []AdditionalDriver `json:"additionalDrivers,omitempty"`
}
