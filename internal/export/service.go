package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/quotewise/factfinder/constants"
	"github.com/quotewise/factfinder/internal/extraction"
	"github.com/quotewise/factfinder/internal/repository"
)

// Service renders a reviewed extraction as an XLSX workbook the agent can
// attach to a carrier submission. Flagged fields are marked NEEDS REVIEW so
// unreviewed data is visible before quoting.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

type row struct {
	section string
	field   string
	value   string
	conf    extraction.Confidence
	flagged bool
	rawText string
}

// ExportReviewXLSX builds the workbook for one completed extraction.
func (s *Service) ExportReviewXLSX(e *repository.Extraction) ([]byte, error) {
	start := time.Now()
	if len(e.ExtractedData) == 0 {
		return nil, fmt.Errorf("extraction %s has no data", e.ID)
	}

	rows, err := flatten(e.InsuranceType, e.ExtractedData)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Fact Finder"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Section", "Field", "Value", "Confidence", "Review", "Original Text"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, r := range rows {
		review := ""
		if r.flagged {
			review = "NEEDS REVIEW"
		}
		values := []any{r.section, r.field, r.value, string(r.conf), review, r.rawText}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.xlsx_built",
		"extraction_id", e.ID,
		"rows", len(rows),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func flatten(typ constants.InsuranceType, blob json.RawMessage) ([]row, error) {
	switch typ {
	case constants.InsuranceHome:
		var d extraction.HomeData
		if err := json.Unmarshal(blob, &d); err != nil {
			return nil, fmt.Errorf("decode home data: %w", err)
		}
		return flattenHome(&d), nil
	case constants.InsuranceAuto:
		var d extraction.AutoData
		if err := json.Unmarshal(blob, &d); err != nil {
			return nil, fmt.Errorf("decode auto data: %w", err)
		}
		return flattenAuto(&d), nil
	default:
		var d extraction.LegacyData
		if err := json.Unmarshal(blob, &d); err != nil {
			return nil, fmt.Errorf("decode legacy data: %w", err)
		}
		return flattenLegacy(&d), nil
	}
}

func textRow(section, field string, f extraction.TextField) row {
	v := ""
	if f.Value != nil {
		v = *f.Value
	}
	return row{section: section, field: field, value: v, conf: f.Confidence, flagged: f.Flagged, rawText: f.RawText}
}

func boolRow(section, field string, f extraction.BoolField) row {
	v := ""
	if f.Value != nil {
		v = strconv.FormatBool(*f.Value)
	}
	return row{section: section, field: field, value: v, conf: f.Confidence, flagged: f.Flagged, rawText: f.RawText}
}

func personalRows(p *extraction.PersonalInfo) []row {
	const s = "Personal"
	return []row{
		textRow(s, "Owner First Name", p.OwnerFirstName),
		textRow(s, "Owner Last Name", p.OwnerLastName),
		textRow(s, "Date of Birth", p.DateOfBirth),
		textRow(s, "Marital Status", p.MaritalStatus),
		textRow(s, "Email", p.Email),
		textRow(s, "Phone", p.Phone),
		textRow(s, "Mailing Address", p.MailingAddress),
		textRow(s, "City", p.City),
		textRow(s, "State", p.State),
		textRow(s, "Zip", p.Zip),
		textRow(s, "Occupation", p.Occupation),
	}
}

func propertyRows(p *extraction.PropertyInfo) []row {
	const s = "Property"
	return []row{
		boolRow(s, "Same as Mailing", p.SameAsMailing),
		textRow(s, "Property Address", p.PropertyAddress),
		textRow(s, "Year Built", p.YearBuilt),
		textRow(s, "Square Footage", p.SquareFootage),
		textRow(s, "Construction Type", p.ConstructionType),
		textRow(s, "Roof Type", p.RoofType),
		textRow(s, "Roof Year", p.RoofYear),
		textRow(s, "Stories", p.NumStories),
		textRow(s, "Garage Type", p.GarageType),
		textRow(s, "Purchase Date", p.PurchaseDate),
		textRow(s, "Dwelling Use", p.DwellingUse),
	}
}

func homeCoverageRows(c *extraction.HomeCoverage) []row {
	const s = "Coverage"
	return []row{
		textRow(s, "Dwelling Coverage", c.DwellingCoverage),
		textRow(s, "Personal Property Coverage", c.PersonalPropertyCoverage),
		textRow(s, "Liability Coverage", c.LiabilityCoverage),
		textRow(s, "Medical Payments", c.MedicalPayments),
		textRow(s, "Deductible", c.Deductible),
		textRow(s, "Wind/Hail Deductible", c.WindHailDeductible),
		textRow(s, "Prior Carrier", c.PriorCarrier),
		textRow(s, "Prior Premium", c.PriorPremium),
		textRow(s, "Years with Prior Carrier", c.YearsWithPriorCarrier),
	}
}

func safetyRows(sf *extraction.SafetyInfo) []row {
	const s = "Safety"
	return []row{
		boolRow(s, "Smoke Detectors", sf.SmokeDetectors),
		boolRow(s, "Burglar Alarm", sf.BurglarAlarm),
		boolRow(s, "Sprinkler System", sf.SprinklerSystem),
		boolRow(s, "Deadbolts", sf.Deadbolts),
		boolRow(s, "Pool on Premises", sf.PoolOnPremises),
		boolRow(s, "Trampoline", sf.Trampoline),
		boolRow(s, "Dog on Premises", sf.DogOnPremises),
		textRow(s, "Dog Breed", sf.DogBreed),
	}
}

func autoCoverageRows(c *extraction.AutoCoverage) []row {
	const s = "Coverage"
	return []row{
		textRow(s, "Bodily Injury Limit", c.BodilyInjuryLimit),
		textRow(s, "Property Damage Limit", c.PropertyDamageLimit),
		textRow(s, "Uninsured Motorist Limit", c.UninsuredMotoristLimit),
		textRow(s, "Medical Payments", c.MedicalPayments),
		boolRow(s, "Rental Reimbursement", c.RentalReimbursement),
		boolRow(s, "Roadside Assistance", c.RoadsideAssistance),
		textRow(s, "Prior Carrier", c.PriorCarrier),
		textRow(s, "Prior Premium", c.PriorPremium),
		textRow(s, "Continuous Coverage Years", c.ContinuousCoverageYears),
	}
}

func vehicleRows(vehicles []extraction.Vehicle) []row {
	var out []row
	for i, v := range vehicles {
		s := fmt.Sprintf("Vehicle %d", i+1)
		out = append(out,
			textRow(s, "VIN", v.VIN),
			textRow(s, "Year", v.Year),
			textRow(s, "Make", v.Make),
			textRow(s, "Model", v.Model),
			textRow(s, "Annual Mileage", v.AnnualMileage),
			textRow(s, "Primary Use", v.PrimaryUse),
			textRow(s, "Ownership", v.OwnershipStatus),
			boolRow(s, "Anti-Theft Device", v.AntiTheftDevice),
		)
	}
	return out
}

func driverRows(drivers []extraction.AdditionalDriver) []row {
	var out []row
	for i, d := range drivers {
		s := fmt.Sprintf("Driver %d", i+1)
		out = append(out,
			textRow(s, "License Number", d.LicenseNumber),
			textRow(s, "First Name", d.FirstName),
			textRow(s, "Last Name", d.LastName),
			textRow(s, "Date of Birth", d.DateOfBirth),
			textRow(s, "Relationship", d.Relationship),
			textRow(s, "License State", d.LicenseState),
			textRow(s, "Years Licensed", d.YearsLicensed),
			boolRow(s, "Good Student", d.GoodStudent),
		)
	}
	return out
}

func flattenHome(d *extraction.HomeData) []row {
	var out []row
	out = append(out, personalRows(&d.Personal)...)
	out = append(out, propertyRows(&d.Property)...)
	out = append(out, homeCoverageRows(&d.Coverage)...)
	out = append(out, safetyRows(&d.Safety)...)
	return out
}

func flattenAuto(d *extraction.AutoData) []row {
	var out []row
	out = append(out, personalRows(&d.Personal)...)
	out = append(out, autoCoverageRows(&d.Coverage)...)
	out = append(out, vehicleRows(d.Vehicles)...)
	out = append(out, driverRows(d.AdditionalDrivers)...)
	for i, l := range d.Lienholders {
		s := fmt.Sprintf("Lienholder %d", i+1)
		out = append(out,
			textRow(s, "Vehicle", l.VehicleRef),
			textRow(s, "Name", l.Name),
			textRow(s, "Address", l.Address),
			textRow(s, "City", l.City),
			textRow(s, "State", l.State),
			textRow(s, "Zip", l.Zip),
		)
	}
	for i, dd := range d.Deductibles {
		s := fmt.Sprintf("Deductible %d", i+1)
		out = append(out,
			textRow(s, "Vehicle", dd.VehicleRef),
			textRow(s, "Collision", dd.CollisionDeductible),
			textRow(s, "Comprehensive", dd.ComprehensiveDeductible),
			boolRow(s, "Full Glass", dd.FullGlass),
		)
	}
	for i, inc := range d.Incidents {
		s := fmt.Sprintf("Incident %d", i+1)
		out = append(out,
			textRow(s, "Date", inc.IncidentDate),
			textRow(s, "Driver", inc.DriverName),
			textRow(s, "Type", inc.IncidentType),
			textRow(s, "Description", inc.Description),
			boolRow(s, "At Fault", inc.AtFault),
			textRow(s, "Amount Paid", inc.AmountPaid),
		)
	}
	return out
}

func flattenLegacy(d *extraction.LegacyData) []row {
	var out []row
	out = append(out, personalRows(&d.Personal)...)
	out = append(out, propertyRows(&d.Property)...)
	out = append(out, homeCoverageRows(&d.Coverage)...)
	out = append(out, safetyRows(&d.Safety)...)
	out = append(out, vehicleRows(d.Vehicles)...)
	out = append(out, driverRows(d.AdditionalDrivers)...)
	return out
}
