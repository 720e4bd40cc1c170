package extraction

import (
	"reflect"
	"testing"
)

func TestMergeField_ScalarRules(t *testing.T) {
	tests := []struct {
		name     string
		existing TextField
		incoming TextField
		want     string // expected value after merge; "" means nil
	}{
		{
			name:     "fills null existing",
			existing: DefaultField[string](),
			incoming: Text("A", ConfidenceLow, false),
			want:     "A",
		},
		{
			name:     "higher confidence replaces",
			existing: Text("A", ConfidenceLow, false),
			incoming: Text("B", ConfidenceMedium, false),
			want:     "B",
		},
		{
			name:     "equal confidence keeps existing",
			existing: Text("A", ConfidenceMedium, false),
			incoming: Text("B", ConfidenceMedium, false),
			want:     "A",
		},
		{
			name:     "lower confidence keeps existing",
			existing: Text("A", ConfidenceMedium, false),
			incoming: Text("B", ConfidenceLow, false),
			want:     "A",
		},
		{
			name:     "flagged existing always replaced",
			existing: Text("A", ConfidenceHigh, true),
			incoming: Text("B", ConfidenceLow, false),
			want:     "B",
		},
		{
			name:     "null incoming never contributes",
			existing: Text("A", ConfidenceLow, false),
			incoming: TextField{Confidence: ConfidenceHigh},
			want:     "A",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.existing
			mergeField(&got, tt.incoming)
			if tt.want == "" {
				if got.Value != nil {
					t.Fatalf("want nil value, got %q", *got.Value)
				}
				return
			}
			if got.Value == nil || *got.Value != tt.want {
				t.Fatalf("want %q, got %+v", tt.want, got)
			}
		})
	}
}

func TestMergeHome_Idempotent(t *testing.T) {
	partial := &HomePartial{
		Personal: &PersonalInfo{
			OwnerFirstName: Text("John", ConfidenceMedium, false),
			Email:          Text("john@example.com", ConfidenceHigh, false),
		},
		Safety: &SafetyInfo{
			PoolOnPremises: Bool(true, ConfidenceHigh, false),
		},
	}

	once := NewHomeData()
	MergeHome(once, partial)

	twice := NewHomeData()
	MergeHome(twice, partial)
	MergeHome(twice, partial)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merge not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMergeAuto_VehicleDedupByVIN(t *testing.T) {
	const vin = "1HGBH41JXMN109186"

	dst := NewAutoData()
	MergeAuto(dst, &AutoPartial{Vehicles: []Vehicle{{
		VIN:  Text(vin, ConfidenceHigh, false),
		Make: Text("Toyota", ConfidenceHigh, false),
	}}})
	MergeAuto(dst, &AutoPartial{Vehicles: []Vehicle{{
		VIN:   Text(vin, ConfidenceHigh, false),
		Model: Text("Camry", ConfidenceHigh, false),
	}}})

	if len(dst.Vehicles) != 1 {
		t.Fatalf("want 1 vehicle, got %d", len(dst.Vehicles))
	}
	// First-seen entity wins whole; the later Camry model is dropped.
	if dst.Vehicles[0].Model.Value != nil {
		t.Fatalf("duplicate entity fields leaked into first-seen vehicle")
	}
}

func TestMergeAuto_NullKeyAlwaysAppends(t *testing.T) {
	dst := NewAutoData()
	unreadable := Vehicle{Make: Text("Ford", ConfidenceLow, true)}
	MergeAuto(dst, &AutoPartial{Vehicles: []Vehicle{unreadable}})
	MergeAuto(dst, &AutoPartial{Vehicles: []Vehicle{unreadable}})

	// No VIN means no identity; both must surface for human review.
	if len(dst.Vehicles) != 2 {
		t.Fatalf("want 2 vehicles, got %d", len(dst.Vehicles))
	}
}

func TestMergeAuto_IncidentPairKey(t *testing.T) {
	incident := func(date, driver string) Incident {
		return Incident{
			IncidentDate: Text(date, ConfidenceHigh, false),
			DriverName:   Text(driver, ConfidenceHigh, false),
		}
	}

	dst := NewAutoData()
	MergeAuto(dst, &AutoPartial{Incidents: []Incident{incident("2023-04-01", "Jane Doe")}})
	MergeAuto(dst, &AutoPartial{Incidents: []Incident{
		incident("2023-04-01", "Jane Doe"), // duplicate pair
		incident("2023-04-01", "Mark Roe"), // same date, other driver
	}})

	if len(dst.Incidents) != 2 {
		t.Fatalf("want 2 incidents, got %d", len(dst.Incidents))
	}
}

func TestMergeScenario_TwoBatches(t *testing.T) {
	// Batch 1: high-confidence first name. Batch 2: low-confidence variant
	// plus a vehicle. Merged result keeps "John" and has exactly one Toyota.
	dst := NewLegacyData()
	MergeLegacy(dst, &LegacyPartial{
		Personal: &PersonalInfo{OwnerFirstName: Text("John", ConfidenceHigh, false)},
	})
	MergeLegacy(dst, &LegacyPartial{
		Personal: &PersonalInfo{OwnerFirstName: Text("Jon", ConfidenceLow, false)},
		Vehicles: []Vehicle{{
			VIN:  Text("1HGBH41JXMN109186", ConfidenceHigh, false),
			Make: Text("Toyota", ConfidenceHigh, false),
		}},
	})

	if got := dst.Personal.OwnerFirstName.Value; got == nil || *got != "John" {
		t.Fatalf("ownerFirstName = %v, want John", got)
	}
	if len(dst.Vehicles) != 1 {
		t.Fatalf("want 1 vehicle, got %d", len(dst.Vehicles))
	}
	if got := dst.Vehicles[0].Make.Value; got == nil || *got != "Toyota" {
		t.Fatalf("vehicle make = %v, want Toyota", got)
	}
}

func TestNewAutoData_AllDefault(t *testing.T) {
	d := NewAutoData()
	if d.Personal.OwnerFirstName.Value != nil ||
		d.Personal.OwnerFirstName.Confidence != ConfidenceLow ||
		!d.Personal.OwnerFirstName.Flagged {
		t.Fatalf("default scalar not {null, low, flagged}: %+v", d.Personal.OwnerFirstName)
	}
	if len(d.Vehicles) != 0 || len(d.Incidents) != 0 {
		t.Fatalf("default arrays not empty")
	}
}
