package constants

// ExtractionStatus is the canonical status for rows in extractions.
type ExtractionStatus string

// Stable values (store these exact strings in DB).
const (
	StatusPending    ExtractionStatus = "pending"    // record created, pipeline not started
	StatusProcessing ExtractionStatus = "processing" // pipeline running
	StatusCompleted  ExtractionStatus = "completed"  // extracted data stored, awaiting review
	StatusFailed     ExtractionStatus = "failed"     // page extraction or storage failed
	StatusQuoted     ExtractionStatus = "quoted"     // carrier quotes generated from reviewed data
)

// Valid reports whether s is one of the stable status values.
func (s ExtractionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusQuoted:
		return true
	}
	return false
}
