package screenings

import (
	"time"

	"resume-screener/internal/extract"
	"resume-screener/internal/screening"
)

// Screening is one persisted (resume, role) analysis.
type Screening struct {
	ID             string
	BatchID        string
	Role           string
	// Position is the role's index within its batch.
	Position       int
	FileName       string
	Format         extract.Format
	Checksum       string
	StorageKey     string
	JobDescription string
	Result         screening.Result
	CreatedAt      time.Time
}

// Batch groups the screenings created by one upload.
type Batch struct {
	ID         string
	Screenings []Screening
}
