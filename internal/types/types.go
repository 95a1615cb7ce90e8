package types

// Finding is one line that a detector matched and no suppression pattern
// excluded. Line is zero-based. String holds the whole line with surrounding
// whitespace trimmed; Target holds only the first match of the detector.
type Finding struct {
	File     string `json:"file"`
	Target   string `json:"target"`
	Line     int    `json:"line"`
	String   string `json:"string"`
	Detector string `json:"-"` // name of the structural template that hit
}
