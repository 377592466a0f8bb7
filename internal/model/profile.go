package model

// Profile holds the structured biographical fields returned by the
// enrichment API for one profile URL.
type Profile struct {
	FullName    string       `json:"full_name"`
	Occupation  string       `json:"occupation"`
	Summary     string       `json:"summary"`
	Experiences []Experience `json:"experiences"`
	Education   []Education  `json:"education"`
	Skills      []string     `json:"skills"`
	URL         string       `json:"-"`
}

// Experience is one entry in a profile's experience list.
type Experience struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}

// Education is one entry in a profile's education list.
type Education struct {
	DegreeName string `json:"degree_name"`
	School     string `json:"school"`
}

// ProfileResult is the tagged outcome of one profile lookup: either a Profile
// or a human-readable failure reason. Exactly one side is set.
type ProfileResult struct {
	Profile       *Profile
	FailureReason string
}

// ProfileSuccess wraps a Profile in a success result.
func ProfileSuccess(p *Profile) ProfileResult {
	return ProfileResult{Profile: p}
}

// ProfileFailure records a failed lookup with a reason for the memo text.
func ProfileFailure(reason string) ProfileResult {
	return ProfileResult{FailureReason: reason}
}

// Failed reports whether the lookup produced no profile.
func (r ProfileResult) Failed() bool {
	return r.Profile == nil
}
