package model

// UploadedFile is a request blob written to temporary storage, tagged with the
// declared media type and the client's original filename.
type UploadedFile struct {
	Path         string
	OriginalName string
	ContentType  string
}

// DealTerms carries the free-form deal-term scalars from the request.
type DealTerms struct {
	CurrentRound      string
	ProposedValuation string
	ValuationDate     string
}

// MemoRequest is a single memorandum-generation request. All fields are
// optional; the pipeline rejects the request only when no text source yields
// content.
type MemoRequest struct {
	Documents    []UploadedFile
	OCRDocuments []UploadedFile
	ProfileURLs  []string
	SourceURL    string
	Terms        DealTerms
}

// OrNotProvided substitutes the placeholder used in prompts for empty
// deal-term fields.
func OrNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}
