package model

// MemoResult is the terminal artifact of a pipeline run.
type MemoResult struct {
	Memorandum        string
	TraceID           string
	MarketOpportunity string
}
