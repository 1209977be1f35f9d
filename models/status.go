package models

type ReportStatus string

const (
	ReportPending    ReportStatus = "pending"
	ReportInProgress ReportStatus = "in_progress"
	ReportResolved   ReportStatus = "resolved"
	ReportRejected   ReportStatus = "rejected"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportInProgress, ReportResolved, ReportRejected:
		return true
	}
	return false
}

// reportTransitions is the authoritative transition table. resolved is
// terminal; rejected reports may be reopened.
var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportPending:    {ReportInProgress, ReportResolved, ReportRejected},
	ReportInProgress: {ReportResolved, ReportRejected},
	ReportResolved:   {},
	ReportRejected:   {ReportPending},
}

// CanTransition reports whether moving from s to next is allowed.
// Writing the current status back is a no-op and always allowed.
func (s ReportStatus) CanTransition(next ReportStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range reportTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type SuggestionStatus string

const (
	SuggestionPending     SuggestionStatus = "pending"
	SuggestionInProgress  SuggestionStatus = "in_progress"
	SuggestionImplemented SuggestionStatus = "implemented"
	SuggestionRejected    SuggestionStatus = "rejected"
)

func (s SuggestionStatus) Valid() bool {
	switch s {
	case SuggestionPending, SuggestionInProgress, SuggestionImplemented, SuggestionRejected:
		return true
	}
	return false
}

var suggestionTransitions = map[SuggestionStatus][]SuggestionStatus{
	SuggestionPending:     {SuggestionInProgress, SuggestionImplemented, SuggestionRejected},
	SuggestionInProgress:  {SuggestionImplemented, SuggestionRejected},
	SuggestionImplemented: {},
	SuggestionRejected:    {SuggestionPending},
}

func (s SuggestionStatus) CanTransition(next SuggestionStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range suggestionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
