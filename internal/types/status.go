package types

type Status string

const (
	StatusUnderReview                 Status = "UNDER_REVIEW"
	StatusTechnicalInterviewScheduled Status = "TECHNICAL_INTERVIEW_SCHEDULED"
	StatusTechnicalInterviewed        Status = "TECHNICAL_INTERVIEWED"
	StatusCommonInterviewScheduled    Status = "COMMON_INTERVIEW_SCHEDULED"
	StatusCommonInterviewed           Status = "COMMON_INTERVIEWED"
	StatusAccepted                    Status = "ACCEPTED"
	StatusRejected                    Status = "REJECTED"
	StatusWaitlisted                  Status = "WAITLISTED"
	StatusWithdrawn                   Status = "WITHDRAWN"
	StatusNeedsFollowUp               Status = "NEEDS_FOLLOW_UP"
)

// Statuses lists every review status in the intended order of progression.
var Statuses = []Status{
	StatusUnderReview,
	StatusTechnicalInterviewScheduled,
	StatusTechnicalInterviewed,
	StatusCommonInterviewScheduled,
	StatusCommonInterviewed,
	StatusAccepted,
	StatusRejected,
	StatusWaitlisted,
	StatusWithdrawn,
	StatusNeedsFollowUp,
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// IntendedNext returns the statuses an application normally moves to from s.
// It is advisory: reviewers may set any status from any other status.
func IntendedNext(s Status) []Status {
	switch s {
	case StatusUnderReview:
		return []Status{StatusTechnicalInterviewScheduled}
	case StatusTechnicalInterviewScheduled:
		return []Status{StatusTechnicalInterviewed}
	case StatusTechnicalInterviewed:
		return []Status{StatusCommonInterviewScheduled}
	case StatusCommonInterviewScheduled:
		return []Status{StatusCommonInterviewed}
	case StatusCommonInterviewed:
		return []Status{StatusAccepted, StatusRejected, StatusWaitlisted}
	default:
		return nil
	}
}

// Terminal reports whether s ends the intended progression. WITHDRAWN and
// NEEDS_FOLLOW_UP are side states reachable from anywhere.
func Terminal(s Status) bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusWaitlisted || s == StatusWithdrawn
}
