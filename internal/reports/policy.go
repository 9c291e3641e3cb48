package reports

// ValidationThreshold is the number of upvotes at which a report becomes
// validated. Downvotes do not offset it.
const ValidationThreshold = 10

// Vote is a single credibility vote on a report.
type Vote int

const (
	Upvote Vote = iota + 1
	Downvote
)

func (v Vote) String() string {
	switch v {
	case Upvote:
		return "up"
	case Downvote:
		return "down"
	}
	return "unknown"
}

// ApplyVote returns r with the vote counted. promoted is true only when this
// vote moved the report from unvalidated to validated; once validated a report
// stays validated.
func ApplyVote(r Report, v Vote) (updated Report, promoted bool) {
	switch v {
	case Upvote:
		r.Upvotes++
		if r.Upvotes >= ValidationThreshold && !r.Validated {
			r.Validated = true
			promoted = true
		}
	case Downvote:
		r.Downvotes++
	}
	return r, promoted
}
