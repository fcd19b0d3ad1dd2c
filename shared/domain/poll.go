package domain

// PollExpiryChoices are the durations a poll may run for, in seconds.
// The instance further constrains these to [MinPollExpiration, MaxPollExpiration].
var PollExpiryChoices = []int64{
	5 * 60,
	30 * 60,
	60 * 60,
	6 * 60 * 60,
	24 * 60 * 60,
	3 * 24 * 60 * 60,
	7 * 24 * 60 * 60,
}

// DefaultPollExpiry is one day, the fallback when a restored absolute expiry
// fits no enumerated duration.
const DefaultPollExpiry int64 = 24 * 60 * 60

// Poll on a session being composed. Options must all be non-empty at
// submission time; duplicates are the server's concern.
type Poll struct {
	Options          []string `json:"options"`
	ExpiresInSeconds int64    `json:"expires_in_seconds"`
	AllowMultiple    bool     `json:"allow_multiple"`
}
