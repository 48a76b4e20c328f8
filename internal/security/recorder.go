package security

// Outcome labels reported to a Recorder.
const (
	LoginSucceeded = "success"
	LoginRejected  = "rejected"
	LoginMalformed = "malformed"
	LoginFailed    = "error"

	TokenAbsent   = "absent"
	TokenVerified = "verified"
	TokenInvalid  = "invalid"
)

// Recorder receives filter outcomes, typically for metrics.
type Recorder interface {
	LoginAttempt(outcome string)
	TokenVerification(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) LoginAttempt(string)      {}
func (nopRecorder) TokenVerification(string) {}
