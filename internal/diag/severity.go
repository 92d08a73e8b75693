package diag

// Severity orders diagnostics. Anything from SevError up fails the stage
// that reported it.
type Severity uint8

const (
	SevInfo Severity = iota
	// SevWarning is shown but never fails a stage: rebinding and shadowing.
	SevWarning
	SevError
	// SevFatal is an internal inconsistency. Bags keep fatal diagnostics
	// past their limit.
	SevFatal
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
	SevFatal:   "FATAL",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Label is the lower-case name printed after a diagnostic tag.
func (s Severity) Label() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	case SevFatal:
		return "fatal"
	}
	return "unknown"
}

// Fails reports whether a diagnostic of this severity fails its stage.
func (s Severity) Fails() bool { return s >= SevError }
