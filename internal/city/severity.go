package city

// Severity is the traffic-light colour class of a status.
type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
	SeverityUnknown  Severity = "unknown"
)

// Road load thresholds, in percent.
const (
	roadWarningFrom  = 50
	roadCriticalFrom = 80
)

// StatusSeverity classifies camera and traffic-light statuses.
func StatusSeverity(status string) Severity {
	switch status {
	case "online", "operational":
		return SeverityOK
	case "warning", "maintenance":
		return SeverityWarning
	case "offline", "error":
		return SeverityCritical
	default:
		return SeverityUnknown
	}
}

// IncidentSeverity classifies an incident type.
func IncidentSeverity(typ string) Severity {
	switch typ {
	case "critical":
		return SeverityCritical
	case "warning":
		return SeverityWarning
	case "info":
		return SeverityInfo
	default:
		return SeverityUnknown
	}
}

// RoadSeverity classifies a road load percentage.
func RoadSeverity(load int) Severity {
	switch {
	case load >= roadCriticalFrom:
		return SeverityCritical
	case load >= roadWarningFrom:
		return SeverityWarning
	default:
		return SeverityOK
	}
}
