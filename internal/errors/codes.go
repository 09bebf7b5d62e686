package errors

// Kind groups error codes into the inventory error taxonomy.
type Kind string

const (
	KindInit     Kind = "init"
	KindQuery    Kind = "query"
	KindProbe    Kind = "probe"
	KindSnapshot Kind = "snapshot"
	KindOther    Kind = "other"
)

const (
	// Source adapter construction
	ErrConnectionUnavailable ErrorCode = "connection_unavailable"

	// Source adapter queries
	ErrClassNotFound ErrorCode = "class_not_found"
	ErrFieldMissing  ErrorCode = "field_missing"
	ErrQueryFailed   ErrorCode = "query_failed"

	// Domain probes
	ErrNoSourceAvailable ErrorCode = "no_source_available"
	ErrTimeout           ErrorCode = "probe_timeout"
	ErrResolutionFailed  ErrorCode = "resolution_failed"

	// Snapshot assembly
	ErrSnapshotFailed ErrorCode = "snapshot_failed"
	ErrUnitFailed     ErrorCode = "unit_failed"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Storage and lookup
	ErrStorage  ErrorCode = "storage_failed"
	ErrNotFound ErrorCode = "not_found"

	// Service hosting and remote daemons
	ErrService ErrorCode = "service_control_failed"
	ErrRemote  ErrorCode = "remote_call_failed"
)

var errorMessages = map[ErrorCode]string{
	ErrConnectionUnavailable: "Instrumentation service unavailable",
	ErrClassNotFound:         "Class not found",
	ErrFieldMissing:          "Field missing",
	ErrQueryFailed:           "Query failed",
	ErrNoSourceAvailable:     "No data source available",
	ErrTimeout:               "Probe timed out",
	ErrResolutionFailed:      "Resolution failed",
	ErrSnapshotFailed:        "Hardware snapshot failed",
	ErrUnitFailed:            "Worker unit failed",
	ErrInvalidConfig:         "Invalid configuration",
	ErrReadConfig:            "Failed to read configuration",
	ErrInvalidLogLevel:       "Invalid log level",
	ErrStorage:               "Storage operation failed",
	ErrNotFound:              "Not found",
	ErrService:               "Service control failed",
	ErrRemote:                "Remote call failed",
}

var errorKinds = map[ErrorCode]Kind{
	ErrConnectionUnavailable: KindInit,
	ErrClassNotFound:         KindQuery,
	ErrFieldMissing:          KindQuery,
	ErrQueryFailed:           KindQuery,
	ErrNoSourceAvailable:     KindProbe,
	ErrTimeout:               KindProbe,
	ErrResolutionFailed:      KindProbe,
	ErrSnapshotFailed:        KindSnapshot,
	ErrUnitFailed:            KindSnapshot,
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}

// KindOf returns the taxonomy group of a code.
func KindOf(code ErrorCode) Kind {
	if k, ok := errorKinds[code]; ok {
		return k
	}

	return KindOther
}
