package domain

// UploadMode selects how the trip-file pipeline reconciles routes that
// already exist in the store.
type UploadMode string

const (
	// ModeCreate only creates missing zones and routes; existing routes
	// are left untouched, which makes repeated uploads idempotent.
	ModeCreate UploadMode = "create"
	// ModeUpdate additionally refreshes existing routes (name, active)
	// and re-activates inactive zones referenced by detected pairs.
	ModeUpdate UploadMode = "update"
)

// Valid reports whether m is one of the defined modes.
func (m UploadMode) Valid() bool {
	return m == ModeCreate || m == ModeUpdate
}

// UploadParams carries the caller-supplied knobs for one ingestion call.
// Bounds are enforced at the HTTP boundary; the pipeline trusts them here.
type UploadParams struct {
	FileName   string
	Mode       UploadMode
	LimitRows  int
	TopNRoutes int
}

// UploadSummary is the ephemeral result of one trip-file ingestion call.
// It is returned to the caller and never stored.
type UploadSummary struct {
	FileName       string   `json:"file_name"`
	RowsRead       int      `json:"rows_read"`
	ZonesCreated   int      `json:"zones_created"`
	ZonesUpdated   int      `json:"zones_updated"`
	RoutesDetected int      `json:"routes_detected"`
	RoutesCreated  int      `json:"routes_created"`
	RoutesUpdated  int      `json:"routes_updated"`
	Errors         []string `json:"errors"`
}
