package dto

// ResetReport counts the rows removed by a full data reset
type ResetReport struct {
	Students     int64 `json:"students"`
	Companies    int64 `json:"companies"`
	Staff        int64 `json:"staff"`
	Rubrics      int64 `json:"rubrics"`
	AuditEntries int64 `json:"auditEntries"`
}

// ResetRequest confirms a full data reset. The confirmation phrase must
// be typed exactly; a bare POST is not enough to wipe the system.
type ResetRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}
