package dto

// RowFailure records why a single spreadsheet row was not imported
type RowFailure struct {
	Row    int    `json:"row" example:"7"` // 1-based spreadsheet row number
	Email  string `json:"email,omitempty" example:"dup@school.edu"`
	Reason string `json:"reason" example:"user already exists"`
}

// BulkResult summarizes a bulk import: the batch never aborts on row errors,
// each failed row is reported individually.
type BulkResult struct {
	UploadedCount int          `json:"uploadedCount" example:"18"`
	FailedCount   int          `json:"failedCount" example:"2"`
	FailedDetails []RowFailure `json:"failedDetails"`
}

// AddFailure records a failed row
func (r *BulkResult) AddFailure(row int, email, reason string) {
	r.FailedCount++
	r.FailedDetails = append(r.FailedDetails, RowFailure{Row: row, Email: email, Reason: reason})
}
