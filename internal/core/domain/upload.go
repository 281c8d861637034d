package domain

// UploadProgress reports the state of a resumable upload at a chunk
// boundary. Total is -1 when the stream size is unknown.
type UploadProgress struct {
	// Name is the logical name of the object being uploaded.
	Name string `json:"name"`
	// Uploaded is the number of bytes acknowledged so far.
	Uploaded int64 `json:"uploaded"`
	// Total is the total number of bytes, or -1 if unknown.
	Total int64 `json:"total"`
}

// Percent returns the completed fraction as a percentage, or 0 when the
// total is unknown.
func (p UploadProgress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Uploaded) / float64(p.Total) * 100
}

// ProgressFunc receives progress updates at each chunk boundary.
// Implementations must not block; the upload stalls while they run.
type ProgressFunc func(p UploadProgress)
