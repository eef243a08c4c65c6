package pipeline

// DownloadError wraps a failed media fetch with the video it was for.
// Download failures keep the video out of the ledger, so the same id
// is retried on the next run.
type DownloadError struct {
	VideoID string
	Err     error
}

func (e *DownloadError) Error() string {
	return "download " + e.VideoID + ": " + e.Err.Error()
}

func (e *DownloadError) Unwrap() error { return e.Err }

// UploadError wraps a failed clip publish with the source video id.
// The reserved quota slot is returned when this error surfaces.
type UploadError struct {
	VideoID string
	Err     error
}

func (e *UploadError) Error() string {
	return "upload " + e.VideoID + ": " + e.Err.Error()
}

func (e *UploadError) Unwrap() error { return e.Err }
