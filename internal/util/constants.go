package util

// TimeFormat renders timestamps in exports and reports.
const TimeFormat = "2006-01-02 15:04:05"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeImage = "image/"

	// Client-side and server-side photo size cap for observation uploads.
	MaxPhotoSize = 10 << 20
)
