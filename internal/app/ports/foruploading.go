package ports

import "context"

type ForUploadingRequest struct {
	// Bucket or store to upload to.
	Store string
	// Key or name of target. If empty, default to the From field.
	To string
	// From is the path to upload from (local disk or URI depending on
	// adapter implementation).
	From        string
	ContentType string
	// StorageClass only used for AWS. If empty, STANDARD is the
	// default.
	StorageClass string
}

type ForUploading interface {
	Upload(ctx context.Context, request *ForUploadingRequest) error
	// Diff prints a unified diff between keyOrName in bucketOrStore
	// and the local fileToDiff. A missing remote is not an error.
	Diff(ctx context.Context, bucketOrStore, keyOrName, fileToDiff string) error
}
