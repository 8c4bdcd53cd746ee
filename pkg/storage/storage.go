package storage

import "context"

type Storage interface {
	Upload(context.Context, *UploadObject) (*UploadResponse, error)
}

type UploadObject struct {
	Bucket string

	// Key is the full object path inside the bucket.
	Key  string
	Mime string
	Data []byte
}

type UploadResponse struct {
	Url string
	Key string
}
