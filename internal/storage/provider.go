package storage

import "io"

// FileObject is a downloaded blob plus the metadata we care about.
type FileObject struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// StorageProvider abstracts the blob backend (S3/B2 or local disk).
type StorageProvider interface {
	List(bucket, prefix string) ([]string, error)
	Get(bucket, key string) (*FileObject, error)
	Put(bucket, key string, body io.ReadSeeker, contentType, cacheControl string) error
	Delete(bucket, key string) error
}
