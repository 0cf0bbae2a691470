package storage

import "io"

type StorageService interface {
	Upload(key string, reader io.Reader) error
	Delete(key string) error
}
