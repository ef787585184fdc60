package cache

import "errors"

var (
	// ErrCacheMiss возвращается, когда ключ отсутствует в кеше
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrUnavailable возвращается, когда redis недоступен при подключении
	ErrUnavailable = errors.New("cache: redis unavailable")
)
