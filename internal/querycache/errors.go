package querycache

import "errors"

var (
	ErrCacheClosed     = errors.New("querycache: closed")
	ErrBaseURLRequired = errors.New("querycache: fetcher base url is required")
	ErrUnexpectedReply = errors.New("querycache: unexpected fetch response")
)
