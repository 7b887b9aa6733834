package querycache

import "time"

const (
	DefaultMaxEntries     = 10000
	DefaultRefetchTimeout = 10 * time.Second

	DefaultRetryMax     = 4
	DefaultRetryWaitMin = 200 * time.Millisecond
	DefaultRetryWaitMax = 5 * time.Second
	DefaultHTTPTimeout  = 15 * time.Second

	queriesPath = "/queries"
)
