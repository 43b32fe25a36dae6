package syncer

import "errors"

// ErrNetwork wraps transport failures, timeouts and non-2xx responses
var ErrNetwork = errors.New("network error")
