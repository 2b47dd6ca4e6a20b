package translate

import "errors"

var (
	// ErrAuth means the API rejected our credentials. Retrying cannot help.
	ErrAuth = errors.New("translation provider rejected credentials")

	// ErrRateLimit means the provider throttled us.
	ErrRateLimit = errors.New("translation provider rate limited the request")

	// ErrServer covers provider-side 5xx failures.
	ErrServer = errors.New("translation provider internal error")

	// ErrResponseFormat means the provider answered but the completion was
	// empty or malformed.
	ErrResponseFormat = errors.New("translation provider returned an unusable response")
)
