package credstore

import "errors"

var (
	errIncomplete    = errors.New("credentials require both token and user")
	errBadPassphrase = errors.New("credential file cannot be decrypted")
	errBadFormat     = errors.New("credential file has an unknown format")
)
