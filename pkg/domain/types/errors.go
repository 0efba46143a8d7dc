package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagConfig marks errors caused by missing or invalid user input. They are
	// always raised before any request is sent to the hosting service.
	ErrTagConfig = goerr.NewTag("config")

	// ErrTagRemoteAPI marks errors returned by the hosting service.
	ErrTagRemoteAPI = goerr.NewTag("remote_api")
)
