package tui

import "errors"

// ErrMissingGateway is returned when the connector gateway is not provided.
var ErrMissingGateway = errors.New("tui: connector gateway is required")

// ErrInvalidPorts is returned when no ports are given.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
