package register

import (
	"errors"

	"qregdeck/internal/gates"
)

var (
	ErrUnsupportedGate   = gates.ErrUnsupportedGate
	ErrInvalidQubitCount = errors.New("invalid qubit count")
	ErrInvalidTargets    = errors.New("invalid targets")
	ErrInvalidBasisSpec  = errors.New("invalid basis spec")
	ErrInvalidTrials     = errors.New("invalid trial count")
)
