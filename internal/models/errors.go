package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCoordinates  = fmt.Errorf("%w: invalid coordinates", ErrInvalidInput)
	ErrNotFound            = errors.New("not found")
	ErrAlreadyVoted        = errors.New("validator already voted on this incident")
	ErrNotPending          = errors.New("incident is not open for voting")
	ErrSelfVote            = errors.New("reporter cannot validate own incident")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrAggregationFailure  = errors.New("aggregation failure")
	ErrRebuildInProgress   = errors.New("rebuild already in progress")
)
