package sc2ranks

import "github.com/pkg/errors"

var (
	ErrMarkersRequired    = errors.New("Markers are required to identify a character")
	ErrUnparsableMarkers  = errors.New("Could not succesfully parse markers")
	ErrInvalidStatus      = errors.New("Attempted to set an invalid status")
	ErrUnwrappable        = errors.New("The response passed could not be wrapped")
	ErrAppKeyRequired     = errors.New("An application key is required to make API requests")
	ErrInvalidTeam        = errors.New("bracketType must be an integer value from 1 to 4 & isRandom must be an integer value from 0 to 1")
	ErrCharactersPerQuery = errors.New("charactersPerQuery must be an integer value from 1 to 100.")
)
