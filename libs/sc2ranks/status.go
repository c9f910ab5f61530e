package sc2ranks

// Status describes the outcome of looking up a character.
type Status int

const (
	// StatusNone is the zero value, nothing has happened to the character yet.
	StatusNone Status = iota
	InvalidMarkers
	InvalidRegion
	InvalidURI
	APIError
	NoResults
	Inactive
	OK
)

var statusMessages = map[Status]string{
	InvalidMarkers: "Player is missing character information",
	InvalidRegion:  "An invalid region was passed with this character",
	InvalidURI:     "Player entered an invalid bnet url",
	APIError:       "SC2Ranks.com API specific error",
	NoResults:      "SC2Ranks.com did not find a profile for this player",
	Inactive:       "This player has not played any 1vs1s on ladder",
	OK:             "OK",
}

func (s Status) Valid() bool {
	_, ok := statusMessages[s]
	return ok
}

// String returns the human readable message for the status.
func (s Status) String() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return "Unknown"
}
