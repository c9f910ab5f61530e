package sc2ranks

import (
	"encoding/json"
	"strings"
)

// Markers is the raw identifying information a caller has about a character.
// Any combination may be set; NewCharacter decides whether it is enough.
type Markers struct {
	URI    string `json:"uri"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Region string `json:"region"`
}

// UnmarshalJSON accepts the character code as either a JSON number or string.
func (m *Markers) UnmarshalJSON(b []byte) error {
	var raw struct {
		URI    string      `json:"uri"`
		Name   string      `json:"name"`
		Code   json.Number `json:"code"`
		Region string      `json:"region"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*m = Markers{
		URI:    raw.URI,
		Name:   raw.Name,
		Code:   raw.Code.String(),
		Region: raw.Region,
	}
	return nil
}

// String renders the markers that were set as key:value pairs.
func (m Markers) String() string {
	var pairs []string
	for _, kv := range [][2]string{
		{"uri", m.URI},
		{"name", m.Name},
		{"code", m.Code},
		{"region", m.Region},
	} {
		if kv[1] != "" {
			pairs = append(pairs, kv[0]+":"+kv[1])
		}
	}
	return strings.Join(pairs, ",")
}

// ParseMarkers reads markers from a single token such as a profile url,
// "name#code", "name.code" or "eu/name#code".
func ParseMarkers(token string) Markers {
	token = strings.TrimSpace(token)
	if strings.Contains(token, "://") {
		return Markers{URI: token}
	}

	var m Markers
	if i := strings.Index(token, "/"); i > 0 {
		m.Region = strings.ToLower(token[:i])
		token = token[i+1:]
	}

	if i := strings.LastIndexAny(token, "#."); i > 0 {
		m.Name = token[:i]
		m.Code = token[i+1:]
	} else {
		m.Name = token
	}
	return m
}
