package sc2ranks

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// Response wraps a reply from the API, classifying it as valid or not and
// indexing the returned characters by lowercased name.
type Response struct {
	valid        bool
	errorMessage string
	characters   map[string]*CharacterPayload
}

// NewErrorResponse wraps a request that never produced an HTTP response.
func NewErrorResponse(message string) *Response {
	return &Response{
		errorMessage: message,
		characters:   map[string]*CharacterPayload{},
	}
}

// NewResponse reads and closes the body of res.
func NewResponse(res *http.Response) (*Response, error) {
	if res == nil {
		return nil, ErrUnwrappable
	}
	if res.Body != nil {
		defer res.Body.Close()
	}

	if res.StatusCode != http.StatusOK {
		return NewErrorResponse("Query returned status " + strconv.Itoa(res.StatusCode)), nil
	}

	if res.Body == nil {
		return NewErrorResponse("Unable to read response, or response is empty"), nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return NewErrorResponse(err.Error()), nil
	}

	return parseBody(body), nil
}

func parseBody(body []byte) *Response {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return NewErrorResponse("Unable to read response, or response is empty")
	}

	// the body is either a list of characters or an object keyed by position,
	// which is also where the api puts its "error" field
	var entries []json.RawMessage
	if body[0] == '[' {
		if err := json.Unmarshal(body, &entries); err != nil {
			return NewErrorResponse(err.Error())
		}
	} else {
		var object map[string]json.RawMessage
		if err := json.Unmarshal(body, &object); err != nil {
			return NewErrorResponse(err.Error())
		}

		if raw, ok := object["error"]; ok && string(bytes.TrimSpace(raw)) != "null" {
			var message string
			if err := json.Unmarshal(raw, &message); err != nil {
				message = string(raw)
			}
			return NewErrorResponse(message)
		}

		for _, raw := range object {
			entries = append(entries, raw)
		}
	}

	r := &Response{valid: true, characters: map[string]*CharacterPayload{}}
	for _, raw := range entries {
		payload := &CharacterPayload{}
		// entries that are not character objects carry nothing we can index
		if err := json.Unmarshal(raw, payload); err != nil || payload.Name == "" {
			continue
		}
		r.characters[strings.ToLower(payload.Name)] = payload
	}

	return r
}

func (r *Response) IsValid() bool {
	return r.valid
}

func (r *Response) ErrorMessage() string {
	return r.errorMessage
}

func (r *Response) HasCharacter(name string) bool {
	_, ok := r.characters[strings.ToLower(name)]
	return ok
}

// Character looks up a returned character by name, ignoring case.
func (r *Response) Character(name string) (*CharacterPayload, bool) {
	payload, ok := r.characters[strings.ToLower(name)]
	return payload, ok
}

// Len returns the number of characters indexed.
func (r *Response) Len() int {
	return len(r.characters)
}
