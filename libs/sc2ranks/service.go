package sc2ranks

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// APIServer is the base uri of the SC2Ranks.com API.
	APIServer = "http://sc2ranks.com/api"

	DefaultCharactersPerQuery = 50
	MaxCharactersPerQuery     = 100

	acceptCharset = "ISO-8859-1,utf-8"
	userAgent     = "sc2-twitch-rank/libs/sc2ranks"
)

// HTTPClientOptions configures the client NewService builds when none is given.
type HTTPClientOptions struct {
	// Timeout in seconds, 0 means no timeout.
	Timeout int `json:"timeout"`
	// MaxRedirects of 0 returns the first redirect response as is.
	MaxRedirects int  `json:"maxRedirects"`
	KeepAlive    bool `json:"keepAlive"`
}

type Options struct {
	AppKey             string            `json:"appKey"`
	BaseURL            string            `json:"baseUrl"`
	CharactersPerQuery int               `json:"charactersPerQuery"`
	HTTPClient         HTTPClientOptions `json:"httpClient"`

	Logger log.FieldLogger `json:"-"`
}

// Service queries the SC2Ranks.com API.
type Service struct {
	appKey             string
	baseURL            string
	charactersPerQuery int
	httpClient         *http.Client
	log                log.FieldLogger
}

// NewService builds a service from opts. If client is nil one is built from
// opts.HTTPClient.
func NewService(opts Options, client *http.Client) (*Service, error) {
	s := &Service{
		appKey:             opts.AppKey,
		baseURL:            strings.TrimRight(opts.BaseURL, "/"),
		charactersPerQuery: DefaultCharactersPerQuery,
		log:                opts.Logger,
	}
	if s.baseURL == "" {
		s.baseURL = APIServer
	}
	if s.log == nil {
		s.log = log.StandardLogger()
	}

	if client == nil {
		client = NewHTTPClient(opts.HTTPClient)
	}
	s.SetHTTPClient(client)

	if opts.CharactersPerQuery != 0 {
		if err := s.SetCharactersPerQuery(opts.CharactersPerQuery); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// NewHTTPClient builds an http.Client honouring the timeout, redirect and
// keep-alive options.
func NewHTTPClient(opts HTTPClientOptions) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableKeepAlives = !opts.KeepAlive

	maxRedirects := opts.MaxRedirects
	return &http.Client{
		Timeout:   time.Duration(opts.Timeout) * time.Second,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

func (s *Service) AppKey() string {
	return s.appKey
}

func (s *Service) SetAppKey(appKey string) {
	s.appKey = appKey
}

func (s *Service) HTTPClient() *http.Client {
	return s.httpClient
}

func (s *Service) SetHTTPClient(client *http.Client) {
	s.httpClient = client
}

func (s *Service) CharactersPerQuery() int {
	return s.charactersPerQuery
}

// SetCharactersPerQuery sets the batch size, which the API caps at 100.
func (s *Service) SetCharactersPerQuery(n int) error {
	if n < 1 || n > MaxCharactersPerQuery {
		return ErrCharactersPerQuery
	}

	s.charactersPerQuery = n
	return nil
}

// MassBaseTeams looks up the team in the given bracket for every character
// described by markers. Markers that do not identify a character are
// dropped; every other character comes back, in order, with its status set.
func (s *Service) MassBaseTeams(ctx context.Context, markers []Markers, defaultRegion Region, bracket Bracket, random bool) ([]*Character, error) {
	if s.appKey == "" {
		return nil, ErrAppKeyRequired
	}

	if !bracket.Valid() {
		return nil, ErrInvalidTeam
	}

	uri := s.baseURL + "/mass/base/teams/?appKey=" + url.QueryEscape(s.appKey)

	characters := make([]*Character, 0, len(markers))
	for i := range markers {
		character, err := NewCharacter(&markers[i], defaultRegion)
		if err != nil {
			s.log.WithFields(log.Fields{
				"event":   "parse_character",
				"markers": markers[i].String(),
			}).Debug(err)
			continue
		}
		characters = append(characters, character)
	}

	isRandom := 0
	if random {
		isRandom = 1
	}

	for start := 0; start < len(characters); start += s.charactersPerQuery {
		end := start + s.charactersPerQuery
		if end > len(characters) {
			end = len(characters)
		}
		chunk := characters[start:end]

		params := url.Values{}
		params.Set("team[bracket]", strconv.Itoa(int(bracket)))
		params.Set("team[is_random]", strconv.Itoa(isRandom))
		for index, character := range chunk {
			for key, values := range character.PostParameters(index) {
				params[key] = values
			}
		}

		s.log.WithFields(log.Fields{
			"event":      "mass_base_teams",
			"characters": len(chunk),
			"offset":     start,
		}).Debug("Querying SC2Ranks")

		res := s.post(ctx, uri, params)
		for _, character := range chunk {
			s.reconcile(character, res, bracket)
		}
	}

	return characters, nil
}

func (s *Service) reconcile(character *Character, res *Response, bracket Bracket) {
	if !res.IsValid() {
		character.mustSetStatus(APIError)
		character.AddMessage(res.ErrorMessage())
		return
	}

	payload, ok := res.Character(character.Name())
	if !ok {
		character.mustSetStatus(NoResults)
		return
	}

	if character.SetTeamInformation(payload, bracket) {
		character.mustSetStatus(OK)
	} else {
		character.mustSetStatus(Inactive)
	}
}

func (s *Service) post(ctx context.Context, uri string, params url.Values) *Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, strings.NewReader(params.Encode()))
	if err != nil {
		s.log.WithField("event", "new_request_sc2ranks").Error(err)
		return NewErrorResponse(err.Error())
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept-Charset", acceptCharset)
	req.Header.Set("User-Agent", userAgent)

	res, err := s.httpClient.Do(req)
	if err != nil {
		s.log.WithField("event", "do_request_sc2ranks").Error(err)
		return NewErrorResponse(err.Error())
	}

	response, err := NewResponse(res)
	if err != nil {
		s.log.WithField("event", "read_body_sc2ranks").Error(err)
		return NewErrorResponse(err.Error())
	}

	return response
}
