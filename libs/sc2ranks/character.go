package sc2ranks

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const unknown = "Unknown"

var (
	regionPattern = `(kr|us|cn|sea|eu)`

	battleNetURI = regexp.MustCompile(`^https?://` + regionPattern + `\.battle\.net/sc2/[a-z]{2}/profile/([0-9]+)/[0-9]+/(\w+)/?$`)
	sc2RanksURI  = regexp.MustCompile(`^https?://(?:www\.)?sc2ranks\.com/` + regionPattern + `/([0-9]+)/(\w+)/?$`)
)

// Character is a single player character, identified either by name and
// bnet id or by name and character code. Ladder fields are filled in once a
// query has been made for it.
type Character struct {
	markers       Markers
	defaultRegion Region
	region        Region

	bnetID int
	name   string
	code   int

	division     string
	divisionRank int
	league       string
	points       int
	wins         int
	losses       int
	regionRank   int
	worldRank    int
	favRace      string

	status   Status
	messages []string
}

// NewCharacter validates markers and builds a character from them. A broken
// uri or region does not fail the character as long as a name together with a
// bnet id or code is still known; the problem is recorded in its status.
func NewCharacter(markers *Markers, defaultRegion Region) (*Character, error) {
	if markers == nil {
		return nil, ErrMarkersRequired
	}

	c := &Character{
		markers:       *markers,
		defaultRegion: DefaultRegion,
		division:      unknown,
		league:        unknown,
	}
	if defaultRegion.Valid() {
		c.defaultRegion = defaultRegion
	}

	if markers.URI != "" && !c.parseURI(markers.URI) {
		c.mustSetStatus(InvalidURI)
	}

	if markers.Name != "" && c.name == "" {
		c.SetName(markers.Name)
	}

	if markers.Code != "" && c.code == 0 {
		if code, err := strconv.Atoi(strings.TrimSpace(markers.Code)); err == nil {
			c.SetCode(code)
		}
	}

	if markers.Region != "" {
		c.SetRegion(Region(strings.ToLower(markers.Region)))
	}

	if c.name == "" || (c.bnetID == 0 && c.code == 0) {
		return nil, ErrUnparsableMarkers
	}

	return c, nil
}

func (c *Character) parseURI(uri string) bool {
	for _, pattern := range []*regexp.Regexp{battleNetURI, sc2RanksURI} {
		matches := pattern.FindStringSubmatch(uri)
		if matches == nil {
			continue
		}

		bnetID, err := strconv.Atoi(matches[2])
		if err != nil {
			return false
		}

		c.SetRegion(Region(matches[1]))
		c.SetBnetID(bnetID)
		c.SetName(matches[3])
		return true
	}

	return false
}

// Markers returns the markers the character was built from. Use String on
// the result for the key:value rendering.
func (c *Character) Markers() Markers {
	return c.markers
}

// Region returns the region explicitly set on the character, falling back to
// the default region.
func (c *Character) Region() Region {
	if c.region == "" {
		return c.defaultRegion
	}
	return c.region
}

// SetRegion stores a valid region. An invalid one clears any region set so
// far and marks the character with InvalidRegion.
func (c *Character) SetRegion(region Region) {
	if region.Valid() {
		c.region = region
		return
	}

	c.region = ""
	c.mustSetStatus(InvalidRegion)
}

func (c *Character) BnetID() int          { return c.bnetID }
func (c *Character) SetBnetID(bnetID int) { c.bnetID = bnetID }
func (c *Character) Name() string         { return c.name }
func (c *Character) SetName(name string)  { c.name = name }
func (c *Character) Code() int            { return c.code }
func (c *Character) SetCode(code int)     { c.code = code }

func (c *Character) Division() string { return c.division }

// SetDivision stores the division name with anything but letters and
// whitespace stripped.
func (c *Character) SetDivision(division string) { c.division = alpha(division) }

func (c *Character) League() string { return c.league }

// SetLeague stores the league name with anything but letters and whitespace
// stripped.
func (c *Character) SetLeague(league string) { c.league = alpha(league) }

func (c *Character) DivisionRank() int                { return c.divisionRank }
func (c *Character) SetDivisionRank(divisionRank int) { c.divisionRank = divisionRank }
func (c *Character) Points() int                      { return c.points }
func (c *Character) SetPoints(points int)             { c.points = points }
func (c *Character) Wins() int                        { return c.wins }
func (c *Character) SetWins(wins int)                 { c.wins = wins }
func (c *Character) Losses() int                      { return c.losses }
func (c *Character) SetLosses(losses int)             { c.losses = losses }
func (c *Character) RegionRank() int                  { return c.regionRank }
func (c *Character) SetRegionRank(regionRank int)     { c.regionRank = regionRank }
func (c *Character) WorldRank() int                   { return c.worldRank }
func (c *Character) SetWorldRank(worldRank int)       { c.worldRank = worldRank }
func (c *Character) FavRace() string                  { return c.favRace }
func (c *Character) SetFavRace(favRace string)        { c.favRace = favRace }

func (c *Character) Status() Status { return c.status }

// SetStatus records the status and appends its message to the message log.
func (c *Character) SetStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	c.status = status
	c.AddMessage(status.String())
	return nil
}

// mustSetStatus is for the package's own status constants, which are always valid.
func (c *Character) mustSetStatus(status Status) {
	if err := c.SetStatus(status); err != nil {
		panic(err)
	}
}

func (c *Character) AddMessage(message string) {
	c.messages = append(c.messages, message)
}

func (c *Character) Messages() []string {
	return c.messages
}

// IsValid reports whether the character was successfully looked up.
func (c *Character) IsValid() bool {
	return c.status == OK
}

// PostParameters returns the form fields identifying the character at
// position index of a mass query. Region, name and bnet id are preferred over
// region, name and code.
func (c *Character) PostParameters(index int) url.Values {
	params := url.Values{}
	key := func(field string) string {
		return "characters[" + strconv.Itoa(index) + "][" + field + "]"
	}

	switch {
	case c.name != "" && c.bnetID != 0:
		params.Set(key("region"), c.Region().String())
		params.Set(key("name"), c.name)
		params.Set(key("bnet_id"), strconv.Itoa(c.bnetID))
	case c.name != "" && c.code != 0:
		params.Set(key("region"), c.Region().String())
		params.Set(key("name"), c.name)
		params.Set(key("code"), strconv.Itoa(c.code))
	}

	return params
}

// SetTeamInformation copies the ladder fields of the team in the given
// bracket from payload. It reports whether such a team was found.
func (c *Character) SetTeamInformation(payload *CharacterPayload, bracket Bracket) bool {
	if payload == nil {
		return false
	}

	if payload.BnetID != 0 && c.bnetID == 0 {
		c.SetBnetID(payload.BnetID)
	}

	updated := false
	for _, team := range payload.Teams {
		if team.Bracket != bracket {
			continue
		}

		c.SetDivision(team.Division)
		c.SetDivisionRank(team.DivisionRank)
		c.SetLeague(team.League)
		c.SetPoints(team.Points)
		c.SetWins(team.Wins)
		c.SetLosses(team.Losses)
		c.SetRegionRank(team.RegionRank)
		c.SetWorldRank(team.WorldRank)
		c.SetFavRace(team.FavRace)
		updated = true
	}

	return updated
}

// Capitalize upper-cases the first letter of a league or race name.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func alpha(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}
