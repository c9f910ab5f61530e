package sc2ranks

import (
	"encoding/json"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func readPayload(t *testing.T, path string) *CharacterPayload {
	body, err := os.ReadFile(path)
	if !assert.Nil(t, err) {
		t.FailNow()
	}

	payload := &CharacterPayload{}
	if !assert.Nil(t, json.Unmarshal(body, payload)) {
		t.FailNow()
	}

	return payload
}

func TestNewCharacterFromBattleNetURI(t *testing.T) {
	c, err := NewCharacter(&Markers{URI: "http://us.battle.net/sc2/en/profile/902213/1/VPSuppy/"}, "")
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, "VPSuppy", c.Name())
	assert.Equal(t, America, c.Region())
	assert.Equal(t, 902213, c.BnetID())
	assert.Equal(t, StatusNone, c.Status())
	assert.Empty(t, c.Messages())
}

func TestNewCharacterFromSC2RanksURI(t *testing.T) {
	for _, uri := range []string{
		"http://sc2ranks.com/us/2290485/heavonearth",
		"http://www.sc2ranks.com/us/2290485/heavonearth/",
		"https://sc2ranks.com/us/2290485/heavonearth",
	} {
		c, err := NewCharacter(&Markers{URI: uri}, "")
		if !assert.Nil(t, err, uri) {
			return
		}

		assert.Equal(t, "heavonearth", c.Name())
		assert.Equal(t, America, c.Region())
		assert.Equal(t, 2290485, c.BnetID())
	}
}

func TestNewCharacterFromNameAndCode(t *testing.T) {
	c, err := NewCharacter(&Markers{Name: "heavonearth", Code: "2290485", Region: "kr"}, "")
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, "heavonearth", c.Name())
	assert.Equal(t, Korea, c.Region())
	assert.Equal(t, 2290485, c.Code())
	assert.Equal(t, 0, c.BnetID())
	assert.Equal(t, "Unknown", c.Division())
	assert.Equal(t, "Unknown", c.League())
}

func TestNewCharacterInvalidURIRegion(t *testing.T) {
	_, err := NewCharacter(&Markers{URI: "http://sc2ranks.com/krr/2016129/PuMa"}, "")
	assert.Equal(t, ErrUnparsableMarkers, err)
}

func TestNewCharacterInvalidURIWithMarkers(t *testing.T) {
	c, err := NewCharacter(&Markers{URI: "http://google.com", Name: "RevDoctor", Code: "178"}, "")
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, "RevDoctor", c.Name())
	assert.Equal(t, 178, c.Code())
	assert.Equal(t, InvalidURI, c.Status())
	assert.False(t, c.IsValid())
}

func TestNewCharacterURIWinsOverName(t *testing.T) {
	c, err := NewCharacter(&Markers{
		URI:  "http://eu.battle.net/sc2/en/profile/884897/1/GLSnute",
		Name: "Somebody",
		Code: "12",
	}, "")
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, "GLSnute", c.Name())
	assert.Equal(t, Europe, c.Region())
	assert.Equal(t, 884897, c.BnetID())
	assert.Equal(t, 12, c.Code())
}

func TestNewCharacterMissingMarkers(t *testing.T) {
	_, err := NewCharacter(nil, "")
	assert.Equal(t, ErrMarkersRequired, err)

	_, err = NewCharacter(&Markers{}, "")
	assert.Equal(t, ErrUnparsableMarkers, err)

	_, err = NewCharacter(&Markers{Name: "heavonearth"}, "")
	assert.Equal(t, ErrUnparsableMarkers, err)

	_, err = NewCharacter(&Markers{Name: "heavonearth", Code: "abc"}, "")
	assert.Equal(t, ErrUnparsableMarkers, err)
}

func TestDefaultRegion(t *testing.T) {
	c, err := NewCharacter(&Markers{Name: "heavonearth", Code: "2290485"}, "")
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, America, c.Region())

	c, err = NewCharacter(&Markers{Name: "heavonearth", Code: "2290485"}, Korea)
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, Korea, c.Region())
}

func TestInvalidRegionAssignment(t *testing.T) {
	c, err := NewCharacter(&Markers{Name: "heavonearth", Code: "2290485"}, "krr")
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, America, c.Region())

	c.SetRegion(Europe)
	assert.Equal(t, Europe, c.Region())

	c.SetRegion("can")
	assert.Equal(t, America, c.Region())
	assert.Equal(t, InvalidRegion, c.Status())
	assert.Equal(t, []string{"An invalid region was passed with this character"}, c.Messages())
}

func TestSettersAndGetters(t *testing.T) {
	c, err := NewCharacter(&Markers{Name: "heavonearth", Code: "2290485"}, "")
	if !assert.Nil(t, err) {
		return
	}

	c.SetBnetID(13)
	assert.Equal(t, 13, c.BnetID())

	c.SetName("TEST")
	assert.Equal(t, "TEST", c.Name())

	c.SetCode(24)
	assert.Equal(t, 24, c.Code())

	c.SetDivision("alpha and omega")
	assert.Equal(t, "alpha and omega", c.Division())

	c.SetDivision("Division #42 Zeratul-Echo")
	assert.Equal(t, "Division  ZeratulEcho", c.Division())

	c.SetDivisionRank(1)
	assert.Equal(t, 1, c.DivisionRank())

	c.SetLeague("masters!")
	assert.Equal(t, "masters", c.League())

	c.SetPoints(1250)
	assert.Equal(t, 1250, c.Points())

	c.SetWins(99)
	assert.Equal(t, 99, c.Wins())

	c.SetLosses(29)
	assert.Equal(t, 29, c.Losses())

	c.SetRegionRank(1300)
	assert.Equal(t, 1300, c.RegionRank())

	assert.Nil(t, c.SetStatus(APIError))
	assert.False(t, c.IsValid())

	assert.Nil(t, c.SetStatus(OK))
	assert.True(t, c.IsValid())

	assert.Equal(t, []string{"SC2Ranks.com API specific error", "OK"}, c.Messages())

	assert.Equal(t, ErrInvalidStatus, c.SetStatus(134))
	assert.Equal(t, ErrInvalidStatus, c.SetStatus(StatusNone))
	assert.Equal(t, OK, c.Status())
}

func TestSetTeamInformation(t *testing.T) {
	payload := readPayload(t, "testdata/character.json")

	c, err := NewCharacter(&Markers{Name: "vtgiX", Code: "862", Region: "us"}, "")
	if !assert.Nil(t, err) {
		return
	}

	if !assert.True(t, c.SetTeamInformation(payload, Bracket1v1)) {
		return
	}
	assert.Equal(t, "Grandmaster", c.Division())
	assert.Equal(t, 115, c.DivisionRank())
	assert.Equal(t, 328, c.Points())
	assert.Equal(t, 26, c.Wins())
	assert.Equal(t, 15, c.Losses())
	assert.Equal(t, "grandmaster", c.League())
	assert.Equal(t, 106, c.RegionRank())
	assert.Equal(t, 416, c.WorldRank())
	assert.Equal(t, "zerg", c.FavRace())
	assert.Equal(t, 295980, c.BnetID())

	if !assert.True(t, c.SetTeamInformation(payload, Bracket2v2)) {
		return
	}
	assert.Equal(t, "Division Nahaan Indigo", c.Division())
	assert.Equal(t, 94, c.DivisionRank())
	assert.Equal(t, 0, c.Points())
	assert.Equal(t, 1, c.Wins())
	assert.Equal(t, 0, c.Losses())
	assert.Equal(t, "master", c.League())
	assert.Equal(t, 1593, c.RegionRank())
	assert.Equal(t, 295980, c.BnetID())

	payload.Teams = nil
	assert.False(t, c.SetTeamInformation(payload, Bracket2v2))
	assert.False(t, c.SetTeamInformation(nil, Bracket2v2))
}

func TestSetTeamInformationKeepsBnetID(t *testing.T) {
	payload := readPayload(t, "testdata/character.json")

	c, err := NewCharacter(&Markers{URI: "http://sc2ranks.com/us/1/VTgiX"}, "")
	if !assert.Nil(t, err) {
		return
	}

	c.SetTeamInformation(payload, Bracket1v1)
	assert.Equal(t, 1, c.BnetID())
}

func TestPostParameters(t *testing.T) {
	c, err := NewCharacter(&Markers{Name: "heavonearth", Code: "2290485"}, "")
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, url.Values{
		"characters[88][code]":   {"2290485"},
		"characters[88][name]":   {"heavonearth"},
		"characters[88][region]": {"us"},
	}, c.PostParameters(88))

	c, err = NewCharacter(&Markers{URI: "http://us.battle.net/sc2/en/profile/902213/1/VPSuppy/"}, "")
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, url.Values{
		"characters[88][bnet_id]": {"902213"},
		"characters[88][name]":    {"VPSuppy"},
		"characters[88][region]":  {"us"},
	}, c.PostParameters(88))

	c.SetName("")
	assert.Empty(t, c.PostParameters(0))
}

func TestMarkersString(t *testing.T) {
	c, err := NewCharacter(&Markers{Name: "RevDoctor", Code: "178", URI: "http://google.com"}, "")
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, "uri:http://google.com,name:RevDoctor,code:178", c.Markers().String())
}

func TestMarkersUnmarshal(t *testing.T) {
	var markers []Markers
	body := `[{"name":"vtgiX","code":862,"region":"us"},{"name":"vileSpanshwa","code":"785"},{"uri":"http://sc2ranks.com/cn/16844/SiXthFinGer"}]`
	if !assert.Nil(t, json.Unmarshal([]byte(body), &markers)) {
		return
	}

	assert.Equal(t, []Markers{
		{Name: "vtgiX", Code: "862", Region: "us"},
		{Name: "vileSpanshwa", Code: "785"},
		{URI: "http://sc2ranks.com/cn/16844/SiXthFinGer"},
	}, markers)
}

func TestParseMarkers(t *testing.T) {
	cases := map[string]Markers{
		"http://sc2ranks.com/eu/884897/GLSnute": {URI: "http://sc2ranks.com/eu/884897/GLSnute"},
		"vtgiX#862":                             {Name: "vtgiX", Code: "862"},
		"vtgiX.862":                             {Name: "vtgiX", Code: "862"},
		"KR/NEXLife#123":                        {Name: "NEXLife", Code: "123", Region: "kr"},
		" JasonX ":                              {Name: "JasonX"},
	}

	for token, expected := range cases {
		assert.Equal(t, expected, ParseMarkers(token), token)
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Grandmaster", Capitalize("grandmaster"))
	assert.Equal(t, "Zerg", Capitalize("Zerg"))
	assert.Equal(t, "", Capitalize(""))
}
