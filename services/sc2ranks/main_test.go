package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ben-agnew/sc2-twitch-rank/libs/sc2ranks"
)

func TestLoadConfig(t *testing.T) {
	c, err := loadConfig("testdata/config.json")
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, "example.org", c.SC2Ranks.AppKey)
	assert.Equal(t, 2, c.SC2Ranks.CharactersPerQuery)
	assert.Equal(t, []sc2ranks.Markers{
		{URI: "http://us.battle.net/sc2/en/profile/902213/1/VPSuppy/"},
		{Name: "xSixShadow", Code: "635", Region: "us"},
	}, c.Characters)

	c, err = loadConfig("")
	if !assert.Nil(t, err) {
		return
	}
	assert.Empty(t, c.Characters)
}

func TestRun(t *testing.T) {
	body, err := os.ReadFile("testdata/mass_base_teams.json")
	if !assert.Nil(t, err) {
		return
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, string(body))
	}))
	defer ts.Close()

	c, err := loadConfig("testdata/config.json")
	if !assert.Nil(t, err) {
		return
	}
	c.SC2Ranks.BaseURL = ts.URL
	c.Characters = append(c.Characters, sc2ranks.ParseMarkers("krr/PuMa"))

	out := &bytes.Buffer{}
	if !assert.Nil(t, run(context.Background(), out, c, sc2ranks.America, sc2ranks.Bracket1v1, false)) {
		return
	}

	assert.Equal(t, "VPSuppy\n"+
		" => Grandmaster (#12) Grandmaster 612 pts (75-31)\n"+
		"\n"+
		"xSixShadow\n"+
		" => SC2Ranks.com did not find a profile for this player\n"+
		"\n", out.String())
}

func TestRunWithoutCharacters(t *testing.T) {
	err := run(context.Background(), &bytes.Buffer{}, config{}, sc2ranks.America, sc2ranks.Bracket1v1, false)
	assert.NotNil(t, err)
}

func TestRunWithoutAppKey(t *testing.T) {
	c := config{Characters: []sc2ranks.Markers{sc2ranks.ParseMarkers("vtgiX#862")}}
	err := run(context.Background(), &bytes.Buffer{}, c, sc2ranks.America, sc2ranks.Bracket1v1, false)
	assert.Equal(t, sc2ranks.ErrAppKeyRequired, err)
}
