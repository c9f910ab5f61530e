package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tkanos/gonfig"

	"github.com/ben-agnew/sc2-twitch-rank/libs/sc2ranks"
)

type Account struct {
	Name    string   `json:"name"`
	Code    string   `json:"code"`
	URI     string   `json:"uri"`
	Region  string   `json:"region"`
	Stats   []string `json:"stats"`
	Id      string   `json:"id"`
	Command string   `json:"command"`
}

func (a Account) Markers() sc2ranks.Markers {
	return sc2ranks.Markers{URI: a.URI, Name: a.Name, Code: a.Code, Region: a.Region}
}

// Label is how the account is shown in chat.
func (a Account) Label() string {
	if a.Name == "" {
		return a.Id
	}
	return a.Name + " (" + a.Id + ")"
}

// Key identifies the account in the cache.
func (a Account) Key() string {
	if a.URI != "" {
		return a.URI
	}
	return strings.ToLower(a.Region + "/" + a.Name + "/" + a.Code)
}

type Configuration struct {
	TwitchUsername string           `env:"TWITCH_USER"`
	TwitchToken    string           `env:"TWITCH_TOKEN"`
	TwitchChannel  string           `env:"TWITCH_CHANNEL"`
	AppKey         string           `env:"SC2RANKS_APP_KEY"`
	CacheUrl       string           `json:"cacheUrl"`
	SC2Ranks       sc2ranks.Options `json:"sc2ranks"`
	Region         string           `json:"region"`
	Bracket        int              `json:"bracket"`
	Random         bool             `json:"random"`
	Accounts       []Account        `json:"accounts"`
}

func loadConfig(path string) (Configuration, error) {
	var configuration Configuration
	if err := gonfig.GetConf(path, &configuration); err != nil {
		return Configuration{}, errors.Wrapf(err, "read %s", path)
	}

	if err := configuration.validate(); err != nil {
		return Configuration{}, err
	}

	return configuration, nil
}

func (c *Configuration) validate() error {
	if c.AppKey != "" {
		c.SC2Ranks.AppKey = c.AppKey
	}

	if c.Region == "" {
		c.Region = sc2ranks.DefaultRegion.String()
	}
	if !sc2ranks.Region(c.Region).Valid() {
		return errors.Errorf("unknown region %q", c.Region)
	}

	if c.Bracket == 0 {
		c.Bracket = int(sc2ranks.Bracket1v1)
	}
	if !sc2ranks.Bracket(c.Bracket).Valid() {
		return errors.Errorf("bracket must be between 1 and 4, got %d", c.Bracket)
	}

	if len(c.Accounts) == 0 {
		return errors.New("at least one account is required")
	}

	// every account has to survive the lookup so replies line up with accounts
	for i, account := range c.Accounts {
		markers := account.Markers()
		if _, err := sc2ranks.NewCharacter(&markers, sc2ranks.Region(c.Region)); err != nil {
			return errors.Wrapf(err, "account %d (%s)", i+1, account.Id)
		}
	}

	return nil
}
