package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tkanos/gonfig"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/ben-agnew/sc2-twitch-rank/libs/sc2ranks"
)

type config struct {
	SC2Ranks   sc2ranks.Options   `json:"sc2ranks"`
	Characters []sc2ranks.Markers `json:"characters"`
}

func loadConfig(path string) (config, error) {
	var c config
	if path == "" {
		return c, nil
	}

	log.WithField("path", path).Info("Reading config")
	if err := gonfig.GetConf(path, &c); err != nil {
		return config{}, errors.Wrapf(err, "read %s", path)
	}
	return c, nil
}

func main() {
	var (
		app        = kingpin.New("sc2ranks", "Looks up StarCraft II ladder standings on SC2Ranks.com.")
		configPath = app.Flag("config", "Relative path to config json").Short('c').String()
		appKey     = app.Flag("app-key", "SC2Ranks.com application key").OverrideDefaultFromEnvar("SC2RANKS_APP_KEY").String()
		region     = app.Flag("region", "Default region for characters without one").Default("us").Enum("kr", "us", "cn", "sea", "eu")
		bracket    = app.Flag("bracket", "Team bracket, 1 for 1v1 up to 4 for 4v4").Default("1").Short('b').Int()
		random     = app.Flag("random", "Look up random teams").Bool()
		perQuery   = app.Flag("per-query", "Characters per API query").Int()
		verbose    = app.Flag("verbose", "Log debug output").Short('v').Bool()
		markers    = app.Arg("markers", "Profile urls or name#code, optionally prefixed with region/").Strings()
	)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	c, err := loadConfig(*configPath)
	if err != nil {
		log.WithField("event", "load_config").Fatal(err)
		return
	}

	// optionally overriding config with flags
	if len(*appKey) > 0 {
		c.SC2Ranks.AppKey = *appKey
	}
	if *perQuery > 0 {
		c.SC2Ranks.CharactersPerQuery = *perQuery
	}
	for _, token := range *markers {
		c.Characters = append(c.Characters, sc2ranks.ParseMarkers(token))
	}

	if err := run(context.Background(), os.Stdout, c, sc2ranks.Region(*region), sc2ranks.Bracket(*bracket), *random); err != nil {
		fmt.Printf("Could not look up characters: %s\n", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, c config, region sc2ranks.Region, bracket sc2ranks.Bracket, random bool) error {
	if len(c.Characters) == 0 {
		return errors.New("no characters given")
	}

	service, err := sc2ranks.NewService(c.SC2Ranks, nil)
	if err != nil {
		return err
	}

	characters, err := service.MassBaseTeams(ctx, c.Characters, region, bracket, random)
	if err != nil {
		return err
	}

	printCharacters(w, characters)
	return nil
}

func printCharacters(w io.Writer, characters []*sc2ranks.Character) {
	for _, character := range characters {
		fmt.Fprintln(w, character.Name())

		if character.IsValid() {
			fmt.Fprintf(w, " => %s (#%d) %s %d pts (%d-%d)\n",
				character.Division(),
				character.DivisionRank(),
				sc2ranks.Capitalize(character.League()),
				character.Points(),
				character.Wins(),
				character.Losses(),
			)
		} else {
			for _, message := range character.Messages() {
				fmt.Fprintf(w, " => %s\n", message)
			}
		}

		fmt.Fprintln(w)
	}
}

