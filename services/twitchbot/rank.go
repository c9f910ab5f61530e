package main

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/ben-agnew/sc2-twitch-rank/libs/sc2ranks"
)

const requestTimeout = 10 * time.Second

type ranker interface {
	MassBaseTeams(ctx context.Context, markers []sc2ranks.Markers, defaultRegion sc2ranks.Region, bracket sc2ranks.Bracket, random bool) ([]*sc2ranks.Character, error)
}

// RankData is what gets cached per account.
type RankData struct {
	Name         string `json:"name"`
	League       string `json:"league"`
	Division     string `json:"division"`
	DivisionRank int    `json:"division_rank"`
	Points       int    `json:"points"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	RegionRank   int    `json:"region_rank"`
	AccountIndex int    `json:"account_index"`
}

func (r RankData) WinRate() string {
	games := r.Wins + r.Losses
	if games == 0 {
		return "0%"
	}
	return strconv.FormatFloat(float64(r.Wins)/float64(games)*100, 'f', 2, 64) + "%"
}

func GetRankString(data RankData, account Account) string {
	stats := account.Stats
	if len(stats) == 0 {
		stats = []string{"league", "points", "record"}
	}

	var parts []string
	for _, stat := range stats {
		switch stat {
		case "league":
			parts = append(parts, "League: "+sc2ranks.Capitalize(data.League))
		case "division":
			parts = append(parts, "Division: "+data.Division+" (#"+strconv.Itoa(data.DivisionRank)+")")
		case "points":
			parts = append(parts, "Points: "+strconv.Itoa(data.Points))
		case "record":
			parts = append(parts, "Record: "+strconv.Itoa(data.Wins)+"-"+strconv.Itoa(data.Losses))
		case "rank":
			parts = append(parts, "Region Rank: "+strconv.Itoa(data.RegionRank))
		case "winrate":
			parts = append(parts, "Winrate: "+data.WinRate())
		}
	}

	return account.Id + ": " + strings.Join(parts, " | ")
}


type PlayerNotFoundError struct {
	Name   string
	Reason string
}

func (p PlayerNotFoundError) Error() string {
	if p.Reason == "" {
		return "Player not found"
	}
	return p.Name + ": " + p.Reason
}

// rankResult carries either the data or the reason an account has none.
type rankResult struct {
	Data RankData
	Err  error
}

// requestRanks looks up every account in a single batched query.
func (b *bot) requestRanks(accounts []Account) ([]rankResult, error) {
	markers := make([]sc2ranks.Markers, len(accounts))
	for i, account := range accounts {
		markers[i] = account.Markers()
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	characters, err := b.ranks.MassBaseTeams(ctx, markers, sc2ranks.Region(b.config.Region), sc2ranks.Bracket(b.config.Bracket), b.config.Random)
	if err != nil {
		log.WithField("event", "request_sc2ranks").Error(err)
		return nil, err
	}
	if len(characters) != len(accounts) {
		return nil, errors.Errorf("expected %d characters, got %d", len(accounts), len(characters))
	}

	results := make([]rankResult, len(characters))
	for i, character := range characters {
		if !character.IsValid() {
			reason := ""
			if messages := character.Messages(); len(messages) > 0 {
				reason = messages[len(messages)-1]
			}
			log.WithFields(log.Fields{
				"event":  "request_sc2ranks",
				"name":   character.Name(),
				"status": character.Status().String(),
			}).Info(reason)
			results[i].Err = &PlayerNotFoundError{Name: character.Name(), Reason: reason}
			continue
		}

		results[i].Data = RankData{
			Name:         character.Name(),
			League:       character.League(),
			Division:     character.Division(),
			DivisionRank: character.DivisionRank(),
			Points:       character.Points(),
			Wins:         character.Wins(),
			Losses:       character.Losses(),
			RegionRank:   character.RegionRank(),
			AccountIndex: b.accountIndex(accounts[i]),
		}
	}

	return results, nil
}

func (b *bot) requestRank(account Account) (*RankData, error) {
	results, err := b.requestRanks([]Account{account})
	if err != nil {
		return nil, err
	}
	if results[0].Err != nil {
		return nil, results[0].Err
	}
	return &results[0].Data, nil
}
