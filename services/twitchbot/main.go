package main

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gempir/go-twitch-irc/v3"
	log "github.com/sirupsen/logrus"

	"github.com/ben-agnew/sc2-twitch-rank/libs/cache"
	"github.com/ben-agnew/sc2-twitch-rank/libs/sc2ranks"
)

const (
	currentKey = "sc2rank:current"
	rankPrefix = "sc2rank:"
)

type sayer interface {
	Say(channel, text string)
}

type bot struct {
	config Configuration
	cache  cache.Cache
	ranks  ranker
	chat   sayer
}

func main() {

	log.Info("Starting twitchbot...")
	configuration, err := loadConfig("config.json")
	if err != nil {
		log.WithField("event", "load_config").Fatal(err)
		return
	}

	service, err := sc2ranks.NewService(configuration.SC2Ranks, nil)
	if err != nil {
		log.WithField("event", "new_service").Fatal(err)
		return
	}

	var rankCache cache.Cache = cache.NewMemory()
	if configuration.CacheUrl != "" {
		rankCache, err = cache.NewCache(configuration.CacheUrl)
		if err != nil {
			log.WithField("event", "new_cache").Fatal(err)
			return
		}
	}

	client := twitch.NewClient(configuration.TwitchUsername, configuration.TwitchToken)
	client.SetJoinRateLimiter(twitch.CreateVerifiedRateLimiter())

	b := &bot{config: configuration, cache: rankCache, ranks: service, chat: client}

	err = b.cache.SetKeepTtl(currentKey, configuration.Accounts[0].Key())
	if err != nil {
		log.WithField("event", "user_command_cache_set").Error(err)
	}

	client.OnPrivateMessage(func(message twitch.PrivateMessage) {
		go b.handleMessage(message)
	})
	client.Join(configuration.TwitchChannel)

	client.OnConnect(func() {
		log.WithField("event", "irc_connected").Info("IRC connected")
	})

	err = client.Connect()
	if err != nil {
		log.WithField("event", "irc_connect").Fatal(err)
		return
	}
}

func (b *bot) handleMessage(message twitch.PrivateMessage) {
	if message.Channel != strings.ToLower(b.config.TwitchChannel) {
		return
	}

	switch strings.Split(strings.ToLower(message.Message), " ")[0] {
	case "!rank":
		b.rankCommand(&message)
	case "!ranks":
		b.ranksCommand(&message)
	case "!accounts":
		b.accountsCommand(&message)
	case "!setcurrent":
		b.setCurrentCommand(&message)
	case "!current":
		b.currentCommand(&message)
	case "!bot":
		b.botCommand(&message)
	default:
		b.checkCommands(&message)
	}
}

func (b *bot) reply(message *twitch.PrivateMessage, text string) {
	b.chat.Say(message.Channel, "@"+message.User.DisplayName+": "+text)
}

func (b *bot) currentIndex() int {
	current, err := b.cache.Get(currentKey)
	if err != nil {
		current = b.config.Accounts[0].Key()
		if err := b.cache.SetKeepTtl(currentKey, current); err != nil {
			log.WithField("event", "user_command_cache_set").Error(err)
		}
	}
	return b.indexByKey(current)
}

func (b *bot) accountIndex(account Account) int {
	return b.indexByKey(account.Key())
}

// indexByKey finds an account by its cache key, defaulting to the first.
func (b *bot) indexByKey(key string) int {
	for i, candidate := range b.config.Accounts {
		if candidate.Key() == key {
			return i
		}
	}
	return 0
}

// cachedRank serves the account's rank from cache, querying SC2Ranks on a miss.
func (b *bot) cachedRank(account Account) (*RankData, error) {
	cacheKey := rankPrefix + account.Key()

	cachedStr, err := b.cache.Get(cacheKey)
	if err == nil {
		cachedObj := RankData{}
		if err := json.Unmarshal([]byte(cachedStr), &cachedObj); err == nil {
			return &cachedObj, nil
		}
		log.WithField("event", "user_command_cache_get").Error(err)
	}

	data, err := b.requestRank(account)
	if err != nil {
		return nil, err
	}

	// cache for 1 minute
	b.storeRank(account, *data)
	return data, nil
}

func (b *bot) storeRank(account Account, data RankData) {
	encoded, err := json.Marshal(data)
	if err != nil {
		log.WithField("event", "user_command_cache_set").Error(err)
		return
	}
	err = b.cache.SetWithTtl(rankPrefix+account.Key(), string(encoded), time.Minute)
	if err != nil {
		log.WithField("event", "user_command_cache_set").Error(err)
	}
}

func (b *bot) sayRank(message *twitch.PrivateMessage, account Account) {
	data, err := b.cachedRank(account)
	if err != nil {
		if notFound, ok := err.(*PlayerNotFoundError); ok {
			b.chat.Say(message.Channel, notFound.Error())
			return
		}
		b.chat.Say(message.Channel, "Error getting rank")
		return
	}

	b.chat.Say(message.Channel, GetRankString(*data, account))
}

func (b *bot) rankCommand(message *twitch.PrivateMessage) {
	b.sayRank(message, b.config.Accounts[b.currentIndex()])
}

func (b *bot) ranksCommand(message *twitch.PrivateMessage) {
	results, err := b.requestRanks(b.config.Accounts)
	if err != nil {
		b.chat.Say(message.Channel, "Error getting rank")
		return
	}

	var replies []string
	for i, result := range results {
		account := b.config.Accounts[i]
		if result.Err != nil {
			replies = append(replies, result.Err.Error())
			continue
		}
		b.storeRank(account, result.Data)
		replies = append(replies, GetRankString(result.Data, account))
	}

	b.chat.Say(message.Channel, strings.Join(replies, " // "))
}

func (b *bot) accountsCommand(message *twitch.PrivateMessage) {
	if !modCaster(message) {
		return
	}

	var accountNames []string
	for i, account := range b.config.Accounts {
		accountNames = append(accountNames, strconv.Itoa(i+1)+". "+account.Label())
	}
	log.WithField("event", "accounts_command").Info(message.User.Name + " used accounts command")

	b.chat.Say(message.Channel, "Accounts: "+strings.Join(accountNames, ", "))
}

func (b *bot) setCurrentCommand(message *twitch.PrivateMessage) {
	if !modCaster(message) {
		return
	}

	msg := strings.TrimSpace(strings.TrimPrefix(strings.ToLower(message.Message), "!setcurrent"))

	if msg == "" {
		b.reply(message, "Account not found")
		return
	}

	index := -1
	if n, err := strconv.Atoi(msg); err == nil {
		if n < 1 || n > len(b.config.Accounts) {
			b.reply(message, "Invalid account number")
			return
		}
		index = n - 1
	} else {
		for i, account := range b.config.Accounts {
			if (account.Name != "" && strings.EqualFold(account.Name, msg)) || (account.Id != "" && strings.EqualFold(account.Id, msg)) {
				index = i
				break
			}
		}
	}

	if index < 0 {
		b.reply(message, "Account not found")
		return
	}

	account := b.config.Accounts[index]
	if err := b.cache.SetKeepTtl(currentKey, account.Key()); err != nil {
		log.WithField("event", "user_command_cache_set").Error(err)
		b.reply(message, "Error setting account")
		return
	}

	log.WithField("event", "set_current_command").Info(message.User.Name + " set current account to " + account.Label())
	b.reply(message, "Current account set to "+account.Label())
}

func (b *bot) currentCommand(message *twitch.PrivateMessage) {
	account := b.config.Accounts[b.currentIndex()]
	b.reply(message, "Current account is "+account.Label())
}

func (b *bot) checkCommands(message *twitch.PrivateMessage) {
	if !strings.HasPrefix(message.Message, "!") {
		return
	}

	command := strings.Split(message.Message, " ")[0]
	for _, account := range b.config.Accounts {
		if account.Command != "" && strings.EqualFold(command, account.Command) {
			b.sayRank(message, account)
			return
		}
	}
}

func (b *bot) botCommand(message *twitch.PrivateMessage) {
	b.reply(message, "Hello")
}

// check if user is mod or broadcaster
func modCaster(message *twitch.PrivateMessage) bool {
	if message.Tags["mod"] == "1" {
		return true
	}
	return strings.EqualFold(message.User.Name, message.Channel)
}
