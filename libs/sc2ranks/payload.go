package sc2ranks

// Bracket is the team size of a ladder, 1 for 1v1 up to 4 for 4v4.
type Bracket int

const (
	Bracket1v1 Bracket = iota + 1
	Bracket2v2
	Bracket3v3
	Bracket4v4
)

func (b Bracket) Valid() bool {
	return b >= Bracket1v1 && b <= Bracket4v4
}

// CharacterPayload is a single character object as returned by mass/base/teams.
type CharacterPayload struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	BnetID            int      `json:"bnet_id"`
	CharacterCode     int      `json:"character_code"`
	Region            string   `json:"region"`
	AchievementPoints int      `json:"achievement_points"`
	UpdatedAt         string   `json:"updated_at"`
	Portrait          Portrait `json:"portrait"`
	Teams             []Team   `json:"teams"`
}

type Portrait struct {
	Column int `json:"column"`
	Row    int `json:"row"`
	IconID int `json:"icon_id"`
}

type Team struct {
	Bracket      Bracket `json:"bracket"`
	IsRandom     bool    `json:"is_random"`
	Division     string  `json:"division"`
	DivisionRank int     `json:"division_rank"`
	League       string  `json:"league"`
	Points       int     `json:"points"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Ratio        string  `json:"ratio"`
	RegionRank   int     `json:"region_rank"`
	WorldRank    int     `json:"world_rank"`
	FavRace      string  `json:"fav_race"`
	UpdatedAt    string  `json:"updated_at"`
}
