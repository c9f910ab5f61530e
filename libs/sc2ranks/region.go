package sc2ranks

// Region is a battle.net ladder region code.
type Region string

const (
	Korea     Region = "kr"
	America   Region = "us"
	China     Region = "cn"
	SouthEast Region = "sea"
	Europe    Region = "eu"
)

// DefaultRegion is used whenever a character carries no valid region.
const DefaultRegion = America

// Regions lists every region the API accepts.
var Regions = []Region{Korea, America, China, SouthEast, Europe}

func (r Region) Valid() bool {
	for _, region := range Regions {
		if r == region {
			return true
		}
	}
	return false
}

func (r Region) String() string {
	return string(r)
}
