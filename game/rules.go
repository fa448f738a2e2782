package game

// Rules holds the tunable parts of the ruleset shared by every state of a match.
type Rules struct {
	HandLimit      int  `yaml:"hand_limit"`
	StartingHand   int  `yaml:"starting_hand"`
	StartingSupply int  `yaml:"starting_supply"`
	SupplyPerTurn  int  `yaml:"supply_per_turn"`
	EnableSpells   bool `yaml:"enable_spells"`
}

func DefaultRules() Rules {
	return Rules{
		HandLimit:      10,
		StartingHand:   5,
		StartingSupply: 10,
		SupplyPerTurn:  0,
		EnableSpells:   false,
	}
}
