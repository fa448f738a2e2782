package game

import "math"

// MaxScore is the value of a decided game. It stays finite so that summed
// rollout scores never overflow into Inf or NaN.
const MaxScore = math.MaxFloat32

// ScaleWeight converts one step of the scale into score.
const ScaleWeight = 10

// Weights tunes the heuristic evaluation of non-terminal states.
type Weights struct {
	BoardControl float64 `yaml:"board_control"`
	Hand         float64 `yaml:"hand"`
	Supply       float64 `yaml:"supply"`
	Ranged       float64 `yaml:"ranged"`
	Reach        float64 `yaml:"reach"`
	Global       float64 `yaml:"global"`
	Cleave       float64 `yaml:"cleave"`
	Burst        float64 `yaml:"burst"`
	Nova         float64 `yaml:"nova"`
	Drain        float64 `yaml:"drain"`
	DrawCard     float64 `yaml:"draw_card"`
	Provoke      float64 `yaml:"provoke"`
	DeathTouch   float64 `yaml:"death_touch"`
	Overkill     float64 `yaml:"overkill"`
}

func DefaultWeights() Weights {
	return Weights{
		BoardControl: 1,
		Hand:         -1,
		Supply:       0.01,
		Ranged:       1,
		Reach:        0.5,
		Global:       2,
		Cleave:       1,
		Burst:        1,
		Nova:         2,
		Drain:        0.5,
		DrawCard:     0.5,
		Provoke:      1,
		DeathTouch:   4,
		Overkill:     1,
	}
}

// EvaluationFn scores a state from the given player's perspective.
type EvaluationFn func(s *State, perspective Player) float64

// Score evaluates the state from the perspective player's point of view:
// terminal states are worth MaxScore to the winner, others combine the scale
// with weighted board, hand and supply advantages.
func Score(s *State, perspective Player) float64 {
	if s.IsTerminal() {
		if s.Winner() == perspective {
			return MaxScore
		}
		return -MaxScore
	}

	w := s.weights()
	opponent := perspective.Opponent()

	scale := float64(s.Scale * ScaleWeight)
	if perspective == Player2 {
		scale = -scale
	}

	board := make(map[Player]float64)
	for _, u := range s.ActiveUnits {
		board[u.Side] += s.unitValue(u, w)
	}
	hand := float64(len(s.Hand(perspective)) - len(s.Hand(opponent)))
	supply := float64(s.Supply(perspective) - s.Supply(opponent))

	return scale +
		(board[perspective]-board[opponent])*w.BoardControl +
		hand*w.Hand +
		supply*w.Supply
}

// EvaluateScale only counts territory, ignoring units and cards.
func EvaluateScale(s *State, perspective Player) float64 {
	if s.IsTerminal() {
		if s.Winner() == perspective {
			return MaxScore
		}
		return -MaxScore
	}
	if perspective == Player2 {
		return float64(-s.Scale * ScaleWeight)
	}
	return float64(s.Scale * ScaleWeight)
}

func (s *State) weights() *Weights {
	if s.Weights == nil {
		w := DefaultWeights()
		return &w
	}
	return s.Weights
}

func (s *State) unitValue(u *Unit, w *Weights) float64 {
	value := float64(u.Power + u.Health)
	for _, action := range u.Actions() {
		switch {
		case action.Range == Global:
			value += w.Global
		case action.Range == Ranged && !IsFrontline(u.Pos):
			value += w.Ranged
		case action.Range == Ranged || action.Range == Reach:
			value += w.Reach
		}
		for _, k := range action.Keywords {
			value += keywordWeight(k, w)
		}
	}
	return value
}

func keywordWeight(k Keyword, w *Weights) float64 {
	switch k {
	case Cleave:
		return w.Cleave
	case Burst:
		return w.Burst
	case Nova:
		return w.Nova
	case Drain:
		return w.Drain
	case DrawCard:
		return w.DrawCard
	case Provoke:
		return w.Provoke
	case DeathTouch:
		return w.DeathTouch
	case Overkill:
		return w.Overkill
	default:
		return 0
	}
}
