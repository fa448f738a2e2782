// meta/meta.go
package meta

import "math"

// ITERATIONS is the default search budget per decision.
const ITERATIONS = 1000

// EXPLORATION is the default UCB1 exploration constant.
const EXPLORATION = math.Sqrt2

// GO_ROUTINES is the default number of search workers.
const GO_ROUTINES = 1

// ROLLOUT_TURNS caps the number of turns a rollout simulates.
const ROLLOUT_TURNS = 100

// PLAYS_PER_TURN caps the card plays within one simulated turn.
const PLAYS_PER_TURN = 1000

// MAX_TURNS ends a match without a winner.
const MAX_TURNS = 300
