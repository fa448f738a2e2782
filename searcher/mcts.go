package searcher

import (
	"battler/experiments/metrics"
	"battler/game"
	"battler/meta"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS chooses moves by Monte Carlo tree search. Each worker goroutine grows
// its own tree from the same root; their root statistics are merged before
// the best move is picked. An MCTS must not run concurrent searches.
type MCTS struct {
	goroutines   int
	iterations   int
	duration     time.Duration
	exploration  float64
	rolloutTurns int
	evaluate     game.EvaluationFn
	rng          *rand.Rand
	metrics      metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

// WithDuration searches for a fixed wall-clock time instead of a fixed
// number of iterations.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
			m.iterations = 0
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithRolloutTurns(turns int) Option {
	return func(m *MCTS) {
		if turns > 0 {
			m.rolloutTurns = turns
		}
	}
}

func WithEvaluationFn(evaluate game.EvaluationFn) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithSeed makes searches reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines:   meta.GO_ROUTINES,
		iterations:   meta.ITERATIONS,
		exploration:  meta.EXPLORATION,
		rolloutTurns: meta.ROLLOUT_TURNS,
		evaluate:     game.Score,
		metrics:      metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if m.iterations <= 0 && m.duration <= 0 {
		panic("Must specify search iterations or duration")
	}
	return m
}

// BestMove runs a single-threaded search with a fixed iteration budget.
func BestMove(state *game.State, iterations int, exploration float64) game.Move {
	m := NewMCTS(WithIterations(iterations), WithExploration(exploration))
	move, _ := m.Search(state)
	return move
}

// Config describes the search settings for experiment records.
func (m *MCTS) Config() metrics.AgentConfig {
	return metrics.AgentConfig{
		Goroutines:   m.goroutines,
		Iterations:   m.iterations,
		Duration:     m.duration,
		Exploration:  m.exploration,
		RolloutTurns: m.rolloutTurns,
	}
}

// edge aggregates the statistics of one root move across workers.
type edge struct {
	move   game.Move
	visits int
	score  float64
}

// Search returns the root move with the highest average rollout score,
// evaluated from the perspective of the player to move. It falls back to
// EndTurn when no root move was visited.
func (m *MCTS) Search(state *game.State) (game.Move, metrics.SearchMetric) {
	m.metrics.Start(m.goroutines, m.rolloutTurns)

	perspective := state.CurrentTurn
	roots := make([]*node, m.goroutines)
	seeds := make([]uint64, m.goroutines)
	for i := range roots {
		roots[i] = newNode(nil, nil, state.Clone())
		seeds[i] = m.rng.Uint64()
	}
	m.metrics.AddNodes(len(roots))

	if m.iterations > 0 {
		m.iterate(roots, seeds, perspective)
	} else {
		m.countdown(roots, seeds, perspective)
	}

	edges := merge(roots)
	move, score := bestEdge(edges)
	m.metrics.SetBestScore(score)
	metric := m.metrics.Complete()

	log.Debug().Msgf("search from %s chose %v (score %.2f, %d root moves)", state.ID, move, score, len(edges))
	return move, metric
}

func (m *MCTS) iterate(roots []*node, seeds []uint64, perspective game.Player) {
	share := m.iterations / len(roots)
	extra := m.iterations % len(roots)

	m.run(roots, seeds, func(i int, w *worker) {
		n := share
		if i < extra {
			n++
		}
		for j := 0; j < n; j++ {
			w.episode()
		}
	}, perspective)
}

func (m *MCTS) countdown(roots []*node, seeds []uint64, perspective game.Player) {
	done := make(chan any)
	timer := time.AfterFunc(m.duration, func() { close(done) })
	defer timer.Stop()

	m.run(roots, seeds, func(i int, w *worker) {
		for {
			w.episode()
			select {
			case <-done:
				return
			default:
			}
		}
	}, perspective)
}

// run starts one worker per root and waits for all of them. A panicking
// worker is re-raised on the calling goroutine.
func (m *MCTS) run(roots []*node, seeds []uint64, work func(int, *worker), perspective game.Player) {
	var wg sync.WaitGroup
	var once sync.Once
	var failure any

	for i, root := range roots {
		w := &worker{
			root:         root,
			perspective:  perspective,
			cSquared:     m.exploration * m.exploration,
			rolloutTurns: m.rolloutTurns,
			evaluate:     m.evaluate,
			rng:          rand.New(rand.NewSource(seeds[i])),
			metrics:      m.metrics,
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					once.Do(func() { failure = r })
				}
			}()
			work(i, w)
		}(i)
	}

	wg.Wait()
	if failure != nil {
		panic(fmt.Sprintf("search worker failed: %v", failure))
	}
}

func merge(roots []*node) []*edge {
	var edges []*edge
	index := make(map[game.Move]int)
	for _, root := range roots {
		for _, child := range root.children {
			i, ok := index[child.move]
			if !ok {
				i = len(edges)
				index[child.move] = i
				edges = append(edges, &edge{move: child.move})
			}
			edges[i].visits += child.visits
			edges[i].score += child.score
		}
	}
	return edges
}

// bestEdge picks the visited edge with the highest average; the first one
// wins ties.
func bestEdge(edges []*edge) (game.Move, float64) {
	var best game.Move = game.EndTurn{}
	bestScore := math.Inf(-1)
	for _, e := range edges {
		if e.visits == 0 {
			continue
		}
		if avg := e.score / float64(e.visits); avg > bestScore {
			best = e.move
			bestScore = avg
		}
	}
	if math.IsInf(bestScore, -1) {
		return best, 0
	}
	return best, bestScore
}

// worker grows a single tree.
type worker struct {
	root         *node
	perspective  game.Player
	cSquared     float64
	rolloutTurns int
	evaluate     game.EvaluationFn
	rng          *rand.Rand
	metrics      metrics.Collector
}

func (w *worker) episode() {
	leaf := w.selectThenExpand()
	score, terminal := rollout(leaf.state, w.perspective, w.rolloutTurns, w.evaluate, w.rng)
	if terminal {
		w.metrics.AddFullPlayout()
	}
	backup(leaf, score)
	w.metrics.AddEpisode()
}

// selectThenExpand descends to a leaf, expands it and returns its first
// unvisited child, or the leaf itself when it cannot be expanded.
func (w *worker) selectThenExpand() *node {
	n := w.root
	for len(n.children) > 0 {
		n = n.selectChild(w.cSquared)
	}
	if added := n.expand(w.rng); added > 0 {
		w.metrics.AddNodes(added)
		return n.selectChild(w.cSquared)
	}
	return n
}

// rollout plays random moves on a copy of state for up to turns turns and
// scores the outcome. It reports whether the game ended.
func rollout(state *game.State, perspective game.Player, turns int, evaluate game.EvaluationFn, rng *rand.Rand) (float64, bool) {
	s := state.Clone()
	for turn := 0; turn < turns && !s.IsTerminal(); turn++ {
		s.StartPhase()
		for plays := 0; plays < meta.PLAYS_PER_TURN; plays++ {
			move := s.RandomAction(rng)
			if _, ok := move.(game.EndTurn); ok {
				break
			}
			if err := s.Perform(move, rng); err != nil {
				panic(fmt.Sprintf("rollout move %v: %v", move, err))
			}
		}
		s.FinishTurn(rng)
	}
	return evaluate(s, perspective), s.IsTerminal()
}

func backup(leaf *node, score float64) {
	n := leaf
	for n != nil {
		n = n.backup(score)
	}
}
