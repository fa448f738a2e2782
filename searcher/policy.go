package searcher

import "math"

// uct scores children of a parent visited N times:
// UCT = q/n + sqrt(c^2*ln(N)/n), i.e. average + c*sqrt(ln(N)/n).
type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	return q/n + math.Sqrt(u.numerator/n)
}

// score is the selection value of a child; unvisited children come first.
func (u uct) score(child *node) float64 {
	if child.visits == 0 {
		return math.Inf(1)
	}
	return u.evaluate(child.score, float64(child.visits))
}
