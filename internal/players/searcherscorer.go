package players

import (
	"fmt"
	"github.com/janpfeifer/bkgGo/internal/ai"
	"github.com/janpfeifer/bkgGo/internal/searchers"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"k8s.io/klog/v2"
)

// SearcherScorer is a standard set up for an AI: a searcher and the scorer it uses.
// It implements the Player interface.
type SearcherScorer struct {
	Searcher searchers.Searcher
	Scorer   ai.ValueScorer
}

// Assert that SearcherScorer is a Player.
var _ Player = (*SearcherScorer)(nil)

// NewSearcherScorer creates a player from a searcher and the scorer it uses.
func NewSearcherScorer(searcher searchers.Searcher, scorer ai.ValueScorer) *SearcherScorer {
	return &SearcherScorer{Searcher: searcher, Scorer: scorer}
}

// SelectMove implements the Player interface.
func (s *SearcherScorer) SelectMove(board *Board, moves []Move) (move Move, ok bool) {
	moveIdx, value, _ := s.Searcher.Search(board, moves)
	if moveIdx == searchers.NoMove {
		return nil, false
	}
	if klog.V(2).Enabled() {
		klog.Infof("%s playing %s, value=%.3f", s, moves[moveIdx], value)
	}
	return moves[moveIdx], true
}

// String implements fmt.Stringer.
func (s *SearcherScorer) String() string {
	return fmt.Sprintf("AI(%s)", s.Searcher)
}
