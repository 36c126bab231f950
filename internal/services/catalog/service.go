package catalog

import (
	"github.com/tcullen/arcadehub/internal/games/memorymatch"
	"github.com/tcullen/arcadehub/internal/games/numberguess"
	"github.com/tcullen/arcadehub/internal/games/quiz"
	"github.com/tcullen/arcadehub/internal/games/reaction"
	"github.com/tcullen/arcadehub/internal/games/rps"
	"github.com/tcullen/arcadehub/internal/games/snake"
	"github.com/tcullen/arcadehub/internal/games/tictactoe"
	"github.com/tcullen/arcadehub/internal/games/wordscramble"
	"github.com/tcullen/arcadehub/internal/model"
)

// The arcade catalog. Order here is the order games appear in listings.
var catalog = []model.GameInfo{
	{
		ID:          tictactoe.GameID,
		Title:       tictactoe.GameName,
		Description: "Beat the AI at the classic game of X's and O's",
		Category:    "strategy",
		Difficulty:  "easy",
	},
	{
		ID:          memorymatch.GameID,
		Title:       memorymatch.GameName,
		Description: "Flip cards and find all the matching pairs",
		Category:    "puzzle",
		Difficulty:  "medium",
	},
	{
		ID:          numberguess.GameID,
		Title:       numberguess.GameName,
		Description: "Guess the secret number in as few tries as possible",
		Category:    "puzzle",
		Difficulty:  "easy",
	},
	{
		ID:          snake.GameID,
		Title:       snake.GameName,
		Description: "Eat food and grow without hitting the walls or yourself",
		Category:    "arcade",
		Difficulty:  "hard",
	},
	{
		ID:          wordscramble.GameID,
		Title:       wordscramble.GameName,
		Description: "Unscramble as many words as you can before time runs out",
		Category:    "word",
		Difficulty:  "medium",
	},
	{
		ID:          reaction.GameID,
		Title:       reaction.GameName,
		Description: "Click the instant the screen changes and test your reflexes",
		Category:    "arcade",
		Difficulty:  "easy",
	},
	{
		ID:          quiz.GameID,
		Title:       quiz.GameName,
		Description: "Answer ten trivia questions against the clock",
		Category:    "trivia",
		Difficulty:  "medium",
	},
	{
		ID:          rps.GameID,
		Title:       rps.GameName,
		Description: "Best of five throws against an adaptive AI opponent",
		Category:    "strategy",
		Difficulty:  "easy",
	},
}

// Service serves the fixed game catalog
type Service struct{}

// New creates a new catalog service
func New() *Service {
	return &Service{}
}

// List returns every game in catalog order
func (s *Service) List() []model.GameInfo {
	out := make([]model.GameInfo, len(catalog))
	copy(out, catalog)
	return out
}

// Get looks up a single game by id
func (s *Service) Get(id model.GameID) (model.GameInfo, error) {
	for _, info := range catalog {
		if info.ID == id {
			return info, nil
		}
	}
	return model.GameInfo{}, model.ErrGameNotFound
}

// Interface for dependency injection
type ServiceInterface interface {
	List() []model.GameInfo
	Get(id model.GameID) (model.GameInfo, error)
}

var _ ServiceInterface = (*Service)(nil)
