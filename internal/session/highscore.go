package session

import "sync"

// HighScores persists one best score per key.
// A missing key reads as zero with a nil error.
type HighScores interface {
	HighScore(key string) (int, error)
	SetHighScore(key string, score int) error
}

// HighScoreKey returns the storage key of a mode's best score.
func HighScoreKey(m Mode) string {
	return "highScore_" + string(m)
}

// MemoryHighScores is an in-process HighScores.
type MemoryHighScores struct {
	mu     sync.Mutex
	scores map[string]int
}

// NewMemoryHighScores returns an empty store.
func NewMemoryHighScores() *MemoryHighScores {
	return &MemoryHighScores{scores: make(map[string]int)}
}

// HighScore returns the stored score for key.
func (m *MemoryHighScores) HighScore(key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores[key], nil
}

// SetHighScore stores score under key.
func (m *MemoryHighScores) SetHighScore(key string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[key] = score
	return nil
}
