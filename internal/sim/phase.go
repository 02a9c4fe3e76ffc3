package sim

type Phase int

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhaseGameOver
	PhaseGameWon
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameOver"
	case PhaseGameWon:
		return "gameWon"
	}
	return "unknown"
}

// Terminal reports whether the round has ended and waits for a restart.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseGameWon
}
