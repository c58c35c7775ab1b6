package turn

import "fmt"

// Phase is the stage the turn loop is in.
type Phase int

const (
	// CivilizationTurn is the player acting.
	CivilizationTurn Phase = iota
	// WaitingForNextTurn is the AI civilizations taking their turns.
	WaitingForNextTurn
	// TurnTransition is the bookkeeping window between one global turn and
	// the next.
	TurnTransition
)

func (p Phase) String() string {
	switch p {
	case CivilizationTurn:
		return "civilization_turn"
	case WaitingForNextTurn:
		return "waiting_for_next_turn"
	case TurnTransition:
		return "turn_transition"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Event drives the phase machine.
type Event int

const (
	// PlayerEndedTurn signals the player finished acting.
	PlayerEndedTurn Event = iota
	// ProcessAITurn signals an AI civilization is starting its turn.
	ProcessAITurn
	// AITurnComplete signals an AI civilization finished its turn.
	AITurnComplete
	// AllAITurnsComplete signals every AI civilization has acted.
	AllAITurnsComplete
	// StartPlayerTurn hands control back to the player on a new global turn.
	StartPlayerTurn
)

func (e Event) String() string {
	switch e {
	case PlayerEndedTurn:
		return "player_ended_turn"
	case ProcessAITurn:
		return "process_ai_turn"
	case AITurnComplete:
		return "ai_turn_complete"
	case AllAITurnsComplete:
		return "all_ai_turns_complete"
	case StartPlayerTurn:
		return "start_player_turn"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Controller is the turn phase state machine. A global turn runs
// CivilizationTurn, then WaitingForNextTurn while the AI civilizations act,
// then TurnTransition, which increments the turn counter on the way back to
// CivilizationTurn.
type Controller struct {
	phase Phase
	turn  int
}

// NewController starts at turn 1 with the player to act.
func NewController() *Controller {
	return &Controller{phase: CivilizationTurn, turn: 1}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Turn returns the current global turn number.
func (c *Controller) Turn() int { return c.turn }

// Handle applies an event to the machine. Events arriving in the wrong phase
// are rejected and leave the state unchanged.
func (c *Controller) Handle(event Event) error {
	switch c.phase {
	case CivilizationTurn:
		if event == PlayerEndedTurn {
			c.phase = WaitingForNextTurn
			return nil
		}
	case WaitingForNextTurn:
		switch event {
		case ProcessAITurn, AITurnComplete:
			return nil
		case AllAITurnsComplete:
			c.phase = TurnTransition
			return nil
		}
	case TurnTransition:
		if event == StartPlayerTurn {
			c.phase = CivilizationTurn
			c.turn++
			return nil
		}
	}
	return fmt.Errorf("event %s not valid in phase %s", event, c.phase)
}
