package engine

// EventKind tags a lifecycle or economy occurrence.
type EventKind uint8

const (
	EventBirth EventKind = iota
	EventDeath
	EventDistress
	EventRecovery
	EventPromotion
	EventStarvation
	EventSuppressed
	EventMerge
	EventSplit
)

// String returns the wire label for an event kind.
func (k EventKind) String() string {
	switch k {
	case EventBirth:
		return "BIRTH"
	case EventDeath:
		return "DEATH"
	case EventDistress:
		return "DISTRESS"
	case EventRecovery:
		return "RECOVERY"
	case EventPromotion:
		return "PROMOTION"
	case EventStarvation:
		return "STARVATION"
	case EventSuppressed:
		return "SUPPRESSED"
	case EventMerge:
		return "MERGE"
	case EventSplit:
		return "SPLIT"
	default:
		return "UNKNOWN"
	}
}

// Event is a notable occurrence within one tick. Events are transient — the
// buffer is cleared at the top of every step — and are the only channel by
// which operators communicate births, deaths, and suppressions to the
// registry and the validator.
type Event struct {
	Tick     uint64    `json:"tick"`
	Kind     EventKind `json:"kind"`
	EntityID string    `json:"entity_id,omitempty"`
	Related  []string  `json:"related,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}
