package actions

// Outcome reports how a confirmable operation ended when it did not fail
type Outcome int

const (
	// Completed means every step ran
	Completed Outcome = iota
	// Declined means the user answered no at a confirmation; nothing after it ran
	Declined
)

func (o Outcome) String() string {
	if o == Declined {
		return "declined"
	}
	return "completed"
}
