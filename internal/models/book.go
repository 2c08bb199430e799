package models

import "slices"

// Book is the static configuration of a ledger: who shares costs, what the
// recurring charges are and which currency amounts are shown in.
type Book struct {
	Currency     string
	Participants []Participant
	Charges      []RecurringCharge
}

// ParticipantIDs returns participant IDs in book order.
func (b Book) ParticipantIDs() []string {
	return ParticipantIDs(b.Participants)
}

// Participant looks up a participant by ID.
func (b Book) Participant(id string) (Participant, bool) {
	i := slices.IndexFunc(b.Participants, func(p Participant) bool { return p.ID == id })
	if i < 0 {
		return Participant{}, false
	}
	return b.Participants[i], true
}

// Charge looks up a charge by ID.
func (b Book) Charge(id string) (RecurringCharge, bool) {
	i := slices.IndexFunc(b.Charges, func(c RecurringCharge) bool { return c.ID == id })
	if i < 0 {
		return RecurringCharge{}, false
	}
	return b.Charges[i], true
}
