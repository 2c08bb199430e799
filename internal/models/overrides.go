package models

import "maps"

// PayerOverrides records who actually paid a charge in a given month:
// overrides[periodKey][chargeID] = participantID. Missing entries fall back
// to the charge's DefaultPayer.
type PayerOverrides map[string]map[string]string

// Get returns the override for (periodKey, chargeID), if any.
func (o PayerOverrides) Get(periodKey, chargeID string) (string, bool) {
	payer, ok := o[periodKey][chargeID]
	return payer, ok && payer != ""
}

// Set records participantID as the payer of chargeID in periodKey.
func (o PayerOverrides) Set(periodKey, chargeID, participantID string) {
	row := o[periodKey]
	if row == nil {
		row = make(map[string]string)
		o[periodKey] = row
	}
	row[chargeID] = participantID
}

// Clone returns a deep copy. The clone of a nil map is an empty map.
func (o PayerOverrides) Clone() PayerOverrides {
	c := make(PayerOverrides, len(o))
	for k, row := range o {
		c[k] = maps.Clone(row)
	}
	return c
}

// Equal reports whether o and other hold the same entries.
func (o PayerOverrides) Equal(other PayerOverrides) bool {
	return maps.EqualFunc(o, other, func(a, b map[string]string) bool {
		return maps.Equal(a, b)
	})
}
