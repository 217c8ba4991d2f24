package linking

import "strings"

// Institution is a bank the link flow can connect to.
type Institution struct {
	ID   string
	Name string
	Logo string
}

var institutions = []Institution{
	{ID: "chase", Name: "Chase", Logo: "bank"},
	{ID: "bofa", Name: "Bank of America", Logo: "classical-building"},
	{ID: "wells", Name: "Wells Fargo", Logo: "convenience-store"},
	{ID: "citi", Name: "Citibank", Logo: "office-building"},
	{ID: "capital", Name: "Capital One", Logo: "credit-card"},
	{ID: "ally", Name: "Ally Bank", Logo: "piggy-bank"},
}

// Institutions returns the supported institutions in display order.
func Institutions() []Institution {
	return append([]Institution(nil), institutions...)
}

// LookupInstitution finds an institution by id, ignoring case.
func LookupInstitution(institutionID string) (Institution, bool) {
	for _, inst := range institutions {
		if strings.EqualFold(inst.ID, institutionID) {
			return inst, true
		}
	}
	return Institution{}, false
}
