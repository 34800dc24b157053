package service

import (
	"strings"

	"github.com/medflow/arztliste/internal/arztliste/domain"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region national numbers are interpreted in
const DefaultPhoneRegion = "DE"

// CheckPhoneNumbers reports phone and mobile numbers that cannot be parsed or
// have an impossible length for region. Empty numbers are skipped.
func CheckPhoneNumbers(doctors []domain.Doctor, region string) []PhoneWarning {
	var warnings []PhoneWarning
	for _, d := range doctors {
		for _, c := range []struct{ field, number string }{
			{"phone", d.Contact.Phone},
			{"mobile", d.Contact.Mobile},
		} {
			if strings.TrimSpace(c.number) == "" || plausible(c.number, region) {
				continue
			}
			warnings = append(warnings, PhoneWarning{Doctor: d.Name, Field: c.field, Number: c.number})
		}
	}
	return warnings
}

func plausible(number, region string) bool {
	num, err := phonenumbers.Parse(number, region)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(num)
}
