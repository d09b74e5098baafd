package validation

import "github.com/aanand-mishra/enrollment-intake/internal/types"

// Apply returns a copy of rec with the field named by its JSON name set to
// raw. National IDs, phone, and postal code are formatted as typed.
// The second result is false when field is unknown, in which case rec is
// returned unchanged.
func Apply(rec types.EnrollmentRecord, field, raw string) (types.EnrollmentRecord, bool) {
	switch field {
	case "childName":
		rec.ChildName = raw
	case "birthDate":
		rec.BirthDate = raw
	case "childNationalId":
		rec.ChildNationalID = FormatNationalID(raw)
	case "domesticId":
		rec.DomesticID = raw
	case "guardianName":
		rec.GuardianName = raw
	case "relationship":
		rec.Relationship = raw
	case "guardianNationalId":
		rec.GuardianNationalID = FormatNationalID(raw)
	case "phone":
		rec.Phone = FormatPhone(raw)
	case "email":
		rec.Email = raw
	case "street":
		rec.Street = raw
	case "number":
		rec.Number = raw
	case "complement":
		rec.Complement = raw
	case "district":
		rec.District = raw
	case "city":
		rec.City = raw
	case "postalCode":
		rec.PostalCode = FormatPostalCode(raw)
	case "race":
		rec.Race = raw
	case "incomeBracket":
		rec.IncomeBracket = raw
	case "householdSize":
		rec.HouseholdSize = raw
	case "housing":
		rec.Housing = raw
	case "hasDisability":
		rec.HasDisability = raw
		if raw != "yes" {
			rec.DisabilityType = ""
		}
	case "disabilityType":
		rec.DisabilityType = raw
	case "notes":
		rec.Notes = raw
	case "submissionDate":
		rec.SubmissionDate = raw
	default:
		return rec, false
	}
	return rec, true
}
