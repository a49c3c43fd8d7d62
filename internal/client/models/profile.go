package models

// Profile is the flat user profile. It is a map so fields written by other
// app versions survive a load/save cycle.
type Profile map[string]string

// ProfileField describes one editable profile field.
type ProfileField struct {
	Key   string
	Label string
}

// ProfileSection groups fields the way the profile screen shows them.
type ProfileSection struct {
	Title  string
	Fields []ProfileField
}

var ProfileSections = []ProfileSection{
	{Title: "Personal Information", Fields: []ProfileField{
		{Key: "name", Label: "Full Name"},
		{Key: "age", Label: "Age"},
		{Key: "bloodType", Label: "Blood Type"},
	}},
	{Title: "Medical Information", Fields: []ProfileField{
		{Key: "allergies", Label: "Allergies"},
		{Key: "medicalConditions", Label: "Medical Conditions"},
	}},
	{Title: "Emergency Contact", Fields: []ProfileField{
		{Key: "emergencyName", Label: "Emergency Contact"},
		{Key: "emergencyContact", Label: "Emergency Phone"},
	}},
	{Title: "Healthcare", Fields: []ProfileField{
		{Key: "doctor", Label: "Primary Doctor"},
		{Key: "doctorPhone", Label: "Doctor Phone"},
		{Key: "insurance", Label: "Insurance"},
	}},
}

// EmptyProfile has every known field set to "".
func EmptyProfile() Profile {
	p := make(Profile)
	for _, s := range ProfileSections {
		for _, f := range s.Fields {
			p[f.Key] = ""
		}
	}
	return p
}

// LookupProfileField returns the field definition for key.
func LookupProfileField(key string) (ProfileField, bool) {
	for _, s := range ProfileSections {
		for _, f := range s.Fields {
			if f.Key == key {
				return f, true
			}
		}
	}
	return ProfileField{}, false
}
