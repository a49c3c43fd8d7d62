package services

// EmergencyNumber is always listed first among emergency contacts.
const EmergencyNumber = "911"

type Hospital struct {
	Name          string
	Address       string
	DistanceMiles float64
	Phone         string
	Rating        float64
}

// HospitalDirectory serves a fixed list; there is no geo lookup.
type HospitalDirectory struct{}

func (HospitalDirectory) Nearby() []Hospital {
	return []Hospital{
		{Name: "City General Hospital", Address: "123 Main St", DistanceMiles: 0.8, Phone: "555-0123", Rating: 4.5},
		{Name: "St. Mary Medical Center", Address: "456 Oak Ave", DistanceMiles: 1.2, Phone: "555-0456", Rating: 4.3},
		{Name: "Regional Medical Hospital", Address: "789 Pine Rd", DistanceMiles: 2.1, Phone: "555-0789", Rating: 4.7},
	}
}
