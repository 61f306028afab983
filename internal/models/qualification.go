package models

// QualificationType distinguishes one-to-one from group lessons.
type QualificationType string

const (
	QualificationPrivate QualificationType = "private"
	QualificationGroup   QualificationType = "group"
)

// DefaultCurrency is applied to new qualifications without a currency.
const DefaultCurrency = "USD"

// Qualification is a subject a teacher can teach and the rate charged for it.
type Qualification struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Rate         float64           `json:"rate"`
	Currency     string            `json:"currency"`
	Type         QualificationType `json:"type"`
	Description  string            `json:"description,omitempty"`
	Requirements []string          `json:"requirements,omitempty"`
	IsActive     bool              `json:"isActive"`
}

func cloneQualifications(in []Qualification) []Qualification {
	if in == nil {
		return nil
	}
	out := make([]Qualification, len(in))
	for i, q := range in {
		out[i] = q
		if q.Requirements != nil {
			out[i].Requirements = append([]string(nil), q.Requirements...)
		}
	}
	return out
}
