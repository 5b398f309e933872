package leads

// Submission represents a lead-form submission from the marketing site.
// It lives for a single request: decoded, validated, turned into an email,
// then discarded.
type Submission struct {
	Industry     string `json:"industry"`
	BusinessType string `json:"businessType"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Message      string `json:"message"`
}

// Validate checks that every field is present. The form is the only gate;
// no format validation is applied beyond non-emptiness.
func (s *Submission) Validate() error {
	required := []string{
		s.Industry,
		s.BusinessType,
		s.Name,
		s.City,
		s.Phone,
		s.Email,
		s.Message,
	}
	for _, v := range required {
		if v == "" {
			return ErrAllFieldsRequired
		}
	}
	return nil
}
