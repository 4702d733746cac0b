package model

type Room struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Capacity    int      `json:"capacity" yaml:"capacity"`
	Instruments []string `json:"instruments" yaml:"instruments"`
	Available   bool     `json:"available" yaml:"available"`
	HourlyRate  int      `json:"hourly_rate" yaml:"hourly_rate"` // в грошах
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

func (r Room) Supports(instrument string) bool {
	return instrument == "" || contains(r.Instruments, instrument)
}

type Teacher struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Instruments []string `json:"instruments" yaml:"instruments"`
	Available   bool     `json:"available" yaml:"available"`
	Email       string   `json:"email" yaml:"email"`
	Phone       string   `json:"phone" yaml:"phone"`
	Experience  int      `json:"experience" yaml:"experience"` // лет
	HourlyRate  int      `json:"hourly_rate" yaml:"hourly_rate"`
	Bio         string   `json:"bio,omitempty" yaml:"bio,omitempty"`
}

func (t Teacher) Teaches(instrument string) bool {
	return instrument == "" || contains(t.Instruments, instrument)
}

type Instrument struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"`
	Available bool   `json:"available" yaml:"available"`
}

type Student struct {
	ID                    string `json:"id" yaml:"id"`
	FirstName             string `json:"first_name" yaml:"first_name"`
	LastName              string `json:"last_name" yaml:"last_name"`
	Email                 string `json:"email" yaml:"email"`
	Phone                 string `json:"phone" yaml:"phone"`
	DateOfBirth           string `json:"date_of_birth,omitempty" yaml:"date_of_birth,omitempty"`
	HasActiveSubscription bool   `json:"has_active_subscription" yaml:"has_active_subscription"`
}

func (s Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
