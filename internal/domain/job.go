package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Salary is the advertised pay band of a job, in the job's own currency
type Salary struct {
	Min      int    `json:"min" validate:"gte=0"`
	Max      int    `json:"max" validate:"gtefield=Min"`
	Currency string `json:"currency" validate:"required,len=3,alpha"`
	Period   string `json:"period" validate:"required"`
}

// Job is a single posting. Records are immutable once loaded.
type Job struct {
	ID               string   `json:"id" validate:"required"`
	Title            string   `json:"title" validate:"required"`
	Company          string   `json:"company" validate:"required"`
	Location         string   `json:"location"`
	Type             string   `json:"type"`
	Remote           bool     `json:"remote"`
	Salary           Salary   `json:"salary"`
	Experience       string   `json:"experience"`
	PostedAt         Date     `json:"postedAt" validate:"-"`
	Tags             []string `json:"tags"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	Benefits         []string `json:"benefits"`
	CompanyLogo      string   `json:"companyLogo,omitempty"`
}

var validate = validator.New()

// Validate checks the record shape so queries never see malformed jobs
func (j *Job) Validate() error {
	if err := validate.Struct(j); err != nil {
		return fmt.Errorf("%w: job %q: %v", ErrInvalidJob, j.ID, err)
	}
	if j.PostedAt.IsZero() {
		return fmt.Errorf("%w: job %q: postedAt is required", ErrInvalidJob, j.ID)
	}
	if strings.ToUpper(j.Salary.Currency) != j.Salary.Currency {
		return fmt.Errorf("%w: job %q: currency %q must be upper case", ErrInvalidJob, j.ID, j.Salary.Currency)
	}
	return nil
}

// Date is a calendar date as written in the dataset ("2006-01-02")
type Date struct {
	time.Time
}

// DateLayout is the on-disk layout of Job.PostedAt
const DateLayout = time.DateOnly

// ParseDate accepts a plain calendar date or a full RFC 3339 timestamp
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t.UTC()}, nil
}

// MustParseDate is ParseDate for fixtures and constants
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
