package query

import (
	"github.com/cuongbtq/jobboard/internal/domain"
)

func job(id, title, company, date string, opts ...func(*domain.Job)) domain.Job {
	j := domain.Job{
		ID:       id,
		Title:    title,
		Company:  company,
		PostedAt: domain.MustParseDate(date),
		Salary:   domain.Salary{Currency: "USD", Period: "month"},
	}
	for _, opt := range opts {
		opt(&j)
	}
	return j
}

func sampleJobs() []domain.Job {
	return []domain.Job{
		job("jb_0001", "Frontend Developer", "Acme Labs", "2025-01-18", func(j *domain.Job) {
			j.Location = "Accra, GH"
			j.Type = "Full-time"
			j.Remote = true
			j.Salary = domain.Salary{Min: 6000, Max: 9000, Currency: "GHS", Period: "month"}
			j.Experience = "Junior"
			j.Tags = []string{"React", "TypeScript", "Next.js"}
			j.Description = "We're looking for a passionate Frontend Developer to join our growing team."
		}),
		job("jb_0002", "Senior Backend Engineer", "TechCorp Solutions", "2025-01-17", func(j *domain.Job) {
			j.Location = "Lagos, NG"
			j.Type = "Full-time"
			j.Remote = false
			j.Salary = domain.Salary{Min: 12000, Max: 18000, Currency: "NGN", Period: "month"}
			j.Experience = "Senior"
			j.Tags = []string{"Node.js", "Python", "PostgreSQL", "AWS"}
			j.Description = "Join our engineering team to build scalable backend services and APIs."
		}),
		job("jb_0003", "UI/UX Designer", "Creative Studio", "2025-01-16", func(j *domain.Job) {
			j.Location = "Nairobi, KE"
			j.Type = "Contract"
			j.Remote = true
			j.Salary = domain.Salary{Min: 8000, Max: 12000, Currency: "USD", Period: "month"}
			j.Experience = "Mid"
			j.Tags = []string{"Figma", "Adobe Creative Suite", "User Research", "Prototyping"}
			j.Description = "We need a talented designer to create intuitive user experiences."
		}),
		job("jb_0004", "DevOps Engineer", "CloudTech Inc", "2025-01-15", func(j *domain.Job) {
			j.Location = "Cairo, EG"
			j.Type = "Full-time"
			j.Remote = true
			j.Salary = domain.Salary{Min: 7000, Max: 11000, Currency: "USD", Period: "month"}
			j.Experience = "Mid"
			j.Tags = []string{"Docker", "Kubernetes", "AWS", "CI/CD"}
			j.Description = "Help us build and maintain robust infrastructure and deployment pipelines."
		}),
		job("jb_0005", "Data Scientist", "Analytics Pro", "2025-01-14", func(j *domain.Job) {
			j.Location = "Johannesburg, ZA"
			j.Type = "Full-time"
			j.Remote = false
			j.Salary = domain.Salary{Min: 15000, Max: 22000, Currency: "ZAR", Period: "month"}
			j.Experience = "Senior"
			j.Tags = []string{"Python", "Machine Learning", "SQL", "Statistics"}
			j.Description = "Join our data team to extract insights from complex datasets."
		}),
	}
}

func ids(jobs []domain.Job) []string {
	out := make([]string, len(jobs))
	for i := range jobs {
		out[i] = jobs[i].ID
	}
	return out
}

// shuffled returns the sample in a fixed non-chronological order
func shuffled() []domain.Job {
	s := sampleJobs()
	return []domain.Job{s[2], s[4], s[0], s[3], s[1]}
}
