package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/cuongbtq/jobboard/internal/domain"
)

//go:embed data/jobs.json
var defaultDataset []byte

// Options controls how records are admitted at load time
type Options struct {
	// Strict fails the whole load on the first invalid record.
	// Otherwise invalid records are skipped and reported via Rejected.
	Strict bool
	Logger *slog.Logger
}

// Rejection describes a record that was not admitted
type Rejection struct {
	Index int
	ID    string
	Err   error
}

// Catalog is the read-only job dataset, loaded once at startup
type Catalog struct {
	jobs     []domain.Job
	byID     map[string]int
	rejected []Rejection
}

// Load decodes a JSON array of jobs and validates every record
func Load(r io.Reader, opts Options) (*Catalog, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	c := &Catalog{
		jobs: make([]domain.Job, 0, len(raw)),
		byID: make(map[string]int, len(raw)),
	}

	for i, msg := range raw {
		job, err := decodeJob(msg)
		if err == nil {
			if _, dup := c.byID[job.ID]; dup {
				err = fmt.Errorf("%w: %q", domain.ErrDuplicateJobID, job.ID)
			}
		}

		if err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("failed to load record %d: %w", i, err)
			}
			c.rejected = append(c.rejected, Rejection{Index: i, ID: job.ID, Err: err})
			if opts.Logger != nil {
				opts.Logger.Warn("Rejected job record",
					slog.Int("index", i),
					slog.String("job_id", job.ID),
					slog.Any("error", err),
				)
			}
			continue
		}

		c.byID[job.ID] = len(c.jobs)
		c.jobs = append(c.jobs, job)
	}

	if opts.Logger != nil {
		opts.Logger.Info("Job catalog loaded",
			slog.Int("jobs", len(c.jobs)),
			slog.Int("rejected", len(c.rejected)),
		)
	}

	return c, nil
}

// LoadFile loads the dataset from a JSON file
func LoadFile(path string, opts Options) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return Load(f, opts)
}

// LoadDefault loads the dataset bundled with the binary
func LoadDefault(opts Options) (*Catalog, error) {
	return Load(bytes.NewReader(defaultDataset), opts)
}

func decodeJob(msg json.RawMessage) (domain.Job, error) {
	var job domain.Job
	if err := json.Unmarshal(msg, &job); err != nil {
		// keep whatever id was readable for the rejection report
		var head struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(msg, &head)
		job.ID = head.ID
		return job, fmt.Errorf("%w: %v", domain.ErrInvalidJob, err)
	}
	if err := job.Validate(); err != nil {
		return job, err
	}
	return job, nil
}

// All returns every admitted job in dataset order.
// The returned slice is a copy; the records themselves must be treated as read-only.
func (c *Catalog) All() []domain.Job {
	return slices.Clone(c.jobs)
}

// ByID looks a job up by id
func (c *Catalog) ByID(id string) (domain.Job, error) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.Job{}, domain.ErrJobNotFound
	}
	return c.jobs[idx], nil
}

// Has reports whether a job with the id exists
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Lookup resolves ids to jobs in the given order, skipping unknown ids
func (c *Catalog) Lookup(ids []string) []domain.Job {
	out := make([]domain.Job, 0, len(ids))
	for _, id := range ids {
		job, err := c.ByID(id)
		if errors.Is(err, domain.ErrJobNotFound) {
			continue
		}
		out = append(out, job)
	}
	return out
}

// Len returns the number of admitted jobs
func (c *Catalog) Len() int {
	return len(c.jobs)
}

// Rejected returns the records skipped by a lenient load
func (c *Catalog) Rejected() []Rejection {
	return slices.Clone(c.rejected)
}
