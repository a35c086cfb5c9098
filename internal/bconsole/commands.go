package bconsole

import (
	"strconv"
	"strings"
)

// JobFilter narrows "list jobs". Every field is optional and none are
// checked against each other: when both Days and Hours are set, bconsole
// decides which one wins.
type JobFilter struct {
	Job       string
	Client    string
	JobStatus string
	JobType   string
	JobLevel  string
	Volume    string
	Pool      string
	Days      *uint64
	Hours     *uint64
	Last      bool
	Count     bool
}

type command struct {
	b strings.Builder
}

func newCommand(words ...string) *command {
	c := &command{}
	for _, w := range words {
		c.word(w)
	}
	return c
}

func (c *command) word(w string) *command {
	if c.b.Len() > 0 {
		c.b.WriteByte(' ')
	}
	c.b.WriteString(w)
	return c
}

func (c *command) kv(key, value string) *command {
	return c.word(key + "=" + quote(value))
}

func (c *command) optional(key, value string) *command {
	if value == "" {
		return c
	}
	return c.kv(key, value)
}

func (c *command) String() string {
	return c.b.String()
}

// quote keeps a value on one console line and inside one token.
func quote(value string) string {
	value = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(value)
	if strings.ContainsAny(value, " \t") {
		return `"` + strings.ReplaceAll(value, `"`, "") + `"`
	}
	return value
}

func ListJobsCommand(f JobFilter) string {
	c := newCommand("list", "jobs").
		optional("job", f.Job).
		optional("client", f.Client).
		optional("jobstatus", f.JobStatus).
		optional("jobtype", f.JobType).
		optional("joblevel", f.JobLevel).
		optional("volume", f.Volume).
		optional("pool", f.Pool)

	if f.Days != nil {
		c.kv("days", strconv.FormatUint(*f.Days, 10))
	}
	if f.Hours != nil {
		c.kv("hours", strconv.FormatUint(*f.Hours, 10))
	}
	if f.Last {
		c.word("last")
	}
	if f.Count {
		c.word("count")
	}
	return c.String()
}

func JobStatusCommand(jobID string) string {
	return newCommand("list").kv("jobid", jobID).String()
}

func JobLogCommand(jobID string) string {
	return newCommand("list", "joblog").kv("jobid", jobID).String()
}

func ListClientsCommand() string  { return "list clients" }
func ListFilesetsCommand() string { return "list filesets" }
func ListPoolsCommand() string    { return "list pools" }

func ListVolumesCommand(pool string) string {
	return newCommand("list", "volumes").optional("pool", pool).String()
}

func ListFilesCommand(jobID string) string {
	return newCommand("list", "files").kv("jobid", jobID).String()
}

// ShowCommand prints one resource definition, or all of them when name
// is empty. resource is the singular keyword ("job", "jobdefs", "schedule").
func ShowCommand(resource, name string) string {
	if name == "" {
		return newCommand("show", pluralResource(resource)).String()
	}
	return newCommand("show").kv(resource, name).String()
}

func pluralResource(resource string) string {
	switch resource {
	case "jobdefs":
		return "jobdefs"
	default:
		return resource + "s"
	}
}
