package tools

import (
	"encoding/json"

	"github.com/alucardeht/bareos-mcp/internal/bconsole"
)

type consoleTool struct {
	name        string
	title       string
	description string
	schema      json.RawMessage
	build       func(Arguments) string
}

func (t *consoleTool) Name() string                  { return t.name }
func (t *consoleTool) Title() string                 { return t.title }
func (t *consoleTool) Description() string           { return t.description }
func (t *consoleTool) Schema() json.RawMessage       { return t.schema }
func (t *consoleTool) Annotations() map[string]bool  { return ReadOnlyAnnotations() }
func (t *consoleTool) Command(args Arguments) string { return t.build(args) }

var emptySchema = json.RawMessage(`{
		"type": "object",
		"properties": {}
	}`)

func jobIDSchema(description string) json.RawMessage {
	schema, _ := json.Marshal(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"job_id": map[string]interface{}{
				"type":        "string",
				"description": description,
			},
		},
		"required": []string{"job_id"},
	})
	return schema
}

func nameSchema(description string) json.RawMessage {
	schema, _ := json.Marshal(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": description,
			},
		},
	})
	return schema
}

// JobFilterFromArguments maps list_jobs arguments onto the console filter.
func JobFilterFromArguments(args Arguments) bconsole.JobFilter {
	return bconsole.JobFilter{
		Job:       args.String("job"),
		Client:    args.String("client"),
		JobStatus: args.String("jobstatus"),
		JobType:   args.String("jobtype"),
		JobLevel:  args.String("joblevel"),
		Volume:    args.String("volume"),
		Pool:      args.String("pool"),
		Days:      args.Uint("days"),
		Hours:     args.Uint("hours"),
		Last:      args.Bool("last"),
		Count:     args.Bool("count"),
	}
}

// GetTools returns the full catalog in the order tools/list reports it.
func GetTools() []Tool {
	return []Tool{
		&consoleTool{
			name:        "list_jobs",
			title:       "List Jobs",
			description: "List all backup jobs with their status and details",
			schema: json.RawMessage(`{
		"type": "object",
		"properties": {
			"job": {"type": "string", "description": "Only jobs with this job name (optional)"},
			"client": {"type": "string", "description": "Only jobs of this client (optional)"},
			"jobstatus": {"type": "string", "description": "Only jobs with this status code, e.g. T, E, f, R (optional)"},
			"jobtype": {"type": "string", "description": "Only jobs of this type, e.g. B for backup, R for restore (optional)"},
			"joblevel": {"type": "string", "description": "Only jobs of this level, e.g. F, I, D (optional)"},
			"volume": {"type": "string", "description": "Only jobs that wrote to this volume (optional)"},
			"pool": {"type": "string", "description": "Only jobs that wrote to this pool (optional)"},
			"days": {"type": "integer", "minimum": 0, "description": "List jobs from the last N days (optional)"},
			"hours": {"type": "integer", "minimum": 0, "description": "List jobs from the last N hours (optional)"},
			"last": {"type": "boolean", "description": "Only the most recent run of each job (optional)"},
			"count": {"type": "boolean", "description": "Return the number of matching jobs instead of the list (optional)"}
		}
	}`),
			build: func(args Arguments) string {
				return bconsole.ListJobsCommand(JobFilterFromArguments(args))
			},
		},
		&consoleTool{
			name:        "get_job_status",
			title:       "Get Job Status",
			description: "Get detailed status of a specific job by ID",
			schema:      jobIDSchema("The job ID to query"),
			build: func(args Arguments) string {
				return bconsole.JobStatusCommand(args.ID("job_id"))
			},
		},
		&consoleTool{
			name:        "get_job_log",
			title:       "Get Job Log",
			description: "Get the log output for a specific job",
			schema:      jobIDSchema("The job ID to get logs for"),
			build: func(args Arguments) string {
				return bconsole.JobLogCommand(args.ID("job_id"))
			},
		},
		&consoleTool{
			name:        "list_clients",
			title:       "List Clients",
			description: "List all Bareos clients (file daemons)",
			schema:      emptySchema,
			build:       func(Arguments) string { return bconsole.ListClientsCommand() },
		},
		&consoleTool{
			name:        "list_filesets",
			title:       "List Filesets",
			description: "List all configured filesets",
			schema:      emptySchema,
			build:       func(Arguments) string { return bconsole.ListFilesetsCommand() },
		},
		&consoleTool{
			name:        "list_pools",
			title:       "List Pools",
			description: "List all storage pools",
			schema:      emptySchema,
			build:       func(Arguments) string { return bconsole.ListPoolsCommand() },
		},
		&consoleTool{
			name:        "list_volumes",
			title:       "List Volumes",
			description: "List all volumes/media in storage",
			schema: json.RawMessage(`{
		"type": "object",
		"properties": {
			"pool": {"type": "string", "description": "Filter by specific pool name (optional)"}
		}
	}`),
			build: func(args Arguments) string {
				return bconsole.ListVolumesCommand(args.String("pool"))
			},
		},
		&consoleTool{
			name:        "list_files",
			title:       "List Files",
			description: "List all files backed up in a specific job",
			schema:      jobIDSchema("The job ID to list files for"),
			build: func(args Arguments) string {
				return bconsole.ListFilesCommand(args.ID("job_id"))
			},
		},
		&consoleTool{
			name:        "show_job",
			title:       "Show Job Definition",
			description: "Show the configured definition of a job resource",
			schema:      nameSchema("Job resource name; all jobs when omitted"),
			build: func(args Arguments) string {
				return bconsole.ShowCommand("job", args.String("name"))
			},
		},
		&consoleTool{
			name:        "show_jobdefs",
			title:       "Show JobDefs Definition",
			description: "Show the configured definition of a JobDefs resource",
			schema:      nameSchema("JobDefs resource name; all JobDefs when omitted"),
			build: func(args Arguments) string {
				return bconsole.ShowCommand("jobdefs", args.String("name"))
			},
		},
		&consoleTool{
			name:        "show_schedule",
			title:       "Show Schedule Definition",
			description: "Show the configured definition of a schedule resource",
			schema:      nameSchema("Schedule resource name; all schedules when omitted"),
			build: func(args Arguments) string {
				return bconsole.ShowCommand("schedule", args.String("name"))
			},
		},
	}
}

func GetToolByName(name string) Tool {
	for _, tool := range GetTools() {
		if tool.Name() == name {
			return tool
		}
	}
	return nil
}
