package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	kvTable     = "kv_entries"
	eventsTable = "llm_request_events"
)

var (
	kvColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeTime},
	}
	kvEntriesTable = &schema.Table{
		Name:       kvTable,
		Columns:    kvColumns,
		PrimaryKey: []*schema.Column{kvColumns[0]},
	}

	eventColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmRequestEventsTable = &schema.Table{
		Name:       eventsTable,
		Columns:    eventColumns,
		PrimaryKey: []*schema.Column{eventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{eventColumns[1]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{eventColumns[4]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{eventColumns[8]}},
		},
	}

	tables = []*schema.Table{
		kvEntriesTable,
		llmRequestEventsTable,
	}
)
