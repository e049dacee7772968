package tools

import (
	"context"
	"strings"

	"github.com/hazyhaar/toolhost/internal/db"
	"github.com/hazyhaar/toolhost/pkg/mcprt"
)

// Statement prefixes accepted by each database tool, lowercase.
var (
	createPrefixes  = []string{"create"}
	queryPrefixes   = []string{"select", "with"}
	executePrefixes = []string{"insert", "update", "delete", "replace"}
)

// requirePrefix is the policy gate applied before a statement reaches the store.
func requirePrefix(field, stmt string, prefixes []string) error {
	s := strings.ToLower(strings.TrimSpace(stmt))
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return nil
		}
	}
	return invalidf("%s must start with %s", field, strings.ToUpper(strings.Join(prefixes, " or ")))
}

type execResult struct {
	Success bool `json:"success"`
	db.Result
}

func (d *Dispatcher) dbCreate(ctx context.Context, args mcprt.Args) (any, error) {
	stmt := args.String("schema_sql")
	if err := requirePrefix("schema_sql", stmt, createPrefixes); err != nil {
		return nil, err
	}
	res, err := d.store.Execute(ctx, stmt)
	if err != nil {
		return nil, err
	}
	return execResult{Success: true, Result: res}, nil
}

func (d *Dispatcher) dbQuery(ctx context.Context, args mcprt.Args) (any, error) {
	stmt := args.String("sql")
	if err := requirePrefix("sql", stmt, queryPrefixes); err != nil {
		return nil, err
	}
	return d.store.Query(ctx, stmt, args.Slice("params")...)
}

func (d *Dispatcher) dbExecute(ctx context.Context, args mcprt.Args) (any, error) {
	stmt := args.String("sql")
	if err := requirePrefix("sql", stmt, executePrefixes); err != nil {
		return nil, err
	}
	res, err := d.store.Execute(ctx, stmt, args.Slice("params")...)
	if err != nil {
		return nil, err
	}
	return execResult{Success: true, Result: res}, nil
}

func (d *Dispatcher) dbListTables(ctx context.Context, args mcprt.Args) (any, error) {
	return d.store.Tables(ctx)
}

func (d *Dispatcher) dbDescribeTable(ctx context.Context, args mcprt.Args) (any, error) {
	table := db.SanitizeIdentifier(args.String("table"))
	if table == "" {
		return nil, invalidf("table name is empty after sanitizing")
	}
	cols, err := d.store.Describe(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, invalidf("table %s not found", table)
	}
	return cols, nil
}
