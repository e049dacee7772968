package tools

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazyhaar/toolhost/internal/analysis"
	"github.com/hazyhaar/toolhost/internal/db"
	"github.com/hazyhaar/toolhost/internal/mockdata"
	"github.com/hazyhaar/toolhost/pkg/audit"
)

type memLog struct{ entries []*audit.Entry }

func (m *memLog) Log(_ context.Context, e *audit.Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

func newDispatcher(t *testing.T) (*Dispatcher, *memLog) {
	t.Helper()
	dir := t.TempDir()
	store := db.New(filepath.Join(dir, "store.db"))
	t.Cleanup(func() { store.Close() })

	runner, err := analysis.New(dir, "pyright")
	require.NoError(t, err)

	log := &memLog{}
	d := New(NewRegistry(), store, mockdata.Default(), runner, log)
	d.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	return d, log
}

func dispatch(t *testing.T, d *Dispatcher, name string, args map[string]any) (any, error) {
	t.Helper()
	text, err := d.Dispatch(context.Background(), name, args)
	if err != nil {
		return nil, err
	}
	var v any
	require.NoError(t, json.Unmarshal([]byte(text), &v), text)
	return v, nil
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	var terr *Error
	require.True(t, errors.As(err, &terr), "want *tools.Error, got %v", err)
	require.Equal(t, kind, terr.Kind, terr.Error())
	return terr
}

func TestEndToEndScenario(t *testing.T) {
	d, _ := newDispatcher(t)

	v, err := dispatch(t, d, "calculate", map[string]any{"operation": "divide", "a": 10.0, "b": 2.0})
	require.NoError(t, err)
	assert.Equal(t, 5.0, v.(map[string]any)["result"])

	_, err = dispatch(t, d, "calculate", map[string]any{"operation": "divide", "a": 1.0, "b": 0.0})
	requireKind(t, err, InvalidRequest)
	assert.ErrorIs(t, err, mcp.ErrInvalidRequest)

	_, err = dispatch(t, d, "db_create", map[string]any{"schema_sql": "CREATE TABLE t(x INTEGER)"})
	require.NoError(t, err)
	v, err = dispatch(t, d, "db_list_tables", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"name": "t"}}, v)

	_, err = dispatch(t, d, "erp_get_customer", map[string]any{"id": "C-9999"})
	requireKind(t, err, InvalidRequest)
	assert.Contains(t, err.Error(), "C-9999")
}

func TestCalculate(t *testing.T) {
	d, _ := newDispatcher(t)
	cases := []struct {
		op   string
		a, b float64
		want float64
	}{
		{"add", 2, 3, 5},
		{"subtract", 2, 3, -1},
		{"multiply", -4, 2.5, -10},
		{"divide", 7, 2, 3.5},
		{"divide", 0, 5, 0},
	}
	for _, tc := range cases {
		v, err := dispatch(t, d, "calculate", map[string]any{"operation": tc.op, "a": tc.a, "b": tc.b})
		require.NoError(t, err, tc.op)
		got := v.(map[string]any)
		assert.Equal(t, tc.op, got["operation"])
		assert.Equal(t, tc.a, got["a"])
		assert.Equal(t, tc.b, got["b"])
		assert.Equal(t, tc.want, got["result"], "%s %v %v", tc.op, tc.a, tc.b)
	}
}

func TestCalculateRejectsBadInput(t *testing.T) {
	d, _ := newDispatcher(t)

	_, err := dispatch(t, d, "calculate", map[string]any{"operation": "modulo", "a": 1.0, "b": 2.0})
	requireKind(t, err, InvalidRequest)

	_, err = dispatch(t, d, "calculate", map[string]any{"operation": "add", "a": "1", "b": 2.0})
	requireKind(t, err, InvalidRequest)

	_, err = dispatch(t, d, "calculate", map[string]any{"operation": "add", "a": 1.0})
	terr := requireKind(t, err, InvalidRequest)
	assert.Contains(t, terr.Msg, `"b"`)

	_, err = dispatch(t, d, "calculate", map[string]any{"operation": "multiply", "a": 1e308, "b": 10.0})
	requireKind(t, err, InvalidRequest)
}

func TestUnknownTool(t *testing.T) {
	d, _ := newDispatcher(t)
	_, err := d.Dispatch(context.Background(), "rm_rf", nil)
	requireKind(t, err, MethodNotFound)
	assert.ErrorIs(t, err, mcp.ErrMethodNotFound)
	assert.Contains(t, err.Error(), "rm_rf")
}

func TestUsers(t *testing.T) {
	d, _ := newDispatcher(t)

	v, err := dispatch(t, d, "get_users", nil)
	require.NoError(t, err)
	assert.Len(t, v, 3)

	v, err = dispatch(t, d, "get_user_by_id", map[string]any{"id": 2.0})
	require.NoError(t, err)
	assert.Equal(t, "Mehmet", v.(map[string]any)["name"])

	for _, id := range []float64{0, 4, 1.5} {
		_, err = dispatch(t, d, "get_user_by_id", map[string]any{"id": id})
		requireKind(t, err, InvalidRequest)
	}

	v, err = dispatch(t, d, "get_server_stats", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"totalUsers": 3.0,
		"version":    "1.0.0",
		"serverTime": "2024-03-01T09:30:00Z",
	}, v)
}

func TestERPLookups(t *testing.T) {
	d, _ := newDispatcher(t)

	v, err := dispatch(t, d, "erp_list_customers", map[string]any{"status": "active", "country": "TR"})
	require.NoError(t, err)
	for _, c := range v.([]any) {
		assert.Equal(t, "active", c.(map[string]any)["status"])
		assert.Equal(t, "TR", c.(map[string]any)["country"])
	}

	v, err = dispatch(t, d, "erp_list_customers", map[string]any{"country": "JP"})
	require.NoError(t, err)
	assert.Equal(t, []any{}, v)

	v, err = dispatch(t, d, "erp_get_product", map[string]any{"sku": "SKU-100"})
	require.NoError(t, err)
	assert.Equal(t, "textiles", v.(map[string]any)["category"])

	v, err = dispatch(t, d, "erp_check_inventory", map[string]any{"warehouse": "IZM-1"})
	require.NoError(t, err)
	assert.Len(t, v, 2)

	v, err = dispatch(t, d, "erp_get_order", map[string]any{"id": "SO-5001"})
	require.NoError(t, err)
	assert.Len(t, v.(map[string]any)["lines"], 2)

	v, err = dispatch(t, d, "erp_list_invoices", map[string]any{"customer_id": "C-1001", "status": "overdue"})
	require.NoError(t, err)
	assert.Len(t, v, 1)

	for name, id := range map[string]string{
		"erp_get_product": "SKU-999",
		"erp_get_order":   "SO-0",
		"erp_get_invoice": "INV-0",
	} {
		key := "id"
		if name == "erp_get_product" {
			key = "sku"
		}
		_, err := dispatch(t, d, name, map[string]any{key: id})
		terr := requireKind(t, err, InvalidRequest)
		assert.Contains(t, terr.Msg, id)
	}
}

func TestDatabaseGates(t *testing.T) {
	d, _ := newDispatcher(t)

	_, err := dispatch(t, d, "db_create", map[string]any{"schema_sql": "DROP TABLE t"})
	requireKind(t, err, InvalidRequest)

	_, err = dispatch(t, d, "db_query", map[string]any{"sql": "DELETE FROM t"})
	requireKind(t, err, InvalidRequest)

	_, err = dispatch(t, d, "db_execute", map[string]any{"sql": "CREATE TABLE x(a)"})
	requireKind(t, err, InvalidRequest)

	// gates are case- and whitespace-insensitive
	_, err = dispatch(t, d, "db_create", map[string]any{"schema_sql": "  create table IF NOT EXISTS items(id INTEGER PRIMARY KEY, name TEXT)"})
	require.NoError(t, err)
	_, err = dispatch(t, d, "db_create", map[string]any{"schema_sql": "CREATE TABLE IF NOT EXISTS items(id INTEGER PRIMARY KEY, name TEXT)"})
	require.NoError(t, err)

	v, err := dispatch(t, d, "db_execute", map[string]any{
		"sql":    "INSERT INTO items(name) VALUES (?), (?)",
		"params": []any{"bolt", "nut"},
	})
	require.NoError(t, err)
	res := v.(map[string]any)
	assert.Equal(t, true, res["success"])
	assert.Equal(t, 2.0, res["rows_affected"])
	assert.Greater(t, res["snapshot_bytes"], 0.0)

	v, err = dispatch(t, d, "db_query", map[string]any{
		"sql":    "with n as (select name from items where id > ?) select name from n order by name",
		"params": []any{0.0},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{
		map[string]any{"name": "bolt"},
		map[string]any{"name": "nut"},
	}, v)
}

func TestDescribeTable(t *testing.T) {
	d, _ := newDispatcher(t)
	_, err := dispatch(t, d, "db_create", map[string]any{"schema_sql": "CREATE TABLE orders(id INTEGER, total REAL)"})
	require.NoError(t, err)

	v, err := dispatch(t, d, "db_describe_table", map[string]any{"table": "orders; DROP TABLE orders"})
	require.Error(t, err, "sanitized to ordersDROPTABLEorders which does not exist")
	assert.Nil(t, v)

	v, err = dispatch(t, d, "db_describe_table", map[string]any{"table": "ord`ers"})
	require.NoError(t, err)
	cols := v.([]any)
	require.Len(t, cols, 2)
	assert.Equal(t, "id", cols[0].(map[string]any)["name"])

	_, err = dispatch(t, d, "db_describe_table", map[string]any{"table": "'; --"})
	requireKind(t, err, InvalidRequest)

	// keywords and leading digits are valid names once quoted
	for _, name := range []string{"select", "1t"} {
		_, err = dispatch(t, d, "db_describe_table", map[string]any{"table": name})
		requireKind(t, err, InvalidRequest)
	}

	// table still exists
	v, err = dispatch(t, d, "db_list_tables", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"name": "orders"}}, v)
}

func TestPyrightCheckConfinement(t *testing.T) {
	d, _ := newDispatcher(t)
	_, err := dispatch(t, d, "pyright_check", map[string]any{"targetPath": "../../etc"})
	terr := requireKind(t, err, InvalidRequest)
	assert.Contains(t, terr.Msg, "outside")
}

func TestPyrightCheckRuns(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "pyright")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\necho '{\"generalDiagnostics\":[]}'\n"), 0o755))

	d, _ := newDispatcher(t)
	runner, err := analysis.New(dir, bin)
	require.NoError(t, err)
	d.runner = runner

	v, err := dispatch(t, d, "pyright_check", map[string]any{"targetPath": "."})
	require.NoError(t, err)
	rep := v.(map[string]any)
	assert.Equal(t, 0.0, rep["exitCode"])
	assert.NotContains(t, rep, "stderr")
	assert.Equal(t, map[string]any{"generalDiagnostics": []any{}}, rep["result"])
}

func TestCallLogsEveryOutcome(t *testing.T) {
	d, log := newDispatcher(t)
	ctx := context.Background()

	text, err := d.Call(ctx, "calculate", map[string]any{"operation": "add", "a": 1.0, "b": 1.0})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "{\n  \"operation\""), text)

	_, err = d.Call(ctx, "calculate", map[string]any{"operation": "divide", "a": 1.0, "b": 0.0})
	requireKind(t, err, InvalidRequest)

	_, err = d.Call(ctx, "nope", nil)
	requireKind(t, err, MethodNotFound)

	require.Len(t, log.entries, 3)
	assert.Equal(t, audit.StatusOK, log.entries[0].Status)
	assert.Equal(t, "calculate", log.entries[0].Tool)
	assert.Equal(t, audit.StatusError, log.entries[1].Status)
	assert.Contains(t, log.entries[1].Error, "division by zero")
	assert.Equal(t, "nope", log.entries[2].Tool)
}

// toolLabels returns every tool label value of the tool call counter.
func toolLabels(t *testing.T) map[string]bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	labels := map[string]bool{}
	for _, mf := range families {
		if mf.GetName() != "toolhost_tool_calls_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "tool" {
					labels[lp.GetValue()] = true
				}
			}
		}
	}
	return labels
}

func TestUnknownNamesShareOneMetricLabel(t *testing.T) {
	d, log := newDispatcher(t)
	ctx := context.Background()

	names := []string{"x_3f9a", "x_77b2", "x_c0de"}
	for _, name := range names {
		_, err := d.Call(ctx, name, nil)
		requireKind(t, err, MethodNotFound)
	}

	labels := toolLabels(t)
	assert.True(t, labels[UnknownToolLabel])
	for _, name := range names {
		assert.False(t, labels[name], name)
	}

	// the call log still names what the client asked for
	require.Len(t, log.entries, len(names))
	assert.Equal(t, names[1], log.entries[1].Tool)
}

func TestCatalogMatchesHandlers(t *testing.T) {
	d, _ := newDispatcher(t)
	for _, tool := range Catalog() {
		assert.Contains(t, d.handlers, tool.Name)
	}
	assert.Len(t, d.handlers, len(Catalog()))
}
