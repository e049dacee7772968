// Package tools executes the tool catalog: argument validation, policy gates,
// tool bodies and result encoding.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hazyhaar/pkg/kit"

	"github.com/hazyhaar/toolhost/internal/analysis"
	"github.com/hazyhaar/toolhost/internal/db"
	"github.com/hazyhaar/toolhost/internal/metrics"
	"github.com/hazyhaar/toolhost/internal/mockdata"
	"github.com/hazyhaar/toolhost/pkg/audit"
	"github.com/hazyhaar/toolhost/pkg/mcprt"
)

type handlerFunc func(ctx context.Context, args mcprt.Args) (any, error)

// UnknownToolLabel is the metrics label for every name outside the catalog, so
// client-supplied names cannot grow the label set.
const UnknownToolLabel = "unknown"

// Dispatcher routes a tool name to its body.
type Dispatcher struct {
	reg      *mcprt.Registry
	store    *db.Handle
	data     *mockdata.Store
	runner   *analysis.Runner
	handlers map[string]handlerFunc
	chains   map[string]kit.Endpoint
	auditLog audit.Logger
	now      func() time.Time
}

// New builds a Dispatcher over reg. auditLog may be nil.
func New(reg *mcprt.Registry, store *db.Handle, data *mockdata.Store, runner *analysis.Runner, auditLog audit.Logger) *Dispatcher {
	d := &Dispatcher{
		reg:      reg,
		store:    store,
		data:     data,
		runner:   runner,
		auditLog: auditLog,
		now:      time.Now,
	}
	d.handlers = map[string]handlerFunc{
		"get_users":           d.getUsers,
		"get_user_by_id":      d.getUserByID,
		"get_server_stats":    d.getServerStats,
		"calculate":           d.calculate,
		"erp_list_customers":  d.listCustomers,
		"erp_get_customer":    d.getCustomer,
		"erp_list_products":   d.listProducts,
		"erp_get_product":     d.getProduct,
		"erp_check_inventory": d.checkInventory,
		"erp_list_orders":     d.listOrders,
		"erp_get_order":       d.getOrder,
		"erp_list_invoices":   d.listInvoices,
		"erp_get_invoice":     d.getInvoice,
		"db_create":           d.dbCreate,
		"db_query":            d.dbQuery,
		"db_execute":          d.dbExecute,
		"db_list_tables":      d.dbListTables,
		"db_describe_table":   d.dbDescribeTable,
		"pyright_check":       d.pyrightCheck,
	}

	d.chains = make(map[string]kit.Endpoint, len(d.handlers))
	for _, t := range reg.List() {
		d.chains[t.Name] = d.endpoint(t.Name, t.Name)
	}
	return d
}

// endpoint wraps Dispatch for one tool with metrics under label and the call log.
func (d *Dispatcher) endpoint(name, label string) kit.Endpoint {
	var endpoint kit.Endpoint = func(ctx context.Context, request any) (any, error) {
		args, _ := request.(map[string]any)
		return d.Dispatch(ctx, name, args)
	}
	endpoint = metrics.Middleware(label)(endpoint)
	if d.auditLog != nil {
		endpoint = audit.Middleware(d.auditLog, name)(endpoint)
	}
	return endpoint
}

// Call is Dispatch with timing, metrics and call logging. It satisfies
// mcprt.Caller.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	endpoint, ok := d.chains[name]
	if !ok {
		endpoint = d.endpoint(name, UnknownToolLabel)
	}
	resp, err := endpoint(ctx, args)
	if err != nil {
		return "", err
	}
	text, _ := resp.(string)
	return text, nil
}

// Dispatch validates args against the tool's schema, runs the tool and
// returns its result as indented JSON.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (string, error) {
	if err := d.reg.Validate(name, args); err != nil {
		return "", classify(err)
	}
	h, ok := d.handlers[name]
	if !ok {
		return "", notFoundf("unknown tool: %s", name)
	}

	v, err := h(ctx, mcprt.Args(args))
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s result: %w", name, err)
	}
	return string(out), nil
}

// classify maps registry validation failures to error kinds.
func classify(err error) error {
	if errors.Is(err, mcprt.ErrToolNotFound) {
		return &Error{Kind: MethodNotFound, Msg: err.Error()}
	}
	var verr *mcprt.ValidationError
	if errors.As(err, &verr) {
		return &Error{Kind: InvalidRequest, Msg: verr.Error()}
	}
	return err
}

// --- users ---

func (d *Dispatcher) getUsers(ctx context.Context, args mcprt.Args) (any, error) {
	return d.data.Users, nil
}

func (d *Dispatcher) getUserByID(ctx context.Context, args mcprt.Args) (any, error) {
	id := args.Float("id")
	if id == math.Trunc(id) {
		if u, ok := d.data.UserByID(int(id)); ok {
			return u, nil
		}
	}
	return nil, invalidf("user id %v not found", id)
}

func (d *Dispatcher) getServerStats(ctx context.Context, args mcprt.Args) (any, error) {
	return d.data.Stats(d.now()), nil
}

type calculation struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Result    float64 `json:"result"`
}

func (d *Dispatcher) calculate(ctx context.Context, args mcprt.Args) (any, error) {
	c := calculation{
		Operation: args.String("operation"),
		A:         args.Float("a"),
		B:         args.Float("b"),
	}
	switch c.Operation {
	case "add":
		c.Result = c.A + c.B
	case "subtract":
		c.Result = c.A - c.B
	case "multiply":
		c.Result = c.A * c.B
	case "divide":
		if c.B == 0 {
			return nil, invalidf("division by zero")
		}
		c.Result = c.A / c.B
	default:
		return nil, invalidf("unknown operation %q", c.Operation)
	}
	if math.IsInf(c.Result, 0) || math.IsNaN(c.Result) {
		return nil, invalidf("%s result is not a finite number", c.Operation)
	}
	return c, nil
}

// --- analysis ---

func (d *Dispatcher) pyrightCheck(ctx context.Context, args mcprt.Args) (any, error) {
	if d.runner == nil {
		return nil, invalidf("static analysis is not configured")
	}
	rep, err := d.runner.Check(ctx, args.String("targetPath"), args.String("configPath"), args.String("pythonVersion"))
	if errors.Is(err, analysis.ErrOutsideRoot) {
		return nil, invalidf("%v", err)
	}
	return rep, err
}
