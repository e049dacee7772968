package tools

import "github.com/hazyhaar/toolhost/pkg/mcprt"

// Catalog returns every tool the server advertises, in listing order.
func Catalog() []mcprt.Tool {
	return []mcprt.Tool{
		// users
		{Name: "get_users", Description: "List all users"},
		{
			Name:        "get_user_by_id",
			Description: "Get a user by id",
			Params: []mcprt.Param{
				{Name: "id", Type: mcprt.TypeNumber, Required: true, Description: "User id"},
			},
		},
		{Name: "get_server_stats", Description: "Get server statistics"},
		{
			Name:        "calculate",
			Description: "Apply a basic arithmetic operation to two numbers",
			Params: []mcprt.Param{
				{Name: "operation", Type: mcprt.TypeString, Required: true, Description: "Operation",
					Enum: []string{"add", "subtract", "multiply", "divide"}},
				{Name: "a", Type: mcprt.TypeNumber, Required: true, Description: "First operand"},
				{Name: "b", Type: mcprt.TypeNumber, Required: true, Description: "Second operand"},
			},
		},

		// erp
		{
			Name:        "erp_list_customers",
			Description: "List customers, optionally filtered by status, tier and country",
			Params: []mcprt.Param{
				{Name: "status", Type: mcprt.TypeString, Description: "active or inactive"},
				{Name: "tier", Type: mcprt.TypeString, Description: "standard, gold or platinum"},
				{Name: "country", Type: mcprt.TypeString, Description: "ISO country code, e.g. TR"},
			},
		},
		{
			Name:        "erp_get_customer",
			Description: "Get a customer by id",
			Params: []mcprt.Param{
				{Name: "id", Type: mcprt.TypeString, Required: true, Description: "Customer id, e.g. C-1001"},
			},
		},
		{
			Name:        "erp_list_products",
			Description: "List products, optionally filtered by category",
			Params: []mcprt.Param{
				{Name: "category", Type: mcprt.TypeString, Description: "Product category"},
			},
		},
		{
			Name:        "erp_get_product",
			Description: "Get a product by SKU",
			Params: []mcprt.Param{
				{Name: "sku", Type: mcprt.TypeString, Required: true, Description: "Product SKU, e.g. SKU-100"},
			},
		},
		{
			Name:        "erp_check_inventory",
			Description: "Stock levels per warehouse, optionally filtered by SKU and warehouse",
			Params: []mcprt.Param{
				{Name: "sku", Type: mcprt.TypeString, Description: "Product SKU"},
				{Name: "warehouse", Type: mcprt.TypeString, Description: "Warehouse code, e.g. IST-1"},
			},
		},
		{
			Name:        "erp_list_orders",
			Description: "List sales orders, optionally filtered by status and customer",
			Params: []mcprt.Param{
				{Name: "status", Type: mcprt.TypeString, Description: "open, shipped, delivered or cancelled"},
				{Name: "customer_id", Type: mcprt.TypeString, Description: "Customer id"},
			},
		},
		{
			Name:        "erp_get_order",
			Description: "Get a sales order with its lines",
			Params: []mcprt.Param{
				{Name: "id", Type: mcprt.TypeString, Required: true, Description: "Order id, e.g. SO-5001"},
			},
		},
		{
			Name:        "erp_list_invoices",
			Description: "List invoices, optionally filtered by status and customer",
			Params: []mcprt.Param{
				{Name: "status", Type: mcprt.TypeString, Description: "paid, unpaid or overdue"},
				{Name: "customer_id", Type: mcprt.TypeString, Description: "Customer id"},
			},
		},
		{
			Name:        "erp_get_invoice",
			Description: "Get an invoice by id",
			Params: []mcprt.Param{
				{Name: "id", Type: mcprt.TypeString, Required: true, Description: "Invoice id, e.g. INV-9001"},
			},
		},

		// database
		{
			Name:        "db_create",
			Description: "Run a CREATE statement against the embedded database",
			Params: []mcprt.Param{
				{Name: "schema_sql", Type: mcprt.TypeString, Required: true, Description: "CREATE TABLE/INDEX/VIEW statement"},
			},
		},
		{
			Name:        "db_query",
			Description: "Run a read-only SELECT or WITH query",
			Params: []mcprt.Param{
				{Name: "sql", Type: mcprt.TypeString, Required: true, Description: "SELECT or WITH statement"},
				{Name: "params", Type: mcprt.TypeArray, Description: "Positional parameters for ? placeholders"},
			},
		},
		{
			Name:        "db_execute",
			Description: "Run an INSERT, UPDATE, DELETE or REPLACE statement",
			Params: []mcprt.Param{
				{Name: "sql", Type: mcprt.TypeString, Required: true, Description: "Data-modifying statement"},
				{Name: "params", Type: mcprt.TypeArray, Description: "Positional parameters for ? placeholders"},
			},
		},
		{Name: "db_list_tables", Description: "List user tables"},
		{
			Name:        "db_describe_table",
			Description: "Column information for a table",
			Params: []mcprt.Param{
				{Name: "table", Type: mcprt.TypeString, Required: true, Description: "Table name"},
			},
		},

		// analysis
		{
			Name:        "pyright_check",
			Description: "Run Pyright type checking for a project or folder. Returns JSON diagnostics (read-only).",
			Params: []mcprt.Param{
				{Name: "targetPath", Type: mcprt.TypeString, Required: true,
					Description: "Path to check, relative to the analysis root. Example: '.' or 'src'."},
				{Name: "configPath", Type: mcprt.TypeString,
					Description: "Optional path to pyrightconfig.json, relative to the analysis root."},
				{Name: "pythonVersion", Type: mcprt.TypeString, Description: "Optional python version, e.g. '3.11'."},
			},
		},
	}
}

// NewRegistry returns a registry holding Catalog.
func NewRegistry() *mcprt.Registry {
	reg := mcprt.NewRegistry()
	reg.MustRegister(Catalog()...)
	return reg
}
