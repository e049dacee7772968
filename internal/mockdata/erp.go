package mockdata

type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Status  string `json:"status"` // active, inactive
	Tier    string `json:"tier"`   // standard, gold, platinum
	Country string `json:"country"`
}

type Product struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	UnitPrice float64 `json:"unit_price"`
	Currency  string  `json:"currency"`
}

type StockLevel struct {
	SKU       string `json:"sku"`
	Warehouse string `json:"warehouse"`
	OnHand    int    `json:"on_hand"`
	Reserved  int    `json:"reserved"`
}

type OrderLine struct {
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Status     string      `json:"status"` // open, shipped, delivered, cancelled
	OrderDate  string      `json:"order_date"`
	Lines      []OrderLine `json:"lines"`
	Total      float64     `json:"total"`
}

type Invoice struct {
	ID         string  `json:"id"`
	OrderID    string  `json:"order_id"`
	CustomerID string  `json:"customer_id"`
	Status     string  `json:"status"` // paid, unpaid, overdue
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	DueDate    string  `json:"due_date"`
}

type CustomerFilter struct {
	Status  string
	Tier    string
	Country string
}

type OrderFilter struct {
	Status     string
	CustomerID string
}

type InvoiceFilter struct {
	Status     string
	CustomerID string
}

func (s *Store) ListCustomers(f CustomerFilter) []Customer {
	return filter(s.Customers, func(c Customer) bool {
		return match(f.Status, c.Status) && match(f.Tier, c.Tier) && match(f.Country, c.Country)
	})
}

func (s *Store) CustomerByID(id string) (Customer, bool) {
	for _, c := range s.Customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}

func (s *Store) ListProducts(category string) []Product {
	return filter(s.Products, func(p Product) bool { return match(category, p.Category) })
}

func (s *Store) ProductBySKU(sku string) (Product, bool) {
	for _, p := range s.Products {
		if p.SKU == sku {
			return p, true
		}
	}
	return Product{}, false
}

func (s *Store) StockLevels(sku, warehouse string) []StockLevel {
	return filter(s.Inventory, func(l StockLevel) bool {
		return match(sku, l.SKU) && match(warehouse, l.Warehouse)
	})
}

func (s *Store) ListOrders(f OrderFilter) []Order {
	return filter(s.Orders, func(o Order) bool {
		return match(f.Status, o.Status) && match(f.CustomerID, o.CustomerID)
	})
}

func (s *Store) OrderByID(id string) (Order, bool) {
	for _, o := range s.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

func (s *Store) ListInvoices(f InvoiceFilter) []Invoice {
	return filter(s.Invoices, func(i Invoice) bool {
		return match(f.Status, i.Status) && match(f.CustomerID, i.CustomerID)
	})
}

func (s *Store) InvoiceByID(id string) (Invoice, bool) {
	for _, i := range s.Invoices {
		if i.ID == id {
			return i, true
		}
	}
	return Invoice{}, false
}

func defaultCustomers() []Customer {
	return []Customer{
		{ID: "C-1001", Name: "Anadolu Tekstil A.S.", Email: "satinalma@anadolutekstil.example", Status: "active", Tier: "gold", Country: "TR"},
		{ID: "C-1002", Name: "Ege Gida Ltd.", Email: "info@egegida.example", Status: "active", Tier: "standard", Country: "TR"},
		{ID: "C-1003", Name: "Nordwind Logistik GmbH", Email: "einkauf@nordwind.example", Status: "active", Tier: "platinum", Country: "DE"},
		{ID: "C-1004", Name: "Marmara Insaat", Email: "muhasebe@marmara.example", Status: "inactive", Tier: "standard", Country: "TR"},
		{ID: "C-1005", Name: "Atlas Retail BV", Email: "orders@atlasretail.example", Status: "active", Tier: "gold", Country: "NL"},
	}
}

func defaultProducts() []Product {
	return []Product{
		{SKU: "SKU-100", Name: "Cotton fabric roll 50m", Category: "textiles", UnitPrice: 420.00, Currency: "EUR"},
		{SKU: "SKU-101", Name: "Polyester thread 5000m", Category: "textiles", UnitPrice: 18.50, Currency: "EUR"},
		{SKU: "SKU-200", Name: "Pallet wrap film", Category: "packaging", UnitPrice: 32.00, Currency: "EUR"},
		{SKU: "SKU-201", Name: "Corrugated box 60x40x40", Category: "packaging", UnitPrice: 1.20, Currency: "EUR"},
		{SKU: "SKU-300", Name: "Industrial sewing machine", Category: "machinery", UnitPrice: 2890.00, Currency: "EUR"},
	}
}

func defaultInventory() []StockLevel {
	return []StockLevel{
		{SKU: "SKU-100", Warehouse: "IST-1", OnHand: 120, Reserved: 30},
		{SKU: "SKU-100", Warehouse: "IZM-1", OnHand: 45, Reserved: 0},
		{SKU: "SKU-101", Warehouse: "IST-1", OnHand: 900, Reserved: 150},
		{SKU: "SKU-200", Warehouse: "IST-1", OnHand: 300, Reserved: 40},
		{SKU: "SKU-200", Warehouse: "HAM-1", OnHand: 80, Reserved: 80},
		{SKU: "SKU-201", Warehouse: "HAM-1", OnHand: 5000, Reserved: 1200},
		{SKU: "SKU-300", Warehouse: "IZM-1", OnHand: 4, Reserved: 1},
	}
}

func defaultOrders() []Order {
	return []Order{
		{
			ID: "SO-5001", CustomerID: "C-1001", Status: "open", OrderDate: "2024-03-02",
			Lines: []OrderLine{{SKU: "SKU-100", Quantity: 10, UnitPrice: 420.00}, {SKU: "SKU-101", Quantity: 40, UnitPrice: 18.50}},
			Total: 4940.00,
		},
		{
			ID: "SO-5002", CustomerID: "C-1003", Status: "shipped", OrderDate: "2024-03-05",
			Lines: []OrderLine{{SKU: "SKU-201", Quantity: 1000, UnitPrice: 1.20}, {SKU: "SKU-200", Quantity: 20, UnitPrice: 32.00}},
			Total: 1840.00,
		},
		{
			ID: "SO-5003", CustomerID: "C-1001", Status: "delivered", OrderDate: "2024-02-11",
			Lines: []OrderLine{{SKU: "SKU-300", Quantity: 1, UnitPrice: 2890.00}},
			Total: 2890.00,
		},
		{
			ID: "SO-5004", CustomerID: "C-1005", Status: "open", OrderDate: "2024-03-09",
			Lines: []OrderLine{{SKU: "SKU-200", Quantity: 60, UnitPrice: 32.00}},
			Total: 1920.00,
		},
		{
			ID: "SO-5005", CustomerID: "C-1002", Status: "cancelled", OrderDate: "2024-01-28",
			Lines: []OrderLine{{SKU: "SKU-201", Quantity: 200, UnitPrice: 1.20}},
			Total: 240.00,
		},
	}
}

func defaultInvoices() []Invoice {
	return []Invoice{
		{ID: "INV-9001", OrderID: "SO-5003", CustomerID: "C-1001", Status: "paid", Amount: 2890.00, Currency: "EUR", DueDate: "2024-03-12"},
		{ID: "INV-9002", OrderID: "SO-5002", CustomerID: "C-1003", Status: "unpaid", Amount: 1840.00, Currency: "EUR", DueDate: "2024-04-04"},
		{ID: "INV-9003", OrderID: "SO-5001", CustomerID: "C-1001", Status: "overdue", Amount: 4940.00, Currency: "EUR", DueDate: "2024-03-01"},
		{ID: "INV-9004", OrderID: "SO-5004", CustomerID: "C-1005", Status: "unpaid", Amount: 1920.00, Currency: "EUR", DueDate: "2024-04-08"},
	}
}
