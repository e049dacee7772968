package tools

import (
	"context"

	"github.com/hazyhaar/toolhost/internal/mockdata"
	"github.com/hazyhaar/toolhost/pkg/mcprt"
)

func (d *Dispatcher) listCustomers(ctx context.Context, args mcprt.Args) (any, error) {
	return d.data.ListCustomers(mockdata.CustomerFilter{
		Status:  args.String("status"),
		Tier:    args.String("tier"),
		Country: args.String("country"),
	}), nil
}

func (d *Dispatcher) getCustomer(ctx context.Context, args mcprt.Args) (any, error) {
	id := args.String("id")
	c, ok := d.data.CustomerByID(id)
	if !ok {
		return nil, invalidf("customer %s not found", id)
	}
	return c, nil
}

func (d *Dispatcher) listProducts(ctx context.Context, args mcprt.Args) (any, error) {
	return d.data.ListProducts(args.String("category")), nil
}

func (d *Dispatcher) getProduct(ctx context.Context, args mcprt.Args) (any, error) {
	sku := args.String("sku")
	p, ok := d.data.ProductBySKU(sku)
	if !ok {
		return nil, invalidf("product %s not found", sku)
	}
	return p, nil
}

func (d *Dispatcher) checkInventory(ctx context.Context, args mcprt.Args) (any, error) {
	return d.data.StockLevels(args.String("sku"), args.String("warehouse")), nil
}

func (d *Dispatcher) listOrders(ctx context.Context, args mcprt.Args) (any, error) {
	return d.data.ListOrders(mockdata.OrderFilter{
		Status:     args.String("status"),
		CustomerID: args.String("customer_id"),
	}), nil
}

func (d *Dispatcher) getOrder(ctx context.Context, args mcprt.Args) (any, error) {
	id := args.String("id")
	o, ok := d.data.OrderByID(id)
	if !ok {
		return nil, invalidf("order %s not found", id)
	}
	return o, nil
}

func (d *Dispatcher) listInvoices(ctx context.Context, args mcprt.Args) (any, error) {
	return d.data.ListInvoices(mockdata.InvoiceFilter{
		Status:     args.String("status"),
		CustomerID: args.String("customer_id"),
	}), nil
}

func (d *Dispatcher) getInvoice(ctx context.Context, args mcprt.Args) (any, error) {
	id := args.String("id")
	inv, ok := d.data.InvoiceByID(id)
	if !ok {
		return nil, invalidf("invoice %s not found", id)
	}
	return inv, nil
}
