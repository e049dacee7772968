// Package mockdata holds the static read-only records served by the lookup tools.
package mockdata

import "time"

// Store is a set of fixtures. Lookups never mutate it.
type Store struct {
	Users     []User
	Customers []Customer
	Products  []Product
	Inventory []StockLevel
	Orders    []Order
	Invoices  []Invoice
	Version   string
}

type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type Stats struct {
	TotalUsers int    `json:"totalUsers"`
	Version    string `json:"version"`
	ServerTime string `json:"serverTime"`
}

// Default returns the built-in fixture set.
func Default() *Store {
	return &Store{
		Version:   "1.0.0",
		Users:     defaultUsers(),
		Customers: defaultCustomers(),
		Products:  defaultProducts(),
		Inventory: defaultInventory(),
		Orders:    defaultOrders(),
		Invoices:  defaultInvoices(),
	}
}

func defaultUsers() []User {
	return []User{
		{ID: 1, Name: "Ahmet", Role: "developer"},
		{ID: 2, Name: "Mehmet", Role: "designer"},
		{ID: 3, Name: "Ayse", Role: "manager"},
	}
}

func (s *Store) UserByID(id int) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// Stats reports the user count with now as the server time.
func (s *Store) Stats(now time.Time) Stats {
	return Stats{
		TotalUsers: len(s.Users),
		Version:    s.Version,
		ServerTime: now.UTC().Format(time.RFC3339Nano),
	}
}

// filter returns the items keep accepts, never nil.
func filter[T any](items []T, keep func(T) bool) []T {
	out := []T{}
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// match is an exact-match constraint where an empty want means no constraint.
func match(want, got string) bool {
	return want == "" || want == got
}
