// Package catalog is the restaurant's operational database: staff, storage
// inventory, recipes, and the daily menu. It backs every data-lookup tool.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Employee is one staff record.
type Employee struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Role             string  `json:"role"`
	Shift            string  `json:"shift"`
	HireDate         string  `json:"hire_date"`
	PerformanceScore float64 `json:"performance_score"`
	OrdersHandled    int     `json:"orders_handled"`
}

// InventoryItem is one storage line.
type InventoryItem struct {
	ID           int64   `json:"id"`
	Item         string  `json:"item"`
	Category     string  `json:"category"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	ReorderLevel float64 `json:"reorder_level"`
	Location     string  `json:"location"`
}

// Recipe is one kitchen recipe. Ingredients are a comma-separated list.
type Recipe struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Cuisine     string `json:"cuisine"`
	PrepMinutes int    `json:"prep_minutes"`
	Difficulty  string `json:"difficulty"`
	Ingredients string `json:"ingredients"`
	Directions  string `json:"directions,omitempty"`
}

// MenuItem is one dish on the published menu.
type MenuItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Dietary     string  `json:"dietary,omitempty"`
	Description string  `json:"description,omitempty"`
	Available   bool    `json:"available"`
	MenuDate    string  `json:"menu_date"`
	Location    string  `json:"location"`
}

// MenuFilter scopes a daily-menu lookup. Zero values mean "don't filter".
type MenuFilter struct {
	Date     string
	Location string
	Category string
	Dietary  string
	MinPrice float64
	MaxPrice float64
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS employees (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	name              TEXT NOT NULL,
	role              TEXT NOT NULL,
	shift             TEXT NOT NULL,
	hire_date         TEXT NOT NULL,
	performance_score REAL DEFAULT 0,
	orders_handled    INTEGER DEFAULT 0
);
CREATE TABLE IF NOT EXISTS inventory (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	item          TEXT NOT NULL,
	category      TEXT NOT NULL,
	quantity      REAL NOT NULL,
	unit          TEXT NOT NULL,
	reorder_level REAL NOT NULL,
	location      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS recipes (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL,
	cuisine      TEXT NOT NULL,
	prep_minutes INTEGER NOT NULL,
	difficulty   TEXT NOT NULL,
	ingredients  TEXT NOT NULL,
	directions   TEXT DEFAULT ''
);
CREATE TABLE IF NOT EXISTS menu_items (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL,
	price       REAL NOT NULL,
	dietary     TEXT DEFAULT '',
	description TEXT DEFAULT '',
	available   INTEGER DEFAULT 1,
	menu_date   TEXT NOT NULL,
	location    TEXT NOT NULL
);`

// Catalog wraps the operational database. Safe for concurrent reads.
type Catalog struct {
	db *sql.DB
}

// Open creates or opens the catalog database at path.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return nil, errors.New("empty catalog path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the underlying database.
func (c *Catalog) Close() error { return c.db.Close() }

const defaultLimit = 25

// QueryEmployees lists staff, optionally filtered by role and/or shift.
func (c *Catalog) QueryEmployees(ctx context.Context, role, shift string) ([]Employee, error) {
	q := "SELECT id, name, role, shift, hire_date, performance_score, orders_handled FROM employees"
	var conds []string
	var args []any
	if role != "" {
		conds = append(conds, "LOWER(role) = LOWER(?)")
		args = append(args, role)
	}
	if shift != "" {
		conds = append(conds, "LOWER(shift) = LOWER(?)")
		args = append(args, shift)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY name LIMIT ?"
	args = append(args, defaultLimit)

	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Role, &e.Shift, &e.HireDate, &e.PerformanceScore, &e.OrdersHandled); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EmployeePerformance returns performance records, for one named employee or
// for everyone when name is empty, best performers first.
func (c *Catalog) EmployeePerformance(ctx context.Context, name string) ([]Employee, error) {
	q := "SELECT id, name, role, shift, hire_date, performance_score, orders_handled FROM employees"
	var args []any
	if name != "" {
		q += " WHERE LOWER(name) LIKE LOWER(?)"
		args = append(args, "%"+name+"%")
	}
	q += " ORDER BY performance_score DESC LIMIT ?"
	args = append(args, defaultLimit)

	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query performance: %w", err)
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Role, &e.Shift, &e.HireDate, &e.PerformanceScore, &e.OrdersHandled); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// QueryInventory lists storage lines, optionally filtered by category and/or
// storage location.
func (c *Catalog) QueryInventory(ctx context.Context, category, location string) ([]InventoryItem, error) {
	q := "SELECT id, item, category, quantity, unit, reorder_level, location FROM inventory"
	var conds []string
	var args []any
	if category != "" {
		conds = append(conds, "LOWER(category) = LOWER(?)")
		args = append(args, category)
	}
	if location != "" {
		conds = append(conds, "LOWER(location) = LOWER(?)")
		args = append(args, location)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY item LIMIT ?"
	args = append(args, defaultLimit)
	return c.scanInventory(ctx, q, args...)
}

// LowStockAlerts returns lines at or below their reorder level, most
// depleted first.
func (c *Catalog) LowStockAlerts(ctx context.Context) ([]InventoryItem, error) {
	q := `SELECT id, item, category, quantity, unit, reorder_level, location
		FROM inventory WHERE quantity <= reorder_level
		ORDER BY quantity / reorder_level LIMIT ?`
	return c.scanInventory(ctx, q, defaultLimit)
}

func (c *Catalog) scanInventory(ctx context.Context, q string, args ...any) ([]InventoryItem, error) {
	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	var out []InventoryItem
	for rows.Next() {
		var it InventoryItem
		if err := rows.Scan(&it.ID, &it.Item, &it.Category, &it.Quantity, &it.Unit, &it.ReorderLevel, &it.Location); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// QueryRecipes lists recipes, optionally filtered by cuisine and a prep-time
// ceiling in minutes. Directions are omitted from list results.
func (c *Catalog) QueryRecipes(ctx context.Context, cuisine string, maxPrepMinutes int) ([]Recipe, error) {
	q := "SELECT id, name, cuisine, prep_minutes, difficulty, ingredients FROM recipes"
	var conds []string
	var args []any
	if cuisine != "" {
		conds = append(conds, "LOWER(cuisine) = LOWER(?)")
		args = append(args, cuisine)
	}
	if maxPrepMinutes > 0 {
		conds = append(conds, "prep_minutes <= ?")
		args = append(args, maxPrepMinutes)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY name LIMIT ?"
	args = append(args, defaultLimit)

	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var out []Recipe
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(&r.ID, &r.Name, &r.Cuisine, &r.PrepMinutes, &r.Difficulty, &r.Ingredients); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecipeDetails fetches one recipe by id, or by name match when id is zero.
// Returns (nil, nil) when nothing matches.
func (c *Catalog) RecipeDetails(ctx context.Context, id int64, dishName string) (*Recipe, error) {
	q := "SELECT id, name, cuisine, prep_minutes, difficulty, ingredients, directions FROM recipes WHERE "
	var arg any
	if id > 0 {
		q += "id = ?"
		arg = id
	} else {
		q += "LOWER(name) LIKE LOWER(?)"
		arg = "%" + dishName + "%"
	}
	var r Recipe
	err := c.db.QueryRowContext(ctx, q, arg).
		Scan(&r.ID, &r.Name, &r.Cuisine, &r.PrepMinutes, &r.Difficulty, &r.Ingredients, &r.Directions)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("recipe details: %w", err)
	}
	return &r, nil
}

// QueryMenu lists available menu items matching the filter.
func (c *Catalog) QueryMenu(ctx context.Context, f MenuFilter) ([]MenuItem, error) {
	q := "SELECT id, name, category, price, dietary, description, available, menu_date, location FROM menu_items WHERE available = 1"
	var args []any
	if f.Date != "" {
		q += " AND menu_date = ?"
		args = append(args, f.Date)
	}
	if f.Location != "" {
		q += " AND LOWER(location) = LOWER(?)"
		args = append(args, f.Location)
	}
	if f.Category != "" {
		q += " AND LOWER(category) = LOWER(?)"
		args = append(args, f.Category)
	}
	if f.Dietary != "" {
		q += " AND LOWER(dietary) LIKE LOWER(?)"
		args = append(args, "%"+f.Dietary+"%")
	}
	if f.MinPrice > 0 {
		q += " AND price >= ?"
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q += " AND price <= ?"
		args = append(args, f.MaxPrice)
	}
	q += " ORDER BY category, name LIMIT ?"
	args = append(args, defaultLimit)

	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	defer rows.Close()

	var out []MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MenuItemDetails fetches one dish by id, or by name match when id is zero.
// Returns (nil, nil) when nothing matches.
func (c *Catalog) MenuItemDetails(ctx context.Context, id int64, dishName string) (*MenuItem, error) {
	q := "SELECT id, name, category, price, dietary, description, available, menu_date, location FROM menu_items WHERE "
	var arg any
	if id > 0 {
		q += "id = ?"
		arg = id
	} else {
		q += "LOWER(name) LIKE LOWER(?)"
		arg = "%" + dishName + "%"
	}
	row := c.db.QueryRowContext(ctx, q, arg)
	var m MenuItem
	var avail int
	err := row.Scan(&m.ID, &m.Name, &m.Category, &m.Price, &m.Dietary, &m.Description, &avail, &m.MenuDate, &m.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("menu item details: %w", err)
	}
	m.Available = avail != 0
	return &m, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(r rowScanner) (MenuItem, error) {
	var m MenuItem
	var avail int
	if err := r.Scan(&m.ID, &m.Name, &m.Category, &m.Price, &m.Dietary, &m.Description, &avail, &m.MenuDate, &m.Location); err != nil {
		return MenuItem{}, fmt.Errorf("scan menu item: %w", err)
	}
	m.Available = avail != 0
	return m, nil
}
