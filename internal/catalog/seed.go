package catalog

import (
	"context"
	"fmt"
	"time"
)

// Seed loads a small demonstration dataset. It is idempotent: a catalog that
// already has employees is left untouched.
func (c *Catalog) Seed(ctx context.Context) error {
	var n int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM employees").Scan(&n); err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	employees := []Employee{
		{Name: "Marco Rinaldi", Role: "chef", Shift: "evening", HireDate: "2019-03-12", PerformanceScore: 4.8, OrdersHandled: 3120},
		{Name: "Lena Koval", Role: "chef", Shift: "morning", HireDate: "2021-07-01", PerformanceScore: 4.5, OrdersHandled: 2210},
		{Name: "Tom Avery", Role: "server", Shift: "evening", HireDate: "2022-01-20", PerformanceScore: 4.1, OrdersHandled: 4870},
		{Name: "Priya Nair", Role: "server", Shift: "morning", HireDate: "2020-11-05", PerformanceScore: 4.6, OrdersHandled: 5390},
		{Name: "Diego Fuentes", Role: "bartender", Shift: "evening", HireDate: "2023-04-18", PerformanceScore: 3.9, OrdersHandled: 1480},
		{Name: "Sofia Greco", Role: "host", Shift: "evening", HireDate: "2022-09-02", PerformanceScore: 4.3, OrdersHandled: 0},
	}
	for _, e := range employees {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO employees (name, role, shift, hire_date, performance_score, orders_handled) VALUES (?, ?, ?, ?, ?, ?)",
			e.Name, e.Role, e.Shift, e.HireDate, e.PerformanceScore, e.OrdersHandled); err != nil {
			return fmt.Errorf("seed employees: %w", err)
		}
	}

	inventory := []InventoryItem{
		{Item: "San Marzano tomatoes", Category: "produce", Quantity: 18, Unit: "kg", ReorderLevel: 10, Location: "dry storage"},
		{Item: "Mozzarella di bufala", Category: "dairy", Quantity: 4, Unit: "kg", ReorderLevel: 6, Location: "walk-in"},
		{Item: "Arborio rice", Category: "dry goods", Quantity: 22, Unit: "kg", ReorderLevel: 8, Location: "dry storage"},
		{Item: "Olive oil (extra virgin)", Category: "pantry", Quantity: 9, Unit: "l", ReorderLevel: 5, Location: "dry storage"},
		{Item: "Fresh basil", Category: "produce", Quantity: 0.8, Unit: "kg", ReorderLevel: 1, Location: "walk-in"},
		{Item: "Parmigiano Reggiano", Category: "dairy", Quantity: 7, Unit: "kg", ReorderLevel: 3, Location: "walk-in"},
		{Item: "00 flour", Category: "dry goods", Quantity: 35, Unit: "kg", ReorderLevel: 15, Location: "dry storage"},
		{Item: "Guanciale", Category: "meat", Quantity: 2, Unit: "kg", ReorderLevel: 3, Location: "walk-in"},
	}
	for _, it := range inventory {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO inventory (item, category, quantity, unit, reorder_level, location) VALUES (?, ?, ?, ?, ?, ?)",
			it.Item, it.Category, it.Quantity, it.Unit, it.ReorderLevel, it.Location); err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}
	}

	recipes := []Recipe{
		{Name: "Margherita Pizza", Cuisine: "italian", PrepMinutes: 25, Difficulty: "easy",
			Ingredients: "00 flour, San Marzano tomatoes, mozzarella di bufala, fresh basil, olive oil",
			Directions:  "Stretch the dough, sauce lightly, top with torn mozzarella, bake at 450C for 90 seconds, finish with basil and oil."},
		{Name: "Risotto ai Funghi", Cuisine: "italian", PrepMinutes: 40, Difficulty: "medium",
			Ingredients: "arborio rice, porcini mushrooms, white wine, parmigiano, butter",
			Directions:  "Toast the rice, deglaze with wine, ladle stock gradually, fold in mushrooms and mantecare with butter and parmigiano."},
		{Name: "Spaghetti Carbonara", Cuisine: "italian", PrepMinutes: 20, Difficulty: "medium",
			Ingredients: "spaghetti, guanciale, eggs, pecorino, black pepper",
			Directions:  "Render the guanciale, emulsify egg and pecorino off heat, toss with pasta water until glossy."},
		{Name: "Tiramisu", Cuisine: "italian", PrepMinutes: 30, Difficulty: "easy",
			Ingredients: "mascarpone, espresso, savoiardi, eggs, cocoa",
			Directions:  "Whip mascarpone with yolks and sugar, dip savoiardi in espresso, layer, chill four hours, dust with cocoa."},
		{Name: "Grilled Sea Bass", Cuisine: "mediterranean", PrepMinutes: 35, Difficulty: "hard",
			Ingredients: "sea bass, lemon, capers, olive oil, parsley",
			Directions:  "Score the skin, grill over high heat, rest, dress with lemon-caper vinaigrette."},
	}
	for _, r := range recipes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO recipes (name, cuisine, prep_minutes, difficulty, ingredients, directions) VALUES (?, ?, ?, ?, ?, ?)",
			r.Name, r.Cuisine, r.PrepMinutes, r.Difficulty, r.Ingredients, r.Directions); err != nil {
			return fmt.Errorf("seed recipes: %w", err)
		}
	}

	today := time.Now().Format("2006-01-02")
	menu := []MenuItem{
		{Name: "Margherita Pizza", Category: "main", Price: 14.50, Dietary: "vegetarian", Description: "Wood-fired, buffalo mozzarella, basil.", Available: true, MenuDate: today, Location: "main dining"},
		{Name: "Risotto ai Funghi", Category: "main", Price: 18.00, Dietary: "vegetarian, gluten-free", Description: "Porcini risotto finished with parmigiano.", Available: true, MenuDate: today, Location: "main dining"},
		{Name: "Spaghetti Carbonara", Category: "main", Price: 16.00, Dietary: "", Description: "Guanciale, pecorino, cracked pepper.", Available: true, MenuDate: today, Location: "main dining"},
		{Name: "Grilled Sea Bass", Category: "main", Price: 26.00, Dietary: "gluten-free, dairy-free", Description: "Whole sea bass, lemon-caper vinaigrette.", Available: true, MenuDate: today, Location: "terrace"},
		{Name: "Burrata e Pomodori", Category: "starter", Price: 12.00, Dietary: "vegetarian, gluten-free", Description: "Creamy burrata with heirloom tomatoes.", Available: true, MenuDate: today, Location: "main dining"},
		{Name: "Garden Salad", Category: "starter", Price: 9.00, Dietary: "vegan, gluten-free", Description: "Seasonal leaves, citrus dressing.", Available: true, MenuDate: today, Location: "terrace"},
		{Name: "Tiramisu", Category: "dessert", Price: 8.50, Dietary: "vegetarian", Description: "House-made, dusted with cocoa.", Available: true, MenuDate: today, Location: "main dining"},
		{Name: "Sorbetto al Limone", Category: "dessert", Price: 6.00, Dietary: "vegan, gluten-free", Description: "Amalfi lemon sorbet.", Available: true, MenuDate: today, Location: "terrace"},
		{Name: "Truffle Tagliatelle", Category: "main", Price: 24.00, Dietary: "vegetarian", Description: "Off-season special.", Available: false, MenuDate: today, Location: "main dining"},
	}
	for _, m := range menu {
		avail := 0
		if m.Available {
			avail = 1
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO menu_items (name, category, price, dietary, description, available, menu_date, location) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			m.Name, m.Category, m.Price, m.Dietary, m.Description, avail, m.MenuDate, m.Location); err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}
	}

	return tx.Commit()
}
