package builder

import "testing"

func TestSQLBuilder(t *testing.T) {
	t.Run("Select", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("id", "order_number").From("orders").Where("id = ?", int64(7)).Build()
		expected := "SELECT id, order_number FROM orders WHERE id = $1"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 1 || args[0] != int64(7) {
			t.Errorf("expected args [7], got %v", args)
		}
	})

	t.Run("MultipleConditions", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("part_number").
			From("order_parts").
			Where("order_id = ?", int64(1)).
			Where("quantity > ?", 0).
			OrderBy("part_number ASC").
			Limit(5).
			Build()
		expected := "SELECT part_number FROM order_parts WHERE order_id = $1 AND quantity > $2 ORDER BY part_number ASC LIMIT 5"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 {
			t.Errorf("expected 2 args, got %v", args)
		}
	})

	t.Run("Insert", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Insert("export_history", "order_id", "export_type", "filename").
			Values(int64(1), "single", "PO_Request_Acme_PO_1001_2026-01-02.xlsx").
			Build()
		expected := "INSERT INTO export_history (order_id, export_type, filename) VALUES ($1, $2, $3)"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 3 {
			t.Errorf("expected 3 args, got %v", args)
		}
	})
}
