package services

import (
	"errors"
	"testing"
	"time"

	"portside_pos_backend/internal/events"
	"portside_pos_backend/internal/models"
)

func line(name string) models.CartLine { return models.CartLine{Name: name, Price: dec("1")} }

func TestBuildTickets(t *testing.T) {
	now := testNow
	orders := []models.Order{
		{ID: "102", Timestamp: now.Add(-2 * time.Minute).UnixMilli(), Items: []models.CartLine{line("Coke")}},
		{ID: "101", Timestamp: now.Add(-16 * time.Minute).UnixMilli(), Items: []models.CartLine{line("Burger"), line("Coke"), line("Burger")}},
		{ID: "103", Timestamp: now.Add(-15 * time.Minute).UnixMilli(), Items: nil},
	}

	tickets := BuildTickets(orders, now)
	if len(tickets) != 3 {
		t.Fatalf("got %d tickets", len(tickets))
	}
	if tickets[0].OrderID != "101" || tickets[1].OrderID != "103" || tickets[2].OrderID != "102" {
		t.Errorf("tickets not oldest first: %s %s %s", tickets[0].OrderID, tickets[1].OrderID, tickets[2].OrderID)
	}

	first := tickets[0]
	if first.ElapsedMinutes != 16 || !first.Late {
		t.Errorf("ticket 101 elapsed=%d late=%v", first.ElapsedMinutes, first.Late)
	}
	want := []models.TicketLine{{Name: "Burger", Quantity: 2}, {Name: "Coke", Quantity: 1}}
	if len(first.Lines) != 2 || first.Lines[0] != want[0] || first.Lines[1] != want[1] {
		t.Errorf("lines = %+v, want %+v", first.Lines, want)
	}
	if tickets[1].Late || tickets[1].ElapsedMinutes != 15 {
		t.Errorf("15 minutes must not be late: %+v", tickets[1])
	}
	if len(tickets[1].Lines) != 0 {
		t.Errorf("empty order has lines: %+v", tickets[1].Lines)
	}
}

func TestBuildTicketsStableForEqualTimestamps(t *testing.T) {
	orders := []models.Order{{ID: "a", Timestamp: 5}, {ID: "b", Timestamp: 5}, {ID: "c", Timestamp: 1}}
	tickets := BuildTickets(orders, testNow)
	if tickets[0].OrderID != "c" || tickets[1].OrderID != "a" || tickets[2].OrderID != "b" {
		t.Errorf("order = %s %s %s", tickets[0].OrderID, tickets[1].OrderID, tickets[2].OrderID)
	}
}

func TestCompleteByTimestamp(t *testing.T) {
	f := newFixture(t)
	for _, o := range []models.Order{
		{ID: "1", Timestamp: 1000, Items: []models.CartLine{line("Coke")}},
		{ID: "2", Timestamp: 1001, Items: []models.CartLine{line("Coke")}},
		{ID: "3", Timestamp: 1000, Items: []models.CartLine{line("Fries")}},
	} {
		if err := f.orders.AppendActive(f.store, o); err != nil {
			t.Fatal(err)
		}
		if err := f.orders.AppendHistory(f.store, o); err != nil {
			t.Fatal(err)
		}
	}

	kitchen := f.kitchen()
	n, err := kitchen.CompleteByTimestamp(1000)
	if err != nil {
		t.Fatalf("CompleteByTimestamp() error = %v", err)
	}
	if n != 2 {
		t.Errorf("removed %d, want 2", n)
	}
	active, _ := f.orders.ListActive(f.store)
	if len(active) != 1 || active[0].Timestamp != 1001 {
		t.Fatalf("remaining = %+v", active)
	}
	history, _ := f.orders.ListHistory(f.store)
	if len(history) != 3 {
		t.Errorf("history changed: %d", len(history))
	}

	if n, _ := kitchen.CompleteByTimestamp(42); n != 0 {
		t.Errorf("unknown timestamp removed %d", n)
	}
	if got := len(f.recorder.Events()); got != 2 {
		t.Errorf("published %d events, want 2", got)
	}
}

func TestCompleteByRef(t *testing.T) {
	f := newFixture(t)
	reg := f.register()
	reg.AddLine(server, 21)
	first, _ := reg.Checkout(server, CheckoutRequest{})
	reg.AddLine(server, 22)
	second, _ := reg.Checkout(server, CheckoutRequest{})

	kitchen := f.kitchen()
	done, err := kitchen.CompleteByRef(first.Ref)
	if err != nil {
		t.Fatalf("CompleteByRef() error = %v", err)
	}
	if done.Ref != first.Ref {
		t.Errorf("completed %q", done.Ref)
	}

	tickets, _ := kitchen.Tickets()
	if len(tickets) != 1 || tickets[0].Ref != second.Ref {
		t.Fatalf("tickets = %+v", tickets)
	}
	if _, err := kitchen.CompleteByRef(first.Ref); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("second completion error = %v", err)
	}

	evs := f.recorder.Events()
	if evs[len(evs)-1].RoutingKey != events.OrderCompleted {
		t.Errorf("last event = %s", evs[len(evs)-1].RoutingKey)
	}
}

func TestKitchenBoardSubscribe(t *testing.T) {
	f := newFixture(t)
	reg := f.register()
	reg.AddLine(server, 21)
	if _, err := reg.Checkout(server, CheckoutRequest{}); err != nil {
		t.Fatal(err)
	}

	board := NewKitchenBoard(f.kitchen(), time.Second, time.UTC)
	board.now = func() time.Time { return testNow.Add(20 * time.Minute) }

	ch, unsubscribe := board.Subscribe()
	initial := <-ch
	if len(initial.Tickets) != 0 {
		t.Fatalf("board has tickets before first poll: %+v", initial.Tickets)
	}

	board.Refresh()
	snap := <-ch
	if len(snap.Tickets) != 1 || !snap.Tickets[0].Late || snap.Tickets[0].ElapsedMinutes != 20 {
		t.Fatalf("snapshot = %+v", snap.Tickets)
	}

	unsubscribe()
	unsubscribe()
	if _, open := <-ch; open {
		t.Error("channel still open after unsubscribe")
	}
}
