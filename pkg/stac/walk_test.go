package stac

import (
	"context"
	"testing"
)

func TestWalkVisitsEveryContainerOnce(t *testing.T) {
	root, child, _, _ := buildTree(t)
	// A second path to the same child must not trigger a second visit.
	root.AddLink(NewResolvedLink(RelChild, child))

	var visited []string
	err := root.Walk(context.Background(), nil, func(cat Container, children []Container, items []*Item) error {
		visited = append(visited, cat.ID())
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{"root", "c1"}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}
}

func TestWalkPassesResolvedChildrenAndItems(t *testing.T) {
	root, _, _, _ := buildTree(t)

	counts := map[string]int{}
	err := root.Walk(context.Background(), nil, func(cat Container, children []Container, items []*Item) error {
		counts[cat.ID()] = len(children)*10 + len(items)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if counts["root"] != 11 {
		t.Errorf("root saw %d, want 1 child and 1 item", counts["root"])
	}
	if counts["c1"] != 1 {
		t.Errorf("c1 saw %d, want 0 children and 1 item", counts["c1"])
	}
}

func TestWalkStopsOnVisitError(t *testing.T) {
	root, _, _, _ := buildTree(t)

	sentinel := errNotFound("stop")
	calls := 0
	err := root.Walk(context.Background(), nil, func(Container, []Container, []*Item) error {
		calls++
		return sentinel
	})
	if err != sentinel {
		t.Errorf("Walk() error = %v, want the visit error", err)
	}
	if calls != 1 {
		t.Errorf("visit called %d times after error, want 1", calls)
	}
}

func TestWalkHonorsContext(t *testing.T) {
	root, _, _, _ := buildTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := root.Walk(ctx, nil, func(Container, []Container, []*Item) error {
		t.Error("visit called after cancellation")
		return nil
	})
	if err != context.Canceled {
		t.Errorf("Walk() error = %v, want context.Canceled", err)
	}
}

func TestMapItemsFanOut(t *testing.T) {
	root, _, _, _ := buildTree(t)
	ctx := context.Background()

	// Derive one extra item per source item, keeping the original.
	out, err := root.MapItems(ctx, nil, func(it *Item) ([]*Item, error) {
		derived := NewItem(it.ID() + "-preview")
		return []*Item{it, derived}, nil
	})
	if err != nil {
		t.Fatalf("MapItems() error = %v", err)
	}

	outItems, err := out.Items(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(outItems) != 2 {
		t.Fatalf("mapped root items = %d, want 2", len(outItems))
	}
	if outItems[0].ID() != "a" || outItems[1].ID() != "a-preview" {
		t.Errorf("mapped item order = %q, %q; want original then derived", outItems[0].ID(), outItems[1].ID())
	}

	// Derived items are wired into the copy's graph.
	derived := outItems[1]
	if derived.Root() != Object(out) {
		t.Error("derived item not rooted at the mapped copy")
	}
	if derived.Parent() != Object(out) {
		t.Error("derived item parent not set to its container")
	}
	if got, ok := cacheOf(out).GetByID("a-preview"); !ok || got != Object(derived) {
		t.Error("derived item missing from the copy's identity cache")
	}

	// The source graph is untouched.
	srcItems, err := root.Items(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(srcItems) != 1 || srcItems[0].ID() != "a" {
		t.Errorf("source items changed: %v", srcItems)
	}
}

func TestMapItemsDrop(t *testing.T) {
	root, _, _, _ := buildTree(t)
	ctx := context.Background()

	out, err := root.MapItems(ctx, nil, func(it *Item) ([]*Item, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("MapItems() error = %v", err)
	}

	outItems, err := out.Items(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(outItems) != 0 {
		t.Errorf("mapped items = %d, want 0 after dropping everything", len(outItems))
	}
	if _, ok := cacheOf(out).GetByID("a"); ok {
		t.Error("dropped item still registered in the copy's cache")
	}

	// Child containers survive an item-only rewrite.
	children, err := out.Children(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 1 {
		t.Errorf("mapped children = %d, want 1", len(children))
	}
}

func TestMapItemsReplaceKeepsID(t *testing.T) {
	root, _, _, _ := buildTree(t)
	ctx := context.Background()

	// A fresh replacement may reuse the replaced item's id.
	out, err := root.MapItems(ctx, nil, func(it *Item) ([]*Item, error) {
		repl := NewItem(it.ID())
		repl.Properties()["rewritten"] = true
		return []*Item{repl}, nil
	})
	if err != nil {
		t.Fatalf("MapItems() error = %v", err)
	}

	outItems, err := out.Items(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(outItems) != 1 || outItems[0].ID() != "a" {
		t.Fatalf("mapped items = %v", outItems)
	}
	if outItems[0].Properties()["rewritten"] != true {
		t.Error("replacement under the original id was not the rewritten item")
	}
	if got, ok := cacheOf(out).GetByID("a"); !ok || got != Object(outItems[0]) {
		t.Error("cache entry for the reused id does not point at the replacement")
	}
}

func TestMapItemsReplace(t *testing.T) {
	root, _, _, _ := buildTree(t)
	ctx := context.Background()

	out, err := root.MapItems(ctx, nil, func(it *Item) ([]*Item, error) {
		repl := NewItem(it.ID() + "-v2")
		repl.Properties()["derived_from"] = it.ID()
		return []*Item{repl}, nil
	})
	if err != nil {
		t.Fatalf("MapItems() error = %v", err)
	}

	outItems, err := out.Items(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(outItems) != 1 || outItems[0].ID() != "a-v2" {
		t.Fatalf("mapped items = %v", outItems)
	}
	if outItems[0].Properties()["derived_from"] != "a" {
		t.Error("replacement lost its derived properties")
	}

	// Nested containers are rewritten too.
	children, err := out.Children(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	nested, err := children[0].Items(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(nested) != 1 || nested[0].ID() != "scene-v2" {
		t.Errorf("nested mapped items = %v", nested)
	}
}
