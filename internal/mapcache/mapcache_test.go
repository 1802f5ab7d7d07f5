package mapcache

import (
	"context"
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// TestOverrideRoundTrip verifies save, lookup and delete of a cached
// override.
func TestOverrideRoundTrip(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	got, err := c.LookupOverride(ctx, "weird pull")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("lookup before save = %q, want empty", got)
	}

	if err := c.SaveOverride(ctx, "weird pull", "Deadlift"); err != nil {
		t.Fatal(err)
	}
	got, err = c.LookupOverride(ctx, "weird pull")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Deadlift" {
		t.Errorf("lookup = %q, want Deadlift", got)
	}

	// Upsert replaces the previous canonical.
	if err := c.SaveOverride(ctx, "weird pull", "Romanian Deadlift"); err != nil {
		t.Fatal(err)
	}
	got, _ = c.LookupOverride(ctx, "weird pull")
	if got != "Romanian Deadlift" {
		t.Errorf("lookup after upsert = %q, want Romanian Deadlift", got)
	}

	if err := c.DeleteOverride(ctx, "weird pull"); err != nil {
		t.Fatal(err)
	}
	got, _ = c.LookupOverride(ctx, "weird pull")
	if got != "" {
		t.Errorf("lookup after delete = %q, want empty", got)
	}
}

// TestRecordUsageCounts verifies popularity counters accumulate and
// rank by count.
func TestRecordUsageCounts(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := c.RecordUsage(ctx, "squats", "Squat"); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.RecordUsage(ctx, "squats", "Front Squat"); err != nil {
		t.Fatal(err)
	}

	popular, err := c.PopularMappings(ctx, "squats", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(popular) != 2 {
		t.Fatalf("popular = %d entries, want 2", len(popular))
	}
	if popular[0].Canonical != "Squat" || popular[0].Count != 3 {
		t.Errorf("top = %+v, want Squat with count 3", popular[0])
	}
	if popular[1].Canonical != "Front Squat" || popular[1].Count != 1 {
		t.Errorf("second = %+v, want Front Squat with count 1", popular[1])
	}
}

// TestPopularMappingsUnknownName verifies an unseen name yields no rows
// and no error.
func TestPopularMappingsUnknownName(t *testing.T) {
	c := openTestCache(t)

	popular, err := c.PopularMappings(context.Background(), "nothing", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(popular) != 0 {
		t.Errorf("popular = %v, want empty", popular)
	}
}
