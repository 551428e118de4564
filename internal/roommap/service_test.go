package roommap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/hearthd/hearth-core/internal/infrastructure/database"
	_ "github.com/hearthd/hearth-core/migrations"
)

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	db, err := database.Open(context.Background(), database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return NewRepository(db.DB)
}

func testService(t *testing.T) *Service {
	t.Helper()

	svc := NewService(testRepo(t))
	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return svc
}

func TestMapServiceRoom_Idempotent(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	first, err := svc.MapServiceRoom(ctx, "hue", "room-1", "Lounge")
	if err != nil {
		t.Fatalf("MapServiceRoom() error = %v", err)
	}
	if first == "" {
		t.Fatal("MapServiceRoom() returned empty home room id")
	}

	second, err := svc.MapServiceRoom(ctx, "hue", "room-1", "Different Name")
	if err != nil {
		t.Fatalf("repeat MapServiceRoom() error = %v", err)
	}
	if second != first {
		t.Errorf("repeat mapping returned %q, want %q", second, first)
	}

	// First write wins on the display name.
	name, ok := svc.GetRoomNameByID(first)
	if !ok || name != "Lounge" {
		t.Errorf("GetRoomNameByID() = (%q, %v), want (Lounge, true)", name, ok)
	}
}

func TestMapServiceRoom_DistinctRoomsDistinctIDs(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	a, err := svc.MapServiceRoom(ctx, "hue", "room-1", "Lounge")
	if err != nil {
		t.Fatalf("MapServiceRoom() error = %v", err)
	}
	b, err := svc.MapServiceRoom(ctx, "hue", "room-2", "Kitchen")
	if err != nil {
		t.Fatalf("MapServiceRoom() error = %v", err)
	}
	c, err := svc.MapServiceRoom(ctx, "sonos", "room-1", "Lounge")
	if err != nil {
		t.Fatalf("MapServiceRoom() error = %v", err)
	}

	if a == b || a == c || b == c {
		t.Errorf("distinct service rooms share a home room id: %q %q %q", a, b, c)
	}

	// Ids carry the full UUID after the prefix.
	for _, id := range []string{a, b, c} {
		if !strings.HasPrefix(id, "hr-") || len(id) != len("hr-")+36 {
			t.Errorf("home room id %q, want hr- prefix plus a full UUID", id)
		}
	}
}

func TestMapServiceRoom_ConcurrentConverges(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	const workers = 50
	ids := make([]string, workers)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			// Contend on one shared room while also mapping an
			// unrelated room, interleaving first-time mappings.
			id, err := svc.MapServiceRoom(ctx, "hue", "shared", "Lounge")
			if err != nil {
				t.Errorf("MapServiceRoom(shared) error = %v", err)
				return
			}
			ids[i] = id

			if _, err := svc.MapServiceRoom(ctx, "hue", fmt.Sprintf("solo-%d", i), "Spare"); err != nil {
				t.Errorf("MapServiceRoom(solo-%d) error = %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("concurrent mappings diverged: ids[%d] = %q, ids[0] = %q", i, ids[i], ids[0])
		}
	}
}

func TestMapServiceRoom_Validation(t *testing.T) {
	svc := testService(t)

	if _, err := svc.MapServiceRoom(context.Background(), "", "room-1", "Lounge"); err == nil {
		t.Error("MapServiceRoom() with empty service id did not error")
	}
	if _, err := svc.MapServiceRoom(context.Background(), "hue", "", "Lounge"); err == nil {
		t.Error("MapServiceRoom() with empty room id did not error")
	}
}

func TestGetHomeRoomID_Unmapped(t *testing.T) {
	svc := testService(t)

	if id, ok := svc.GetHomeRoomID("hue", "ghost"); ok {
		t.Errorf("GetHomeRoomID(unmapped) = (%q, true), want not found", id)
	}
}

func TestGetServiceRoomIDs(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	a, _ := svc.MapServiceRoom(ctx, "hue", "room-1", "Lounge")
	if err := svc.MergeRooms(ctx, []ServiceRoomRef{
		{ServiceID: "sonos", ServiceRoomID: "zone-9"},
	}, a); err != nil {
		t.Fatalf("MergeRooms() error = %v", err)
	}

	refs := svc.GetServiceRoomIDs(a)
	if len(refs) != 2 {
		t.Fatalf("GetServiceRoomIDs() returned %d refs, want 2", len(refs))
	}
	seen := make(map[string]bool)
	for _, r := range refs {
		seen[r.Key()] = true
	}
	if !seen["hue:room-1"] || !seen["sonos:zone-9"] {
		t.Errorf("GetServiceRoomIDs() = %v, missing expected members", refs)
	}

	if got := svc.GetServiceRoomIDs("hr-unknown"); len(got) != 0 {
		t.Errorf("GetServiceRoomIDs(unknown) = %v, want empty", got)
	}
}

func TestMergeRooms_Converges(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	svc.MapServiceRoom(ctx, "hue", "room-1", "Lounge")      //nolint:errcheck
	svc.MapServiceRoom(ctx, "sonos", "zone-2", "Living Rm") //nolint:errcheck
	target, _ := svc.MapServiceRoom(ctx, "heat", "z1", "Living Room")

	err := svc.MergeRooms(ctx, []ServiceRoomRef{
		{ServiceID: "hue", ServiceRoomID: "room-1"},
		{ServiceID: "sonos", ServiceRoomID: "zone-2"},
	}, target)
	if err != nil {
		t.Fatalf("MergeRooms() error = %v", err)
	}

	for _, ref := range []ServiceRoomRef{
		{ServiceID: "hue", ServiceRoomID: "room-1"},
		{ServiceID: "sonos", ServiceRoomID: "zone-2"},
		{ServiceID: "heat", ServiceRoomID: "z1"},
	} {
		got, ok := svc.GetHomeRoomID(ref.ServiceID, ref.ServiceRoomID)
		if !ok || got != target {
			t.Errorf("GetHomeRoomID(%s) = (%q, %v), want (%q, true)", ref.Key(), got, ok, target)
		}
	}
}

func TestMergeRooms_OrphanPreserved(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	orphan, _ := svc.MapServiceRoom(ctx, "hue", "room-1", "Lounge")
	target, _ := svc.MapServiceRoom(ctx, "sonos", "zone-2", "Living Room")

	if err := svc.MergeRooms(ctx, []ServiceRoomRef{
		{ServiceID: "hue", ServiceRoomID: "room-1"},
	}, target); err != nil {
		t.Fatalf("MergeRooms() error = %v", err)
	}

	// The emptied home room keeps its identity and name.
	if name, ok := svc.GetRoomNameByID(orphan); !ok || name != "Lounge" {
		t.Errorf("orphaned home room lost: GetRoomNameByID() = (%q, %v)", name, ok)
	}
	if refs := svc.GetServiceRoomIDs(orphan); len(refs) != 0 {
		t.Errorf("orphaned home room still has members: %v", refs)
	}
}

func TestMergeRooms_FreshTarget(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	svc.MapServiceRoom(ctx, "hue", "room-1", "Lounge") //nolint:errcheck

	err := svc.MergeRooms(ctx, []ServiceRoomRef{
		{ServiceID: "hue", ServiceRoomID: "room-1"},
	}, "hr-manual")
	if err != nil {
		t.Fatalf("MergeRooms() error = %v", err)
	}

	got, ok := svc.GetHomeRoomID("hue", "room-1")
	if !ok || got != "hr-manual" {
		t.Errorf("GetHomeRoomID() = (%q, %v), want (hr-manual, true)", got, ok)
	}
}

func TestSetRoomName(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	id, _ := svc.MapServiceRoom(ctx, "hue", "room-1", "Lounge")

	if err := svc.SetRoomName(ctx, id, "Front Room"); err != nil {
		t.Fatalf("SetRoomName() error = %v", err)
	}
	if name, _ := svc.GetRoomNameByID(id); name != "Front Room" {
		t.Errorf("GetRoomNameByID() = %q, want Front Room", name)
	}

	// Renaming an unknown room is a no-op, not an error.
	if err := svc.SetRoomName(ctx, "hr-unknown", "Nope"); err != nil {
		t.Errorf("SetRoomName(unknown) error = %v", err)
	}
	if _, ok := svc.GetRoomNameByID("hr-unknown"); ok {
		t.Error("SetRoomName(unknown) created a room")
	}
}

func TestDeleteMapping_NoCascade(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	id, _ := svc.MapServiceRoom(ctx, "hue", "room-1", "Lounge")
	if err := svc.MergeRooms(ctx, []ServiceRoomRef{
		{ServiceID: "sonos", ServiceRoomID: "zone-2"},
	}, id); err != nil {
		t.Fatalf("MergeRooms() error = %v", err)
	}

	if err := svc.DeleteMapping(ctx, "hue", "room-1"); err != nil {
		t.Fatalf("DeleteMapping() error = %v", err)
	}

	if _, ok := svc.GetHomeRoomID("hue", "room-1"); ok {
		t.Error("deleted mapping still resolves")
	}
	if got, ok := svc.GetHomeRoomID("sonos", "zone-2"); !ok || got != id {
		t.Errorf("sibling mapping affected by delete: (%q, %v)", got, ok)
	}
	if _, ok := svc.GetRoomNameByID(id); !ok {
		t.Error("home room removed by member delete")
	}

	if err := svc.DeleteMapping(ctx, "hue", "ghost"); err != nil {
		t.Errorf("DeleteMapping(unmapped) error = %v", err)
	}
}

func TestInitialize_RoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	first := NewService(repo)
	if err := first.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	lounge, _ := first.MapServiceRoom(ctx, "hue", "room-1", "Lounge")
	kitchen, _ := first.MapServiceRoom(ctx, "hue", "room-2", "Kitchen")
	if err := first.MergeRooms(ctx, []ServiceRoomRef{
		{ServiceID: "sonos", ServiceRoomID: "zone-2"},
	}, lounge); err != nil {
		t.Fatalf("MergeRooms() error = %v", err)
	}
	if err := first.SetRoomName(ctx, kitchen, "Galley"); err != nil {
		t.Fatalf("SetRoomName() error = %v", err)
	}

	// Simulate a restart: new service, same storage.
	second := NewService(repo)
	if err := second.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() after restart error = %v", err)
	}

	checks := []struct {
		serviceID, serviceRoomID, want string
	}{
		{"hue", "room-1", lounge},
		{"hue", "room-2", kitchen},
		{"sonos", "zone-2", lounge},
	}
	for _, c := range checks {
		got, ok := second.GetHomeRoomID(c.serviceID, c.serviceRoomID)
		if !ok || got != c.want {
			t.Errorf("after restart GetHomeRoomID(%s:%s) = (%q, %v), want %q",
				c.serviceID, c.serviceRoomID, got, ok, c.want)
		}
	}
	if name, _ := second.GetRoomNameByID(kitchen); name != "Galley" {
		t.Errorf("after restart GetRoomNameByID(kitchen) = %q, want Galley", name)
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	id, _ := svc.MapServiceRoom(ctx, "hue", "room-1", "Lounge")

	// A second call must not wipe or duplicate in-memory state.
	if err := svc.Initialize(ctx); err != nil {
		t.Fatalf("repeat Initialize() error = %v", err)
	}
	if got, ok := svc.GetHomeRoomID("hue", "room-1"); !ok || got != id {
		t.Errorf("state lost after repeat Initialize(): (%q, %v)", got, ok)
	}
}

func TestReset(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	svc.MapServiceRoom(ctx, "hue", "room-1", "Lounge") //nolint:errcheck

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if err := svc.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() after reset error = %v", err)
	}

	if _, ok := svc.GetHomeRoomID("hue", "room-1"); ok {
		t.Error("mapping survived Reset()")
	}
	if rooms := svc.HomeRooms(); len(rooms) != 0 {
		t.Errorf("HomeRooms() after reset = %v, want empty", rooms)
	}
}
