package session

import (
	"context"
	"strings"
	"testing"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/db"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/deck"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func testDeck(t *testing.T, slides int) *deck.SlideDeck {
	t.Helper()
	var b strings.Builder
	b.WriteString("<html><head><title>Test Deck</title></head><body>")
	for i := 0; i < slides; i++ {
		b.WriteString(`<div class="slide"><p>content</p></div>`)
	}
	b.WriteString("</body></html>")
	d, err := deck.Decompose(b.String())
	if err != nil {
		t.Fatalf("building deck: %v", err)
	}
	return d
}

func TestCreateAndGetSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.CreateSession(ctx, "Q3 Review", "openai", "gpt-4o")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("session should get an id")
	}

	got, err := store.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil || got.Title != "Q3 Review" || got.Provider != "openai" || got.Model != "gpt-4o" {
		t.Errorf("got %+v", got)
	}

	missing, err := store.GetSession(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("GetSession(missing): %v", err)
	}
	if missing != nil {
		t.Errorf("missing session should be nil, got %+v", missing)
	}
}

func TestListSessionsOrdersByActivity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, _ := store.CreateSession(ctx, "first", "openai", "gpt-4o")
	second, _ := store.CreateSession(ctx, "second", "openai", "gpt-4o")

	// Touching the older session moves it to the front.
	if err := store.SetTitle(ctx, first.ID, "first, renamed"); err != nil {
		t.Fatalf("SetTitle: %v", err)
	}

	sessions, err := store.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if sessions[0].ID != first.ID || sessions[0].Title != "first, renamed" {
		t.Errorf("most recently updated session should list first, got %+v", sessions[0])
	}
	if sessions[1].ID != second.ID {
		t.Errorf("expected %s second, got %s", second.ID, sessions[1].ID)
	}

	count, err := store.CountSessions(ctx)
	if err != nil || count != 2 {
		t.Errorf("CountSessions = %d, %v", count, err)
	}
}

func TestSaveDeckRevisionChain(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	sess, _ := store.CreateSession(ctx, "", "openai", "gpt-4o")

	rev1, err := store.SaveDeck(ctx, sess.ID, testDeck(t, 2), "generate")
	if err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}
	rev2, err := store.SaveDeck(ctx, sess.ID, testDeck(t, 3), "add")
	if err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}
	if rev1.Revision != 1 || rev2.Revision != 2 {
		t.Errorf("revisions = %d, %d, want 1, 2", rev1.Revision, rev2.Revision)
	}

	d, revision, err := store.CurrentDeck(ctx, sess.ID)
	if err != nil {
		t.Fatalf("CurrentDeck: %v", err)
	}
	if revision != 2 || len(d.Slides) != 3 {
		t.Errorf("current deck: revision %d with %d slides, want revision 2 with 3", revision, len(d.Slides))
	}

	older, err := store.GetRevision(ctx, sess.ID, 1)
	if err != nil {
		t.Fatalf("GetRevision: %v", err)
	}
	if len(older.Slides) != 2 {
		t.Errorf("revision 1 should hold 2 slides, got %d", len(older.Slides))
	}

	revisions, err := store.ListRevisions(ctx, sess.ID)
	if err != nil {
		t.Fatalf("ListRevisions: %v", err)
	}
	if len(revisions) != 2 {
		t.Fatalf("got %d revisions, want 2", len(revisions))
	}
	if revisions[0].Operation != "generate" || revisions[1].Operation != "add" {
		t.Errorf("operations = %q, %q", revisions[0].Operation, revisions[1].Operation)
	}
	if revisions[1].SlideCount != 3 {
		t.Errorf("SlideCount = %d, want 3", revisions[1].SlideCount)
	}
}

func TestCurrentDeckEmptySession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	sess, _ := store.CreateSession(ctx, "", "openai", "gpt-4o")

	d, revision, err := store.CurrentDeck(ctx, sess.ID)
	if err != nil {
		t.Fatalf("CurrentDeck: %v", err)
	}
	if d != nil || revision != 0 {
		t.Errorf("empty session should report no deck, got %+v at revision %d", d, revision)
	}
}

func TestDeckRoundTripPreservesContent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	sess, _ := store.CreateSession(ctx, "", "openai", "gpt-4o")

	src := `<html><head><title>Charts</title><style>.slide { color: navy; }</style></head><body>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<div class="slide"><h1>Revenue</h1><canvas id="revenueChart"></canvas></div>
<script>
const ctx = document.getElementById('revenueChart');
new Chart(ctx, { type: 'line' });
</script>
</body></html>`
	original, err := deck.Decompose(src)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if _, err := store.SaveDeck(ctx, sess.ID, original, "generate"); err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}

	loaded, _, err := store.CurrentDeck(ctx, sess.ID)
	if err != nil {
		t.Fatalf("CurrentDeck: %v", err)
	}
	if loaded.Title != original.Title || loaded.CSS != original.CSS {
		t.Errorf("title/css changed across the round trip")
	}
	if len(loaded.Slides) != 1 || loaded.Slides[0].HTML != original.Slides[0].HTML {
		t.Errorf("slide HTML changed across the round trip")
	}
	if len(loaded.Slides[0].Scripts) != 1 || loaded.Slides[0].Scripts[0] != original.Slides[0].Scripts[0] {
		t.Errorf("slide scripts changed across the round trip")
	}
	if len(loaded.ExternalScripts) != 1 {
		t.Errorf("external scripts lost: %v", loaded.ExternalScripts)
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	sess, _ := store.CreateSession(ctx, "", "openai", "gpt-4o")
	store.SaveDeck(ctx, sess.ID, testDeck(t, 1), "generate")
	store.AddMessage(ctx, Message{SessionID: sess.ID, Role: "user", Content: "hello"})

	if err := store.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}

	got, err := store.GetSession(ctx, sess.ID)
	if err != nil || got != nil {
		t.Errorf("session should be gone, got %+v, %v", got, err)
	}
	revisions, err := store.ListRevisions(ctx, sess.ID)
	if err != nil {
		t.Fatalf("ListRevisions: %v", err)
	}
	if len(revisions) != 0 {
		t.Errorf("revisions should cascade on delete, got %d", len(revisions))
	}
}

func TestMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	sess, _ := store.CreateSession(ctx, "", "openai", "gpt-4o")

	if _, err := store.AddMessage(ctx, Message{SessionID: sess.ID, Role: "user", Content: "make slides"}); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	if _, err := store.AddMessage(ctx, Message{
		SessionID:    sess.ID,
		Role:         "assistant",
		Content:      "Generated a deck with 3 slides.",
		InputTokens:  120,
		OutputTokens: 480,
	}); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}

	messages, err := store.GetMessages(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Role != "user" || messages[1].Role != "assistant" {
		t.Errorf("messages out of order: %q, %q", messages[0].Role, messages[1].Role)
	}
	if messages[1].InputTokens != 120 || messages[1].OutputTokens != 480 {
		t.Errorf("token counts not persisted: %+v", messages[1])
	}
}
