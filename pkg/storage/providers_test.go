package storage

import (
	"context"
	"testing"

	"github.com/goliatone/go-activity/pkg/domain"
	"github.com/goliatone/go-activity/pkg/interfaces/store"
)

func TestBunProvidersRoundTrip(t *testing.T) {
	db, err := OpenSQLite("")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("schema: %v", err)
	}
	providers := NewBunProviders(db)

	rec := &domain.ActivityRecord{App: "files", Type: "shared", AffectedUser: "alice", Rendered: "bob shared a file"}
	if err := providers.Activities.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	feed, err := providers.Activities.ListByUser(ctx, "alice", store.FeedFilter{}, store.ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if feed.Total != 1 || feed.Items[0].Rendered != "bob shared a file" {
		t.Fatalf("unexpected feed %+v", feed)
	}
}

func TestMemoryProviders(t *testing.T) {
	if NewMemoryProviders().Activities == nil {
		t.Fatalf("expected memory activity repository")
	}
}
