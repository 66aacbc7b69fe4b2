package store

import (
	"context"
	"testing"
	"time"

	"github.com/wanderly-app/pollsvc/internal/domain"
	"github.com/wanderly-app/pollsvc/internal/kv"
	"github.com/wanderly-app/pollsvc/internal/logger"
)

func testRepo() (*FolderRepo, *kv.MemoryStore) {
	s := kv.NewMemoryStore()
	return NewFolderRepo(s, logger.New("error", false)), s
}

func sampleFolder(id string, now time.Time) domain.Folder {
	return domain.Folder{
		ID:   id,
		Name: "Japan Trip",
		Places: []domain.Place{
			{ID: "p1", Name: "Kyoto"},
			{ID: "p2", Name: "Osaka"},
		},
		CreatedAt: now,
		EndDate:   now.Add(domain.PollDuration),
		Votes:     map[string]int{"p1": 0, "p2": 0},
	}
}

func TestLoadAllEmpty(t *testing.T) {
	repo, _ := testRepo()

	folders, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(folders) != 0 {
		t.Errorf("LoadAll() on missing document = %d folders, want 0", len(folders))
	}
}

func TestSaveAllLoadAllRoundTrip(t *testing.T) {
	repo, _ := testRepo()
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	in := []domain.Folder{sampleFolder("f1", t0), sampleFolder("f2", t0)}
	if err := repo.SaveAll(ctx, in); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	out, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("LoadAll() = %d folders, want 2", len(out))
	}
	if out[0].ID != "f1" || out[1].ID != "f2" {
		t.Errorf("LoadAll() order = %s, %s; want f1, f2", out[0].ID, out[1].ID)
	}
	if !out[0].EndDate.Equal(t0.Add(domain.PollDuration)) {
		t.Errorf("EndDate did not survive round trip: %v", out[0].EndDate)
	}
	if out[0].Votes["p1"] != 0 {
		t.Errorf("Votes did not survive round trip: %+v", out[0].Votes)
	}
}

func TestLoadAllCorruptRecoversAsEmpty(t *testing.T) {
	repo, s := testRepo()
	ctx := context.Background()

	if err := s.Set(ctx, kv.KeyFolders, `{not json`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	folders, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() on corrupt data error = %v, want nil", err)
	}
	if len(folders) != 0 {
		t.Errorf("LoadAll() on corrupt data = %d folders, want 0", len(folders))
	}
}

func TestFindByID(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	folders := []domain.Folder{sampleFolder("f1", t0), sampleFolder("f2", t0)}

	f, ok := FindByID(folders, "f2")
	if !ok {
		t.Fatal("FindByID() = not found, want f2")
	}
	if f.ID != "f2" {
		t.Errorf("FindByID() = %s, want f2", f.ID)
	}

	// The pointer aliases the slice so mutations stick
	f.Votes["p1"] = 7
	if folders[1].Votes["p1"] != 7 {
		t.Error("FindByID() result does not alias the collection")
	}

	if _, ok := FindByID(folders, "nope"); ok {
		t.Error("FindByID() found a folder that does not exist")
	}
}

func TestUpdatePersistsMutation(t *testing.T) {
	repo, _ := testRepo()
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := repo.SaveAll(ctx, []domain.Folder{sampleFolder("f1", t0)}); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	err := repo.Update(ctx, func(folders []domain.Folder) ([]domain.Folder, error) {
		folders[0].Votes["p1"]++
		return folders, nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	out, _ := repo.LoadAll(ctx)
	if out[0].Votes["p1"] != 1 {
		t.Errorf("Update() did not persist: votes = %+v", out[0].Votes)
	}
}

func TestUpdateAbortsOnError(t *testing.T) {
	repo, _ := testRepo()
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := repo.SaveAll(ctx, []domain.Folder{sampleFolder("f1", t0)}); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	wantErr := domain.ErrPollClosed
	err := repo.Update(ctx, func(folders []domain.Folder) ([]domain.Folder, error) {
		folders[0].Votes["p1"] = 99
		return nil, wantErr
	})
	if err != wantErr {
		t.Fatalf("Update() error = %v, want %v", err, wantErr)
	}

	out, _ := repo.LoadAll(ctx)
	if out[0].Votes["p1"] != 0 {
		t.Errorf("Update() persisted despite error: votes = %+v", out[0].Votes)
	}
}
