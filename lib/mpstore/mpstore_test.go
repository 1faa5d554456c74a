package mpstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sejm-export/lib/sejmapi"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func i64(v int64) *int64 {
	return &v
}

func boolean(v bool) *bool {
	return &v
}

func TestOpenUncreatableDirectory(t *testing.T) {
	// the parent "directory" is a regular file, so MkdirAll must fail
	blocker := filepath.Join(t.TempDir(), "blocker")
	err := os.WriteFile(blocker, []byte("not a directory"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Open(filepath.Join(blocker, "archive", "poslowie.db"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "create archive directory")
}

func TestSnapshotRoundTrip(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	store := New(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	mps := []sejmapi.MP{
		{
			Id:            i64(2),
			FirstName:     "Anna",
			LastName:      "Nowak",
			FirstLastName: "Anna Nowak",
			Club:          "PiS",
			Active:        boolean(false),
		},
		{
			Id:            i64(1),
			FirstName:     "Jan",
			LastName:      "Kowalski",
			FirstLastName: "Jan Kowalski",
			Club:          "KO",
			DistrictNum:   i64(19),
			DistrictName:  "Warszawa",
			Voivodeship:   "mazowieckie",
			Email:         "jan.kowalski@sejm.gov.pl",
			Active:        boolean(true),
		},
	}

	err = store.SaveSnapshot(ctx, 10, mps)
	if err != nil {
		t.Fatal(err)
	}

	count, err := store.CountMPs(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(2), count)

	archived, err := store.ListMPs(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, archived, 2)

	// listed by id, not insertion order
	require.Equal(t, "Jan Kowalski", archived[0].FirstLastName)
	require.Equal(t, "Anna Nowak", archived[1].FirstLastName)

	require.NotNil(t, archived[0].DistrictNum)
	require.Equal(t, int64(19), *archived[0].DistrictNum)
	require.Nil(t, archived[1].DistrictNum)
	require.NotNil(t, archived[1].Active)
	require.False(t, *archived[1].Active)
}

func TestSnapshotReplacesPrevious(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	store := New(db)

	ctx := context.Background()

	err = store.SaveSnapshot(ctx, 10, []sejmapi.MP{
		{Id: i64(1), FirstLastName: "Jan Kowalski", Club: "KO"},
		{Id: i64(2), FirstLastName: "Anna Nowak", Club: "PiS"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// deputy 2 left, deputy 1 changed clubs
	err = store.SaveSnapshot(ctx, 10, []sejmapi.MP{
		{Id: i64(1), FirstLastName: "Jan Kowalski", Club: "PL2050"},
	})
	if err != nil {
		t.Fatal(err)
	}

	archived, err := store.ListMPs(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, archived, 1)
	require.Equal(t, "PL2050", archived[0].Club)
}

func TestSnapshotsAreTermScoped(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	store := New(db)

	ctx := context.Background()

	err = store.SaveSnapshot(ctx, 9, []sejmapi.MP{{Id: i64(1)}})
	if err != nil {
		t.Fatal(err)
	}
	err = store.SaveSnapshot(ctx, 10, []sejmapi.MP{{Id: i64(1)}, {Id: i64(2)}})
	if err != nil {
		t.Fatal(err)
	}

	count, err := store.CountMPs(ctx, 9)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(1), count)

	count, err = store.CountMPs(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(2), count)
}

func TestSnapshotRejectsMissingId(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	store := New(db)

	ctx := context.Background()

	err = store.SaveSnapshot(ctx, 10, []sejmapi.MP{
		{Id: i64(1), FirstLastName: "Jan Kowalski"},
		{FirstLastName: "Anna Nowak"},
	})
	require.Error(t, err)

	// the failed snapshot must not have been partially applied
	count, err := store.CountMPs(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(0), count)
}
