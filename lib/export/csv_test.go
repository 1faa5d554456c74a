package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sejm-export/lib/sejmapi"

	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64 {
	return &v
}

func boolean(v bool) *bool {
	return &v
}

func TestWriteEmptyList(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, nil)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(
		t,
		"id,firstName,secondName,lastName,firstLastName,club,districtNum,districtName,voivodeship,email,active\n",
		buf.String(),
	)
}

func TestWriteSingleDeputy(t *testing.T) {
	mps := []sejmapi.MP{
		{
			Id:            i64(1),
			FirstName:     "Jan",
			SecondName:    "",
			LastName:      "Kowalski",
			FirstLastName: "Jan Kowalski",
			Club:          "KO",
			DistrictNum:   i64(1),
			DistrictName:  "Warszawa",
			Voivodeship:   "mazowieckie",
			Email:         "jan.kowalski@sejm.gov.pl",
			Active:        boolean(true),
		},
	}

	var buf bytes.Buffer
	err := Write(&buf, mps)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(
		t,
		"1,Jan,,Kowalski,Jan Kowalski,KO,1,Warszawa,mazowieckie,jan.kowalski@sejm.gov.pl,true",
		lines[1],
	)
}

func TestWriteMissingFields(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []sejmapi.MP{{}})
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, ",,,,,,,,,,", lines[1])
}

func TestRoundTripQuoting(t *testing.T) {
	mps := []sejmapi.MP{
		{
			Id:            i64(7),
			FirstName:     "Anna",
			LastName:      "Nowak",
			FirstLastName: "Anna Nowak",
			Club:          `Klub, "Test"`,
			DistrictNum:   i64(19),
			DistrictName:  "Warszawa",
			Voivodeship:   "mazowieckie",
			Active:        boolean(false),
		},
		{
			Id:            i64(8),
			FirstName:     "Piotr",
			LastName:      "Wiśniewski",
			FirstLastName: "Piotr Wiśniewski",
			Club:          "linia1\nlinia2",
			Active:        boolean(true),
		},
	}

	var buf bytes.Buffer
	err := Write(&buf, mps)
	if err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, records, 3)
	require.Equal(t, Header, records[0])
	for i, mp := range mps {
		require.Equal(t, Record(mp), records[i+1])
	}
	require.Equal(t, `Klub, "Test"`, records[1][5])
	require.Equal(t, "linia1\nlinia2", records[2][5])
}

func TestWriteFileOverwrites(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "poslowie.csv")
	err := os.WriteFile(dest, []byte("stale contents"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	err = WriteFile(dest, []sejmapi.MP{{Id: i64(1), FirstLastName: "Jan Kowalski"}})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	// no leftover temp files
	entries, err := os.ReadDir(filepath.Dir(dest))
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, entries, 1)
}

func TestWriteFileUnwritableDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "poslowie.csv")
	err := WriteFile(dest, nil)
	require.Error(t, err)

	_, err = os.Stat(dest)
	require.True(t, os.IsNotExist(err))
}
