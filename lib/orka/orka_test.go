package orka

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var fakePdf = append([]byte("%PDF-1.7\n"), make([]byte, 300)...)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientOptions{BaseUrl: server.URL})
}

func TestReportPath(t *testing.T) {
	client := NewClient(ClientOptions{})
	require.Equal(
		t,
		"/rozlicz10.nsf/lista/2024001/%24File/2024ryczalt_001.pdf",
		client.ReportPath(2024, "001"),
	)
}

func TestIsPdf(t *testing.T) {
	require.True(t, IsPdf(fakePdf))
	require.False(t, IsPdf([]byte("<html></html>")))
	require.False(t, IsPdf(nil))
}

func TestFetchReport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(fakePdf)
	})

	data, err := client.FetchReport(context.Background(), 2024, "001")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, fakePdf, data)
}

func TestFetchReportOpenFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// the bare document URL serves a Domino HTML page, only the
		// ?Open form returns the file
		if r.URL.RawQuery != "Open" {
			w.Write([]byte("<html>No such document</html>"))
			return
		}
		w.Write(fakePdf)
	})

	data, err := client.FetchReport(context.Background(), 2024, "002")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, fakePdf, data)
}

func TestFetchReportMissing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchReport(context.Background(), 2024, "499")
	require.Error(t, err)
}

func TestDownloadBatch(t *testing.T) {
	missing := map[string]bool{"002": true}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		for id := range missing {
			if filepath.Base(r.URL.Path) == "2024ryczalt_"+id+".pdf" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
		}
		w.Write(fakePdf)
	})

	outDir := t.TempDir()

	// id 3 already downloaded, must not be refetched
	err := os.WriteFile(filepath.Join(outDir, "003.pdf"), fakePdf, 0644)
	if err != nil {
		t.Fatal(err)
	}

	result, err := client.DownloadBatch(context.Background(), BatchOptions{
		Year:    2024,
		StartId: 1,
		MaxId:   3,
		OutDir:  outDir,
		Delay:   1,
	})
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, 1, result.Downloaded)
	require.Equal(t, 1, result.Skipped)
	require.Equal(t, 1, result.Missing)

	data, err := os.ReadFile(filepath.Join(outDir, "001.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, fakePdf, data)

	_, err = os.Stat(filepath.Join(outDir, "002.pdf"))
	require.True(t, os.IsNotExist(err))

	// no dangling .part files
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		require.NotEqual(t, ".part", filepath.Ext(entry.Name()))
	}
}

func TestDownloadBatchCancel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(fakePdf)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.DownloadBatch(ctx, BatchOptions{
		Year:   2024,
		OutDir: t.TempDir(),
	})
	require.ErrorIs(t, err, context.Canceled)
}
