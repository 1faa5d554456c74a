package orka

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

type BatchOptions struct {
	Year int
	// zero-pad width of deputy ids, defaults to 3
	IdWidth int
	// defaults to 1
	StartId int
	// defaults to 498
	MaxId int
	// directory reports are written to, created if missing
	OutDir string
	// pause between requests, defaults to 400ms
	Delay time.Duration
}

type BatchResult struct {
	Downloaded int
	Skipped    int
	Missing    int
}

func (o BatchOptions) withDefaults() BatchOptions {
	if o.IdWidth == 0 {
		o.IdWidth = 3
	}
	if o.StartId == 0 {
		o.StartId = 1
	}
	if o.MaxId == 0 {
		o.MaxId = 498
	}
	if o.Delay == 0 {
		o.Delay = time.Millisecond * 400
	}
	return o
}

// hasValidReport reports whether dest already holds a plausible PDF, so
// interrupted batches can be resumed without refetching.
func hasValidReport(dest string) bool {
	data, err := os.ReadFile(dest)
	if err != nil {
		return false
	}
	return len(data) > 200 && IsPdf(data)
}

func saveReport(dest string, data []byte) error {
	tmp := dest + ".part"
	err := os.WriteFile(tmp, data, 0644)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	err = os.Rename(tmp, dest)
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", dest, err)
	}
	return nil
}

// DownloadBatch fetches every report in the id range into OutDir, one
// file per deputy named `<id>.pdf`. Missing reports are counted, not
// fatal; deputies who left mid-term simply have no document.
func (c *Client) DownloadBatch(ctx context.Context, opts BatchOptions) (BatchResult, error) {
	opts = opts.withDefaults()

	err := os.MkdirAll(opts.OutDir, 0755)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create output directory: %w", err)
	}

	var result BatchResult
	for i := opts.StartId; i <= opts.MaxId; i++ {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		id := fmt.Sprintf("%0*d", opts.IdWidth, i)
		dest := filepath.Join(opts.OutDir, id+".pdf")
		if hasValidReport(dest) {
			slog.Debug("valid report exists, skipping", "id", id)
			result.Skipped++
			continue
		}

		data, err := c.FetchReport(ctx, opts.Year, id)
		if err != nil {
			slog.Warn("report unavailable", "id", id, "err", err)
			result.Missing++
			continue
		}
		err = saveReport(dest, data)
		if err != nil {
			return result, err
		}

		slog.Info("downloaded report", "id", id, "bytes", len(data))
		result.Downloaded++

		select {
		case <-time.After(opts.Delay):
		case <-ctx.Done():
			return result, ctx.Err()
		}
	}

	return result, nil
}
