// Package export renders deputy lists as CSV snapshots.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"sejm-export/lib/sejmapi"
)

// Header is the fixed column set, the order is part of the file format.
var Header = []string{
	"id",
	"firstName",
	"secondName",
	"lastName",
	"firstLastName",
	"club",
	"districtNum",
	"districtName",
	"voivodeship",
	"email",
	"active",
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

// Record projects one deputy into the Header columns. Missing or null
// source fields come out as empty strings.
func Record(mp sejmapi.MP) []string {
	return []string{
		formatInt(mp.Id),
		mp.FirstName,
		mp.SecondName,
		mp.LastName,
		mp.FirstLastName,
		mp.Club,
		formatInt(mp.DistrictNum),
		mp.DistrictName,
		mp.Voivodeship,
		mp.Email,
		formatBool(mp.Active),
	}
}

// Write renders the header row followed by one row per deputy, in input
// order. Quoting follows standard CSV rules.
func Write(w io.Writer, mps []sejmapi.MP) error {
	out := csv.NewWriter(w)

	err := out.Write(Header)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, mp := range mps {
		err = out.Write(Record(mp))
		if err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	out.Flush()
	return out.Error()
}

// WriteFile renders into a temporary file next to `path` and renames it
// into place, so a failed run never leaves a truncated snapshot behind.
func WriteFile(path string, mps []sejmapi.MP) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.part")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	err = Write(tmp, mps)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	err = tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
