// Package mpstore archives deputy list snapshots in a local sqlite
// database, one row per deputy per term. Re-archiving a term replaces
// the rows in place so the table always holds the latest snapshot.
package mpstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sejm-export/lib/sejmapi"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	_ "embed"
)

//go:embed schema.sql
var Schema string

var tracer = otel.Tracer("mpstore")

func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive db: %w", err)
	}

	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open archive db: %w", err)
	}

	_, err = db.Exec(Schema)
	if err != nil {
		return nil, fmt.Errorf("apply archive schema: %w", err)
	}
	return db, nil
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) Store {
	return Store{db: db}
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

// SaveSnapshot replaces the archived deputy list for a term. Records
// without an id cannot be keyed and fail the whole snapshot.
func (s Store) SaveSnapshot(ctx context.Context, term int, mps []sejmapi.MP) error {
	ctx, span := tracer.Start(ctx, "SaveSnapshot")
	defer span.End()
	span.SetAttributes(
		attribute.Int("term", term),
		attribute.Int("count", len(mps)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM mps WHERE term = ?`, term)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	fetchedAt := time.Now().Unix()
	for _, mp := range mps {
		if mp.Id == nil {
			err = fmt.Errorf("deputy record without an id: %q", mp.FirstLastName)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		_, err = tx.ExecContext(ctx, `
INSERT INTO mps (
    term, id, first_name, second_name, last_name, first_last_name,
    club, district_num, district_name, voivodeship, email, active,
    fetched_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			term, *mp.Id, mp.FirstName, mp.SecondName, mp.LastName,
			mp.FirstLastName, mp.Club, nullInt(mp.DistrictNum),
			mp.DistrictName, mp.Voivodeship, mp.Email,
			nullBool(mp.Active), fetchedAt,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// ListMPs returns the archived deputies of a term ordered by id.
func (s Store) ListMPs(ctx context.Context, term int) ([]sejmapi.MP, error) {
	ctx, span := tracer.Start(ctx, "ListMPs")
	defer span.End()
	span.SetAttributes(attribute.Int("term", term))

	rows, err := s.db.QueryContext(ctx, `
SELECT id, first_name, second_name, last_name, first_last_name,
    club, district_num, district_name, voivodeship, email, active
FROM mps WHERE term = ? ORDER BY id`, term)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var out []sejmapi.MP
	for rows.Next() {
		var mp sejmapi.MP
		var id int64
		var districtNum sql.NullInt64
		var active sql.NullBool
		err = rows.Scan(
			&id, &mp.FirstName, &mp.SecondName, &mp.LastName,
			&mp.FirstLastName, &mp.Club, &districtNum,
			&mp.DistrictName, &mp.Voivodeship, &mp.Email, &active,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		mp.Id = &id
		if districtNum.Valid {
			mp.DistrictNum = &districtNum.Int64
		}
		if active.Valid {
			mp.Active = &active.Bool
		}
		out = append(out, mp)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return out, nil
}

func (s Store) CountMPs(ctx context.Context, term int) (int64, error) {
	ctx, span := tracer.Start(ctx, "CountMPs")
	defer span.End()

	var count int64
	err := s.db.QueryRowContext(
		ctx, `SELECT COUNT(*) FROM mps WHERE term = ?`, term,
	).Scan(&count)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	return count, nil
}
