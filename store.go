package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Store is the sqlite persistence adapter. Shapes cross this boundary
// as JSON text and exist as structs everywhere else; a null, empty or
// unparseable shape column loads as "no shape" and is only logged.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS plan (
    id               INTEGER PRIMARY KEY CHECK (id = 1),
    background_color TEXT NOT NULL DEFAULT '',
    background_image TEXT NOT NULL DEFAULT '',
    fill_alpha       REAL NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS seats (
    id           TEXT PRIMARY KEY,
    x_coordinate REAL NOT NULL,
    y_coordinate REAL NOT NULL,
    shape        TEXT,
    label        TEXT NOT NULL DEFAULT '',
    section_id   TEXT NOT NULL DEFAULT '',
    position     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS sections (
    id           TEXT PRIMARY KEY,
    x_coordinate REAL NOT NULL,
    y_coordinate REAL NOT NULL,
    shape        TEXT,
    name         TEXT NOT NULL DEFAULT '',
    image        TEXT NOT NULL DEFAULT '',
    color        TEXT NOT NULL DEFAULT '',
    fill_alpha   REAL NOT NULL DEFAULT 1,
    position     INTEGER NOT NULL
);
`

// OpenStore opens (creating if needed) the layout database.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the whole layout. Markers with bad shape text still load,
// shapeless.
func (s *Store) Load(ctx context.Context) (*Plan, error) {
	p := NewPlan()

	row := s.db.QueryRowContext(ctx, `
        SELECT background_color, background_image, fill_alpha FROM plan WHERE id = 1
    `)
	var bg, img string
	var alpha float64
	switch err := row.Scan(&bg, &img, &alpha); err {
	case nil:
		p.backgroundColor = bg
		p.backgroundImage = img
		p.fillAlpha = alpha
	case sql.ErrNoRows:
	default:
		return nil, fmt.Errorf("load plan row: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, x_coordinate, y_coordinate, shape, label, section_id
        FROM seats ORDER BY position
    `)
	if err != nil {
		return nil, fmt.Errorf("load seats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m Marker
		var shapeText sql.NullString
		if err := rows.Scan(&m.ID, &m.X, &m.Y, &shapeText, &m.Label, &m.Section); err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		m.Kind = KindSeat
		m.Shape = decodeShapeColumn(m.ID, shapeText)
		p.seats = append(p.seats, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load seats: %w", err)
	}

	srows, err := s.db.QueryContext(ctx, `
        SELECT id, x_coordinate, y_coordinate, shape, name, image, color, fill_alpha
        FROM sections ORDER BY position
    `)
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}
	defer srows.Close()
	for srows.Next() {
		var m Marker
		var shapeText sql.NullString
		if err := srows.Scan(&m.ID, &m.X, &m.Y, &shapeText, &m.Label, &m.Image, &m.Color, &m.FillAlpha); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		m.Kind = KindSection
		m.Shape = decodeShapeColumn(m.ID, shapeText)
		p.sections = append(p.sections, m)
	}
	if err := srows.Err(); err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}

	return p, nil
}

func decodeShapeColumn(id string, col sql.NullString) *Shape {
	if !col.Valid {
		return nil
	}
	shape, err := ParseShape(col.String)
	if err != nil {
		log.Printf("marker %s: unparseable shape %q: %v", id, col.String, err)
		return nil
	}
	return shape
}

// Save rewrites the layout in one transaction. On error the database
// and the in-memory plan are both left as they were.
func (s *Store) Save(ctx context.Context, p *Plan) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM seats`); err != nil {
		return fmt.Errorf("clear seats: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sections`); err != nil {
		return fmt.Errorf("clear sections: %w", err)
	}

	for i, m := range p.seats {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO seats (id, x_coordinate, y_coordinate, shape, label, section_id, position)
            VALUES (?, ?, ?, ?, ?, ?, ?)
        `, m.ID, m.X, m.Y, EncodeShape(m.Shape), m.Label, m.Section, i)
		if err != nil {
			return fmt.Errorf("save seat %s: %w", m.ID, err)
		}
	}
	for i, m := range p.sections {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO sections (id, x_coordinate, y_coordinate, shape, name, image, color, fill_alpha, position)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        `, m.ID, m.X, m.Y, EncodeShape(m.Shape), m.Label, m.Image, m.Color, m.FillAlpha, i)
		if err != nil {
			return fmt.Errorf("save section %s: %w", m.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO plan (id, background_color, background_image, fill_alpha)
        VALUES (1, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            background_color = excluded.background_color,
            background_image = excluded.background_image,
            fill_alpha = excluded.fill_alpha
    `, p.backgroundColor, p.backgroundImage, p.fillAlpha)
	if err != nil {
		return fmt.Errorf("save plan row: %w", err)
	}

	return tx.Commit()
}
