package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/marketway"
)

// Compile-time interface verification.
var _ marketway.LineService = (*LineService)(nil)

// LineService implements marketway.LineService using SQLite.
type LineService struct {
	db  *DB
	now func() time.Time
}

// NewLineService creates a new LineService.
func NewLineService(db *DB) *LineService {
	return &LineService{db: db, now: time.Now}
}

// ImportStats summarizes a catalog replacement.
type ImportStats struct {
	Total     int `json:"total"`
	Added     int `json:"added"`
	Changed   int `json:"changed"`
	Unchanged int `json:"unchanged"`
	Removed   int `json:"removed"`
}

// ReplaceLines atomically replaces the entire stored catalog.
func (s *LineService) ReplaceLines(ctx context.Context, lines []*marketway.Line) error {
	_, err := s.ImportLines(ctx, lines)
	return err
}

// ImportLines replaces the stored catalog and reports what changed.
// Every line is validated first; nothing is written if any line is invalid
// or two lines share an ID. Lines whose content hash is unchanged keep
// their previous updated_at.
func (s *LineService) ImportLines(ctx context.Context, lines []*marketway.Line) (*ImportStats, error) {
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if l == nil {
			return nil, marketway.Errorf(marketway.EINVALID, "line required")
		}
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if seen[l.ID] {
			return nil, marketway.Errorf(marketway.ECONFLICT, "duplicate line ID %q", l.ID)
		}
		seen[l.ID] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	existing, err := existingHashes(ctx, tx)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM lines"); err != nil {
		return nil, err
	}

	stats := &ImportStats{Total: len(lines)}
	now := s.now().UTC().Format(time.RFC3339)
	for i, l := range lines {
		hash := hashLine(l)
		updatedAt := now
		prev, ok := existing[l.ID]
		switch {
		case !ok:
			stats.Added++
		case prev.hash == hash:
			stats.Unchanged++
			updatedAt = prev.updatedAt
		default:
			stats.Changed++
		}
		delete(existing, l.ID)

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO lines (id, name, aisle, position, seq, content_hash, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, l.ID, l.Name, l.Aisle, l.Order, i, hash, updatedAt); err != nil {
			return nil, fmt.Errorf("failed to insert line %q: %w", l.ID, err)
		}

		for j, item := range l.Items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO line_items (line_id, position, item) VALUES (?, ?, ?)
			`, l.ID, j, item); err != nil {
				return nil, fmt.Errorf("failed to insert item of line %q: %w", l.ID, err)
			}
		}
	}
	stats.Removed = len(existing)

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stats, nil
}

type lineState struct {
	hash      string
	updatedAt string
}

func existingHashes(ctx context.Context, tx *sql.Tx) (map[string]lineState, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, content_hash, updated_at FROM lines")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(map[string]lineState)
	for rows.Next() {
		var id string
		var st lineState
		if err := rows.Scan(&id, &st.hash, &st.updatedAt); err != nil {
			return nil, err
		}
		m[id] = st
	}
	return m, rows.Err()
}

// Lines returns every stored line ordered by aisle, then order, then
// import order. Any storage failure is reported as EUNAVAILABLE.
func (s *LineService) Lines(ctx context.Context) ([]*marketway.Line, error) {
	lines, err := s.FindLines(ctx, marketway.LineFilter{})
	if err != nil {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "line store: %v", err)
	}
	return lines, nil
}

// FindLineByID retrieves a line by ID.
func (s *LineService) FindLineByID(ctx context.Context, id string) (*marketway.Line, error) {
	var l marketway.Line
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, aisle, position
		FROM lines
		WHERE id = ?
	`, id).Scan(&l.ID, &l.Name, &l.Aisle, &l.Order)

	if err == sql.ErrNoRows {
		return nil, marketway.Errorf(marketway.ENOTFOUND, "line %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachItems(ctx, []*marketway.Line{&l}); err != nil {
		return nil, err
	}
	return &l, nil
}

// FindLines retrieves lines matching the filter.
func (s *LineService) FindLines(ctx context.Context, filter marketway.LineFilter) ([]*marketway.Line, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, aisle, position FROM lines WHERE 1=1")

	if filter.Aisle != nil {
		query.WriteString(" AND aisle = ?")
		args = append(args, *filter.Aisle)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ? COLLATE NOCASE")
		args = append(args, strings.TrimSpace(*filter.Name))
	}

	query.WriteString(" ORDER BY aisle ASC, position ASC, seq ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []*marketway.Line{}
	for rows.Next() {
		var l marketway.Line
		if err := rows.Scan(&l.ID, &l.Name, &l.Aisle, &l.Order); err != nil {
			return nil, err
		}
		lines = append(lines, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachItems(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// attachItems loads items for lines in one query.
func (s *LineService) attachItems(ctx context.Context, lines []*marketway.Line) error {
	if len(lines) == 0 {
		return nil
	}

	byID := make(map[string]*marketway.Line, len(lines))
	placeholders := make([]string, len(lines))
	args := make([]any, len(lines))
	for i, l := range lines {
		l.Items = []string{}
		byID[l.ID] = l
		placeholders[i] = "?"
		args[i] = l.ID
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT line_id, item FROM line_items
		WHERE line_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY line_id, position
	`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, item string
		if err := rows.Scan(&id, &item); err != nil {
			return err
		}
		if l, ok := byID[id]; ok {
			l.Items = append(l.Items, item)
		}
	}
	return rows.Err()
}
