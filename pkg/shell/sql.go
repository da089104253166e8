package shell

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cmdreg/pkg/args"
)

// Statements starting with these keywords return rows.
var queryKeywords = map[string]bool{
	"select":   true,
	"with":     true,
	"pragma":   true,
	"show":     true,
	"describe": true,
	"desc":     true,
	"explain":  true,
	"values":   true,
}

func isQuery(stmt string) bool {
	first, ok := args.First(stmt)
	if !ok {
		return false
	}

	return queryKeywords[strings.ToLower(strings.TrimLeft(first, "("))]
}

func (s *Session) sql(ctx context.Context, stmt string) error {
	if s.db == nil {
		return errors.New("no database connection")
	}

	if isQuery(stmt) {
		return s.query(ctx, stmt)
	}

	res, err := s.db.ExecContext(ctx, stmt)
	if err != nil {
		return errors.Wrap(err, "statement failed")
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return s.printf("%s affected\n", plural(n))
	}

	return s.printf("Statement executed\n")
}

func (s *Session) query(ctx context.Context, stmt string) error {
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return errors.Wrap(err, "query failed")
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return errors.Wrap(err, "failed to read columns")
	}

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(cols, "\t"))

	rules := make([]string, len(cols))
	for i, c := range cols {
		rules[i] = strings.Repeat("-", max(len(c), 1))
	}
	fmt.Fprintln(tw, strings.Join(rules, "\t"))

	var count int64
	values := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}

	cells := make([]string, len(cols))
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return errors.Wrap(err, "failed to scan row")
		}

		for i, v := range values {
			cells[i] = formatValue(v)
		}

		fmt.Fprintln(tw, strings.Join(cells, "\t"))
		count++
	}

	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "query failed")
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	return s.printf("\n%s selected\n", plural(count))
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case sql.RawBytes:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func plural(n int64) string {
	if n == 1 {
		return "1 row"
	}

	return fmt.Sprintf("%d rows", n)
}

func (s *Session) printf(format string, a ...any) error {
	_, err := fmt.Fprintf(s.out, format, a...)
	return err
}
