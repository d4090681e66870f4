package docstore

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"htc-backend/pkg/repository"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// columns that live outside the JSONB document.
var columnFields = map[string]string{
	repository.FieldID:        "id",
	repository.FieldCreatedAt: "created_at",
	repository.FieldUpdatedAt: "updated_at",
}

func quoteTable(name string) (string, error) {
	if !identPattern.MatchString(name) {
		return "", fmt.Errorf("invalid table name %q", name)
	}
	return pgx.Identifier{name}.Sanitize(), nil
}

// fieldExpr renders a stored field as SQL, casting JSONB text by the Go type of the compared value.
func fieldExpr(field string, value any) (string, error) {
	if col, ok := columnFields[field]; ok {
		return col, nil
	}
	if !identPattern.MatchString(field) {
		return "", fmt.Errorf("invalid field name %q", field)
	}

	text := fmt.Sprintf("(doc->>'%s')", field)
	switch value.(type) {
	case bool:
		return text + "::boolean", nil
	case int, int32, int64, float32, float64:
		return text + "::double precision", nil
	case time.Time:
		return text + "::timestamptz", nil
	}
	return text, nil
}

func sqlValue(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case time.Time:
		return x.UTC()
	}
	return v
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildWhere renders a filter as a WHERE clause with positional arguments starting at $start.
func BuildWhere(f repository.Filter, start int) (string, []any, error) {
	conds := f.Conditions()
	if len(conds) == 0 {
		return "", nil, nil
	}

	clauses := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	for _, c := range conds {
		expr, err := fieldExpr(c.Field, c.Value)
		if err != nil {
			return "", nil, err
		}
		placeholder := fmt.Sprintf("$%d", start+len(args))

		switch c.Op {
		case repository.OpEq:
			clauses = append(clauses, fmt.Sprintf("%s = %s", expr, placeholder))
			args = append(args, sqlValue(c.Value))
		case repository.OpNe:
			clauses = append(clauses, fmt.Sprintf("%s IS DISTINCT FROM %s", expr, placeholder))
			args = append(args, sqlValue(c.Value))
		case repository.OpContains:
			clauses = append(clauses, fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, expr, placeholder))
			args = append(args, "%"+likeEscaper.Replace(fmt.Sprint(c.Value))+"%")
		case repository.OpGte:
			clauses = append(clauses, fmt.Sprintf("%s >= %s", expr, placeholder))
			args = append(args, sqlValue(c.Value))
		case repository.OpLte:
			clauses = append(clauses, fmt.Sprintf("%s <= %s", expr, placeholder))
			args = append(args, sqlValue(c.Value))
		default:
			return "", nil, fmt.Errorf("unsupported operator %s", c.Op)
		}
	}

	return "WHERE " + strings.Join(clauses, " AND "), args, nil
}

// BuildOrderBy sorts JSONB fields by their jsonb value so numbers and strings both order naturally.
func BuildOrderBy(s repository.Sort) (string, error) {
	if s.Field == "" {
		s = repository.DefaultSort
	}
	dir := "DESC"
	if s.Ascending {
		dir = "ASC"
	}

	if s.Field == repository.FieldID {
		return fmt.Sprintf("ORDER BY id %s", dir), nil
	}

	expr, ok := columnFields[s.Field]
	if !ok {
		if !identPattern.MatchString(s.Field) {
			return "", fmt.Errorf("invalid sort field %q", s.Field)
		}
		expr = fmt.Sprintf("doc->'%s'", s.Field)
	}
	return fmt.Sprintf("ORDER BY %s %s, id %s", expr, dir, dir), nil
}
