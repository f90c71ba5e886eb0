package postgres

import (
	"fmt"
	"regexp"
	"sort"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/Mesero-api/internal/store"
)

// psql builder con placeholders $n de PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// identRe identificadores admitidos para colecciones y campos que se
// interpolan en el SQL (nombres internos, nunca entrada del usuario).
var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func checkIdent(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("identificador inválido: %q", name)
	}
	return nil
}

// sortedFields claves del filtro en orden estable, para SQL determinista.
func sortedFields(f store.Filter) []string {
	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// predicate compila un store.Filter a un predicado SQL. id y tenant_id son
// columnas propias; el resto de los campos viven dentro de data (jsonb) y se
// comparan por su representación textual.
func predicate(f store.Filter) (sq.Sqlizer, error) {
	if len(f) == 0 {
		return sq.Expr("TRUE"), nil
	}
	and := make(sq.And, 0, len(f))
	for _, field := range sortedFields(f) {
		v := f[field]
		switch field {
		case store.FieldID:
			and = append(and, sq.Eq{"id": v})
		case store.FieldTenant:
			and = append(and, sq.Eq{"tenant_id": v})
		default:
			if err := checkIdent(field); err != nil {
				return nil, err
			}
			and = append(and, sq.Expr("data->>? = ?", field, fmt.Sprint(v)))
		}
	}
	return and, nil
}

// orderExpr expresión de orden para FindOptions.
func orderExpr(opts store.FindOptions) (string, error) {
	if opts.OrderBy == "" {
		return "", nil
	}
	var col string
	switch opts.OrderBy {
	case store.FieldID:
		col = "id"
	case store.FieldTenant:
		col = "tenant_id"
	default:
		if err := checkIdent(opts.OrderBy); err != nil {
			return "", err
		}
		col = fmt.Sprintf("data->>'%s'", opts.OrderBy)
	}
	if opts.Desc {
		return col + " DESC", nil
	}
	return col + " ASC", nil
}

// selectBuilder arma el SELECT base de una colección.
func selectBuilder(collection string, f store.Filter) (sq.SelectBuilder, error) {
	if err := checkIdent(collection); err != nil {
		return sq.SelectBuilder{}, err
	}
	pred, err := predicate(f)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	return psql.Select("id", "tenant_id", "data").From(collection).Where(pred), nil
}

// aggExpr expresión SQL de la agregación sobre un campo del jsonb.
func aggExpr(agg store.Aggregation) (string, error) {
	if err := checkIdent(agg.Field); err != nil {
		return "", err
	}
	var fn string
	switch agg.Func {
	case store.AggSum:
		fn = "SUM"
	case store.AggAvg:
		fn = "AVG"
	case store.AggMin:
		fn = "MIN"
	case store.AggMax:
		fn = "MAX"
	default:
		return "", fmt.Errorf("función de agregación desconocida: %q", agg.Func)
	}
	return fmt.Sprintf("COALESCE(%s((data->>'%s')::numeric), 0)", fn, agg.Field), nil
}
