package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mesero-api/internal/domain"
	"github.com/jhoicas/Mesero-api/internal/store"
)

var _ store.Store = (*DocStore)(nil)

// DocStore implementa store.Store sobre PostgreSQL. Cada colección es una tabla
// con el mismo esquema: id (text pk), tenant_id (text null para registros
// legados) y data (jsonb) con el resto del documento.
type DocStore struct {
	q Querier
}

// NewDocStore construye el almacén de documentos. Pasar pool o tx (Querier).
func NewDocStore(q Querier) *DocStore {
	return &DocStore{q: q}
}

// payload extrae el documento sin los campos que son columnas propias.
func payload(doc store.Document) ([]byte, error) {
	data := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == store.FieldID || k == store.FieldTenant {
			continue
		}
		data[k] = v
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal documento: %w", err)
	}
	return b, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanDoc(row pgx.Row) (store.Document, error) {
	var (
		id     string
		tenant *string
		data   []byte
	)
	if err := row.Scan(&id, &tenant, &data); err != nil {
		return nil, err
	}
	doc := store.Document{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, (*map[string]any)(&doc)); err != nil {
			return nil, fmt.Errorf("unmarshal documento: %w", err)
		}
	}
	doc[store.FieldID] = id
	if tenant != nil {
		doc[store.FieldTenant] = *tenant
	}
	return doc, nil
}

// FindOne devuelve el primer documento que cumpla el filtro, o (nil, nil).
func (s *DocStore) FindOne(ctx context.Context, collection string, f store.Filter) (store.Document, error) {
	builder, err := selectBuilder(collection, f)
	if err != nil {
		return nil, err
	}
	query, args, err := builder.OrderBy("id ASC").Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find_one: %w", err)
	}
	doc, err := scanDoc(s.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find_one %s: %w", collection, err)
	}
	return doc, nil
}

// FindMany devuelve los documentos que cumplan el filtro, paginados.
func (s *DocStore) FindMany(ctx context.Context, collection string, f store.Filter, opts store.FindOptions) ([]store.Document, error) {
	builder, err := selectBuilder(collection, f)
	if err != nil {
		return nil, err
	}
	order, err := orderExpr(opts)
	if err != nil {
		return nil, err
	}
	if order == "" {
		order = "id ASC"
	}
	builder = builder.OrderBy(order)
	if opts.Limit > 0 {
		builder = builder.Limit(uint64(opts.Limit))
	}
	if opts.Offset > 0 {
		builder = builder.Offset(uint64(opts.Offset))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find_many: %w", err)
	}
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find_many %s: %w", collection, err)
	}
	defer rows.Close()

	docs := make([]store.Document, 0)
	for rows.Next() {
		doc, err := scanDoc(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// updateWhere ejecuta UPDATE data = data || patch sobre los ids que cumplan el
// filtro; limitOne restringe a un solo registro vía subquery.
func (s *DocStore) updateWhere(ctx context.Context, collection string, f store.Filter, u store.Update, limitOne bool) (int64, error) {
	if _, ok := u[store.FieldTenant]; ok {
		return 0, &domain.ValidationError{Collection: collection, Field: store.FieldTenant, Reason: "es inmutable"}
	}
	if _, ok := u[store.FieldID]; ok {
		return 0, &domain.ValidationError{Collection: collection, Field: store.FieldID, Reason: "es inmutable"}
	}
	if err := checkIdent(collection); err != nil {
		return 0, err
	}
	patch, err := json.Marshal(map[string]any(u))
	if err != nil {
		return 0, fmt.Errorf("marshal patch: %w", err)
	}
	pred, err := predicate(f)
	if err != nil {
		return 0, err
	}

	builder := psql.Update(collection).Set("data", sq.Expr("data || ?::jsonb", patch))
	if limitOne {
		// La subquery se renderiza con placeholders `?`: la conversión a $n la
		// hace el ToSql del builder exterior sobre el statement completo. Si se
		// renderizara ya dolarizada, la numeración chocaría con el arg del Set.
		sub := sq.Select("id").From(collection).Where(pred).OrderBy("id ASC").Limit(1)
		subSQL, subArgs, err := sub.ToSql()
		if err != nil {
			return 0, fmt.Errorf("build subquery: %w", err)
		}
		builder = builder.Where(sq.Expr("id IN ("+subSQL+")", subArgs...))
	} else {
		builder = builder.Where(pred)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}
	tag, err := s.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", collection, err)
	}
	return tag.RowsAffected(), nil
}

// UpdateOne aplica el parche a lo sumo a un documento.
func (s *DocStore) UpdateOne(ctx context.Context, collection string, f store.Filter, u store.Update) (int64, error) {
	return s.updateWhere(ctx, collection, f, u, true)
}

// UpdateMany aplica el parche a todos los documentos coincidentes.
func (s *DocStore) UpdateMany(ctx context.Context, collection string, f store.Filter, u store.Update) (int64, error) {
	return s.updateWhere(ctx, collection, f, u, false)
}

func (s *DocStore) deleteWhere(ctx context.Context, collection string, f store.Filter, limitOne bool) (int64, error) {
	if err := checkIdent(collection); err != nil {
		return 0, err
	}
	pred, err := predicate(f)
	if err != nil {
		return 0, err
	}
	builder := psql.Delete(collection)
	if limitOne {
		// Placeholders `?` en la subquery; el builder exterior numera $n. Ver updateWhere.
		sub := sq.Select("id").From(collection).Where(pred).OrderBy("id ASC").Limit(1)
		subSQL, subArgs, err := sub.ToSql()
		if err != nil {
			return 0, fmt.Errorf("build subquery: %w", err)
		}
		builder = builder.Where(sq.Expr("id IN ("+subSQL+")", subArgs...))
	} else {
		builder = builder.Where(pred)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	tag, err := s.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", collection, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteOne elimina a lo sumo un documento coincidente.
func (s *DocStore) DeleteOne(ctx context.Context, collection string, f store.Filter) (int64, error) {
	return s.deleteWhere(ctx, collection, f, true)
}

// DeleteMany elimina todos los documentos coincidentes.
func (s *DocStore) DeleteMany(ctx context.Context, collection string, f store.Filter) (int64, error) {
	return s.deleteWhere(ctx, collection, f, false)
}

// Count cuenta los documentos coincidentes.
func (s *DocStore) Count(ctx context.Context, collection string, f store.Filter) (int64, error) {
	if err := checkIdent(collection); err != nil {
		return 0, err
	}
	pred, err := predicate(f)
	if err != nil {
		return 0, err
	}
	query, args, err := psql.Select("COUNT(*)").From(collection).Where(pred).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var n int64
	if err := s.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

// Aggregate agrega un campo numérico del jsonb. Conjunto vacío: cero.
func (s *DocStore) Aggregate(ctx context.Context, collection string, f store.Filter, agg store.Aggregation) (decimal.Decimal, error) {
	if err := checkIdent(collection); err != nil {
		return decimal.Zero, err
	}
	expr, err := aggExpr(agg)
	if err != nil {
		return decimal.Zero, err
	}
	pred, err := predicate(f)
	if err != nil {
		return decimal.Zero, err
	}
	query, args, err := psql.Select(expr).From(collection).Where(pred).ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("build aggregate: %w", err)
	}
	var result decimal.Decimal
	if err := s.q.QueryRow(ctx, query, args...).Scan(&result); err != nil {
		return decimal.Zero, fmt.Errorf("aggregate %s: %w", collection, err)
	}
	return result, nil
}

// Insert persiste un documento nuevo. tenant_id es obligatorio (fail-closed).
func (s *DocStore) Insert(ctx context.Context, collection string, doc store.Document) error {
	if doc.ID() == "" {
		return &domain.ValidationError{Collection: collection, Field: store.FieldID, Reason: "es obligatorio"}
	}
	if doc.TenantID() == "" {
		return &domain.ValidationError{Collection: collection, Field: store.FieldTenant, Reason: "es obligatorio"}
	}
	if err := checkIdent(collection); err != nil {
		return err
	}
	data, err := payload(doc)
	if err != nil {
		return err
	}
	query, args, err := psql.Insert(collection).
		Columns("id", "tenant_id", "data").
		Values(doc.ID(), doc.TenantID(), data).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", collection, err)
	}
	return nil
}

// Save sobrescribe un documento existente por id.
func (s *DocStore) Save(ctx context.Context, collection string, doc store.Document) error {
	if doc.ID() == "" {
		return &domain.ValidationError{Collection: collection, Field: store.FieldID, Reason: "es obligatorio"}
	}
	if err := checkIdent(collection); err != nil {
		return err
	}
	data, err := payload(doc)
	if err != nil {
		return err
	}
	query, args, err := psql.Update(collection).
		Set("tenant_id", nullIfEmpty(doc.TenantID())).
		Set("data", data).
		Where(sq.Eq{"id": doc.ID()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build save: %w", err)
	}
	tag, err := s.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save %s: %w", collection, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
