package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mesero-api/internal/domain"
	"github.com/jhoicas/Mesero-api/internal/infrastructure/memory"
	"github.com/jhoicas/Mesero-api/internal/store"
)

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	docs := []store.Document{
		{"id": "1", "tenant_id": "t-1", "category": "bebidas", "price": "3.50", "available": true},
		{"id": "2", "tenant_id": "t-1", "category": "bebidas", "price": "4.00", "available": true},
		{"id": "3", "tenant_id": "t-1", "category": "postres", "price": "6.25", "available": false},
	}
	for _, d := range docs {
		require.NoError(t, s.Insert(context.Background(), "menu_items", d))
	}
	return s
}

func TestInsert_SinID_Rechazado(t *testing.T) {
	s := memory.NewStore()
	err := s.Insert(context.Background(), "menu_items", store.Document{"tenant_id": "t-1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInsert_SinTenant_Rechazado(t *testing.T) {
	s := memory.NewStore()
	err := s.Insert(context.Background(), "menu_items", store.Document{"id": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, store.FieldTenant, verr.Field)
}

func TestInsert_IDDuplicado_ErrDuplicate(t *testing.T) {
	s := seeded(t)
	err := s.Insert(context.Background(), "menu_items", store.Document{"id": "1", "tenant_id": "t-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestFindOne_SinCoincidencia_NilNil(t *testing.T) {
	s := seeded(t)
	doc, err := s.FindOne(context.Background(), "menu_items", store.ByID("zz"))
	require.NoError(t, err)
	assert.Nil(t, doc)
}

// Las lecturas devuelven clones: mutar el resultado no afecta lo persistido.
func TestFindOne_DevuelveClon(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	doc, err := s.FindOne(ctx, "menu_items", store.ByID("1"))
	require.NoError(t, err)
	doc["price"] = "999.99"

	again, err := s.FindOne(ctx, "menu_items", store.ByID("1"))
	require.NoError(t, err)
	assert.Equal(t, "3.50", again["price"])
}

func TestFindMany_FiltroPorIgualdad(t *testing.T) {
	s := seeded(t)
	docs, err := s.FindMany(context.Background(), "menu_items",
		store.Filter{"category": "bebidas"}, store.FindOptions{})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestFindMany_OrdenYPaginacion(t *testing.T) {
	s := seeded(t)
	docs, err := s.FindMany(context.Background(), "menu_items", store.Filter{},
		store.FindOptions{OrderBy: "price", Desc: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "3", docs[0].ID(), "el postre de 6.25 va primero")
	assert.Equal(t, "2", docs[1].ID())

	rest, err := s.FindMany(context.Background(), "menu_items", store.Filter{},
		store.FindOptions{OrderBy: "price", Desc: true, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "1", rest[0].ID())
}

func TestFindMany_OffsetFueraDeRango_Vacio(t *testing.T) {
	s := seeded(t)
	docs, err := s.FindMany(context.Background(), "menu_items", store.Filter{},
		store.FindOptions{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestUpdateOne_AplicaSoloAlPrimero(t *testing.T) {
	s := seeded(t)
	n, err := s.UpdateOne(context.Background(), "menu_items",
		store.Filter{"category": "bebidas"}, store.Update{"available": false})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err := s.Count(context.Background(), "menu_items",
		store.Filter{"category": "bebidas", "available": false})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUpdateMany_AplicaATodos(t *testing.T) {
	s := seeded(t)
	n, err := s.UpdateMany(context.Background(), "menu_items",
		store.Filter{"category": "bebidas"}, store.Update{"available": false})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestUpdate_ParcheInmutable_Rechazado(t *testing.T) {
	s := seeded(t)
	_, err := s.UpdateMany(context.Background(), "menu_items", store.Filter{},
		store.Update{"tenant_id": "t-2"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.UpdateOne(context.Background(), "menu_items", store.ByID("1"),
		store.Update{"id": "otro"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteOneYMany(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	n, err := s.DeleteOne(ctx, "menu_items", store.Filter{"category": "bebidas"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.DeleteMany(ctx, "menu_items", store.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	total, err := s.Count(ctx, "menu_items", store.Filter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestAggregate_Funciones(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	f := store.Filter{}

	sum, err := s.Aggregate(ctx, "menu_items", f, store.Aggregation{Func: store.AggSum, Field: "price"})
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.RequireFromString("13.75")), "sum = %s", sum)

	min, err := s.Aggregate(ctx, "menu_items", f, store.Aggregation{Func: store.AggMin, Field: "price"})
	require.NoError(t, err)
	assert.True(t, min.Equal(decimal.RequireFromString("3.50")))

	max, err := s.Aggregate(ctx, "menu_items", f, store.Aggregation{Func: store.AggMax, Field: "price"})
	require.NoError(t, err)
	assert.True(t, max.Equal(decimal.RequireFromString("6.25")))
}

func TestAggregate_ConjuntoVacio_Cero(t *testing.T) {
	s := memory.NewStore()
	sum, err := s.Aggregate(context.Background(), "menu_items", store.Filter{},
		store.Aggregation{Func: store.AggSum, Field: "price"})
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestSave_RegistroInexistente_ErrNotFound(t *testing.T) {
	s := memory.NewStore()
	err := s.Save(context.Background(), "menu_items", store.Document{"id": "zz"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSave_Sobrescribe(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "menu_items",
		store.Document{"id": "1", "tenant_id": "t-1", "category": "especial", "price": "9.99"}))

	doc, err := s.FindOne(ctx, "menu_items", store.ByID("1"))
	require.NoError(t, err)
	assert.Equal(t, "especial", doc["category"])
	assert.Equal(t, "9.99", doc["price"])
	assert.NotContains(t, doc, "available", "Save reemplaza el documento completo")
}
