package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dos-azul-go/internal/model"
	"dos-azul-go/internal/repository"
)

func bundleHit(t *testing.T, id string) repository.RawHit {
	t.Helper()
	data, err := json.Marshal(map[string]interface{}{
		"id":              id,
		"version":         "1",
		"checksums":       []string{"abc123:md5"},
		"updated":         "2018-01-01T000000.000",
		"created":         "2017-01-01T000000.000",
		"data_object_ids": []string{"o1"},
		"project":         "CCLE",
	})
	require.NoError(t, err)
	return repository.RawHit{ID: "es-" + id, Source: data}
}

func TestBundleGet(t *testing.T) {
	repo := &fakeRepo{
		matchFieldFn: func(index, field, value string) (repository.RawHit, error) {
			assert.Equal(t, "db_index", index)
			assert.Equal(t, "id", field)
			return bundleHit(t, value), nil
		},
	}
	svc := NewBundleService(repo, testESConfig)

	bundle, err := svc.Get(context.Background(), "bdl-1")
	require.NoError(t, err)
	assert.Equal(t, "bdl-1", bundle.ID)
	assert.Equal(t, []string{"project:CCLE"}, bundle.Aliases)
}

func TestBundleGetIDMismatch(t *testing.T) {
	repo := &fakeRepo{
		matchFieldFn: func(string, string, string) (repository.RawHit, error) {
			return bundleHit(t, "unrelated"), nil
		},
	}
	svc := NewBundleService(repo, testESConfig)

	_, err := svc.Get(context.Background(), "bdl-1")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestBundleList(t *testing.T) {
	repo := &fakeRepo{
		searchFn: func(index string, body map[string]interface{}, size, from int) ([]repository.RawHit, error) {
			assert.Equal(t, "db_index", index)
			assert.Equal(t, 11, size)
			hits := make([]repository.RawHit, 0, size)
			for i := 0; i < size; i++ {
				hits = append(hits, bundleHit(t, fmt.Sprintf("bdl-%d", from+i)))
			}
			return hits, nil
		},
	}
	svc := NewBundleService(repo, testESConfig)

	bundles, token, err := svc.List(context.Background(), "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, bundles, 10)
	assert.Equal(t, "1", token)
}

func TestBundleListAliasFilter(t *testing.T) {
	repo := &fakeRepo{
		searchFn: func(_ string, body map[string]interface{}, _, _ int) ([]repository.RawHit, error) {
			term := body["query"].(map[string]interface{})["term"].(map[string]interface{})
			clause := term["aliases.keyword"].(map[string]interface{})
			assert.Equal(t, "project:CCLE", clause["value"])
			return []repository.RawHit{bundleHit(t, "bdl-1")}, nil
		},
	}
	svc := NewBundleService(repo, testESConfig)

	bundles, token, err := svc.List(context.Background(), "project:CCLE", 10, 0)
	require.NoError(t, err)
	assert.Len(t, bundles, 1)
	assert.Equal(t, "", token)
}
