package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dos-azul-go/internal/model"
)

// newTestRepo 让 ES 客户端指向一个假的后端。
// v8 客户端会校验产品响应头，伪造响应时必须带上。
func newTestRepo(t *testing.T, handler http.HandlerFunc) AzulRepository {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewAzulRepository(client)
}

func TestSearchDecodesHits(t *testing.T) {
	var gotPath, gotBody string
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(`{
			"hits": {"hits": [
				{"_id": "d1", "_source": {"file_id": "obj-1"}},
				{"_id": "d2", "_source": {"file_id": "obj-2"}}
			]}
		}`))
	})

	body := map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
	}
	hits, err := repo.Search(context.Background(), "fb_index", body, 11, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "d1", hits[0].ID)
	assert.JSONEq(t, `{"file_id": "obj-1"}`, string(hits[0].Source))

	assert.Contains(t, gotPath, "/fb_index/_search")
	assert.Contains(t, gotPath, "size=11")
	assert.Contains(t, gotPath, "from=10")
	assert.Contains(t, gotBody, "match_all")
}

func TestMatchFieldNoResults(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits": {"hits": []}}`))
	})

	_, err := repo.MatchField(context.Background(), "fb_index", "file_id", "missing")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestMatchFieldReturnsFirstHit(t *testing.T) {
	var gotBody string
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(`{"hits": {"hits": [{"_id": "d1", "_source": {"file_id": "obj-1"}}]}}`))
	})

	hit, err := repo.MatchField(context.Background(), "fb_index", "file_id", "obj-1")
	require.NoError(t, err)
	assert.Equal(t, "d1", hit.ID)

	// 点查是包在 bool/must 里的 term 匹配
	var query map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(gotBody), &query))
	must := query["query"].(map[string]interface{})["bool"].(map[string]interface{})["must"].(map[string]interface{})
	assert.Equal(t, "obj-1", must["term"].(map[string]interface{})["file_id"])
}

func TestSearchBackendErrorStatus(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	})

	_, err := repo.Search(context.Background(), "fb_index", map[string]interface{}{}, 10, 0)
	assert.True(t, errors.Is(err, model.ErrBackend))
}

// 响应不符合预期信封结构时归类为后端错误，与未找到严格区分。
func TestSearchMalformedEnvelope(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`this is not json`))
	})

	_, err := repo.Search(context.Background(), "fb_index", map[string]interface{}{}, 10, 0)
	assert.True(t, errors.Is(err, model.ErrBackend))
	assert.False(t, errors.Is(err, model.ErrNotFound))
}

func TestUpdateFields(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(`{"result": "updated"}`))
	})

	err := repo.UpdateFields(context.Background(), "fb_index", "d1", map[string]interface{}{
		"aliases": []string{"a:1", "b:2"},
		"b":       "2",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/fb_index/_update/d1", gotPath)
	assert.JSONEq(t, `{"doc": {"aliases": ["a:1", "b:2"], "b": "2"}}`, gotBody)
}

func TestUpdateFieldsBackendError(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error": "unavailable"}`))
	})

	err := repo.UpdateFields(context.Background(), "fb_index", "d1", map[string]interface{}{"a": "1"})
	assert.True(t, errors.Is(err, model.ErrBackend))
}

func TestInfo(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"version": {"number": "8.19.0"}, "cluster_name": "azul"}`))
	})

	info, err := repo.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "azul", info["cluster_name"])
}
