// Package repository 封装了对后端搜索索引的访问。
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"dos-azul-go/internal/model"
	"dos-azul-go/pkg/log"
)

// RawHit 是一条未经类型化的命中结果，_source 的解码交给上层服务完成。
type RawHit struct {
	ID     string
	Source json.RawMessage
}

// AzulRepository 接口定义了本服务需要的全部索引操作：
// 点查、列表检索、局部字段更新与集群信息。
type AzulRepository interface {
	MatchField(ctx context.Context, index, field, value string) (RawHit, error)
	Search(ctx context.Context, index string, body map[string]interface{}, size, from int) ([]RawHit, error)
	UpdateFields(ctx context.Context, index, docID string, fields map[string]interface{}) error
	Info(ctx context.Context) (map[string]interface{}, error)
}

type azulRepository struct {
	client *elasticsearch.Client
}

// NewAzulRepository 创建一个新的 AzulRepository 实例。
func NewAzulRepository(client *elasticsearch.Client) AzulRepository {
	return &azulRepository{client: client}
}

// MatchField 在指定索引上做单字段 term 精确匹配，用于期望唯一结果的点查。
// 零命中返回 ErrNotFound；这类情况是用户请求了不存在的文档，不按错误记录日志。
// 注意被匹配的字段可能是全文分析字段，命中的文档未必就是请求的那一个，
// 调用方必须对映射结果的 id 做复核。
func (r *azulRepository) MatchField(ctx context.Context, index, field, value string) (RawHit, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"term": map[string]interface{}{field: value},
				},
			},
		},
	}
	hits, err := r.Search(ctx, index, body, 1, 0)
	if err != nil {
		return RawHit{}, err
	}
	if len(hits) < 1 {
		return RawHit{}, fmt.Errorf("%w: query returned no results", model.ErrNotFound)
	}
	return hits[0], nil
}

// Search 在指定索引上执行一次检索并返回命中列表。
// 后端返回错误状态或响应不符合预期的信封结构时，
// 在此处记录完整上下文并返回 ErrBackend。
func (r *azulRepository) Search(ctx context.Context, index string, body map[string]interface{}, size, from int) ([]RawHit, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		log.Errorf("[AzulRepository] 序列化查询体失败: %v", err)
		return nil, fmt.Errorf("failed to encode search body: %w", err)
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(index),
		r.client.Search.WithSize(size),
		r.client.Search.WithFrom(from),
		r.client.Search.WithBody(&buf),
	)
	if err != nil {
		log.Errorf("[AzulRepository] 向 Elasticsearch 发送检索请求失败, index: %s, error: %v", index, err)
		return nil, fmt.Errorf("%w: elasticsearch search failed: %v", model.ErrBackend, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		bodyBytes, _ := io.ReadAll(res.Body)
		log.Errorw("[AzulRepository] Elasticsearch 检索返回错误",
			"index", index,
			"status", res.Status(),
			"response", string(bodyBytes),
		)
		return nil, fmt.Errorf("%w: elasticsearch returned status %s", model.ErrBackend, res.Status())
	}

	var envelope struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		log.Errorw("[AzulRepository] 无法解析 Elasticsearch 响应",
			"index", index,
			"error", err,
		)
		return nil, fmt.Errorf("%w: failed to decode search response: %v", model.ErrBackend, err)
	}

	hits := make([]RawHit, 0, len(envelope.Hits.Hits))
	for _, h := range envelope.Hits.Hits {
		hits = append(hits, RawHit{ID: h.ID, Source: h.Source})
	}
	return hits, nil
}

// UpdateFields 对单个文档做局部字段更新（partial update），只写入给定的字段。
func (r *azulRepository) UpdateFields(ctx context.Context, index, docID string, fields map[string]interface{}) error {
	payload, err := json.Marshal(map[string]interface{}{"doc": fields})
	if err != nil {
		return fmt.Errorf("failed to encode update body: %w", err)
	}

	req := esapi.UpdateRequest{
		Index:      index,
		DocumentID: docID,
		Body:       bytes.NewReader(payload),
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		log.Errorf("[AzulRepository] 向 Elasticsearch 发送更新请求失败, index: %s, id: %s, error: %v", index, docID, err)
		return fmt.Errorf("%w: elasticsearch update failed: %v", model.ErrBackend, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		bodyBytes, _ := io.ReadAll(res.Body)
		log.Errorw("[AzulRepository] Elasticsearch 更新返回错误",
			"index", index,
			"id", docID,
			"status", res.Status(),
			"request", string(payload),
			"response", string(bodyBytes),
		)
		return fmt.Errorf("%w: elasticsearch returned status %s", model.ErrBackend, res.Status())
	}
	return nil
}

// Info 返回集群的基本信息，用于根路由的连通性探测。
func (r *azulRepository) Info(ctx context.Context) (map[string]interface{}, error) {
	res, err := r.client.Info(r.client.Info.WithContext(ctx))
	if err != nil {
		log.Errorf("[AzulRepository] 获取集群信息失败: %v", err)
		return nil, fmt.Errorf("%w: elasticsearch info failed: %v", model.ErrBackend, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: elasticsearch returned status %s", model.ErrBackend, res.Status())
	}

	info := map[string]interface{}{}
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		log.Errorf("[AzulRepository] 无法解析集群信息响应: %v", err)
		return nil, fmt.Errorf("%w: failed to decode info response: %v", model.ErrBackend, err)
	}
	return info, nil
}
