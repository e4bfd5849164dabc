package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"dos-azul-go/internal/config"
	"dos-azul-go/internal/model"
	"dos-azul-go/internal/repository"
	"dos-azul-go/pkg/log"
)

// 允许别名命名空间覆盖的既有文档字段。除此之外，
// 命名空间与既有标量字段同名的别名更新一律拒绝。
var overridableNamespaces = map[string]struct{}{
	"doi": {},
}

// ObjectService 接口定义了数据对象的读取与更新操作。
type ObjectService interface {
	Get(ctx context.Context, id string) (model.DataObject, error)
	List(ctx context.Context, filter ListObjectFilter, pageSize, pageToken int) ([]model.DataObject, string, error)
	Update(ctx context.Context, id string, obj model.DataObject) (string, error)
}

type objectService struct {
	repo  repository.AzulRepository
	index string
}

// NewObjectService 创建一个新的 ObjectService 实例。
func NewObjectService(repo repository.AzulRepository, esCfg config.ElasticsearchConfig) ObjectService {
	return &objectService{repo: repo, index: esCfg.ObjectIndex}
}

// Get 按 file_id 点查并映射为 DOS 数据对象。
// file_id 在索引里是全文分析字段，term 匹配可能命中分词恰好相同的无关文档，
// 所以映射之后必须复核 id；不一致按未找到处理，而不是服务端错误。
func (s *objectService) Get(ctx context.Context, id string) (model.DataObject, error) {
	hit, err := s.repo.MatchField(ctx, s.index, "file_id", id)
	if err != nil {
		return model.DataObject{}, err
	}
	doc, err := decodeObjectDoc(hit)
	if err != nil {
		return model.DataObject{}, err
	}
	obj := AzulToObject(doc)
	if obj.ID != id {
		return model.DataObject{}, fmt.Errorf("%w: id mismatch in results", model.ErrNotFound)
	}
	return obj, nil
}

// List 按过滤条件分页列出数据对象。
// 返回值第二项是 next_page_token，没有下一页时为空串。
func (s *objectService) List(ctx context.Context, filter ListObjectFilter, pageSize, pageToken int) ([]model.DataObject, string, error) {
	body, empty := BuildObjectListQuery(filter)
	if empty {
		// 索引只存 MD5，其他 checksum_type 必然没有结果
		return []model.DataObject{}, "", nil
	}

	size, from := PageWindow(pageSize, pageToken)
	hits, err := s.repo.Search(ctx, s.index, body, size, from)
	if err != nil {
		return nil, "", err
	}

	nextToken := ""
	if len(hits) > pageSize {
		hits = hits[:pageSize]
		nextToken = fmt.Sprintf("%d", pageToken+1)
	}
	objects := make([]model.DataObject, 0, len(hits))
	for _, hit := range hits {
		doc, err := decodeObjectDoc(hit)
		if err != nil {
			return nil, "", err
		}
		objects = append(objects, AzulToObject(doc))
	}
	return objects, nextToken, nil
}

// Update 将客户端提交的数据对象合并进既有文档。
// 请求体先过一遍模式映射做形状校验，但只有别名会落盘（别名合并变体）。
func (s *objectService) Update(ctx context.Context, id string, obj model.DataObject) (string, error) {
	// 形状校验：空 checksums 属于客户端错误
	if _, err := ObjectToAzul(obj); err != nil {
		return "", err
	}

	hit, err := s.repo.MatchField(ctx, s.index, "file_id", id)
	if errors.Is(err, model.ErrNotFound) {
		return "", fmt.Errorf("%w: data object not found", model.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	doc, err := decodeObjectDoc(hit)
	if err != nil {
		return "", err
	}
	if doc.FileID != id {
		return "", fmt.Errorf("%w: data object not found", model.ErrNotFound)
	}

	fields, err := reconcileAliases(doc, obj.Aliases)
	if err != nil {
		return "", err
	}
	if len(fields) == 0 {
		// 没有新增别名，无需写入
		log.Infof("[ObjectService] 更新请求未携带新别名, id: %s", id)
		return id, nil
	}

	if err := s.repo.UpdateFields(ctx, s.index, hit.ID, fields); err != nil {
		return "", err
	}
	log.Infof("[ObjectService] 别名合并完成, id: %s", id)
	return id, nil
}

// reconcileAliases 计算别名合并后需要落盘的字段集合。
// 新别名 = 请求别名 − 既有别名（保持请求顺序）。每个新别名必须是
// "命名空间:值" 的形式；命名空间与既有非别名标量字段同名且不在允许
// 覆盖名单中时拒绝整个请求，不允许客户端别名静默覆盖既有数据。
// 同一请求内多个新别名共用命名空间时按迭代顺序后者生效（last-write-wins）。
func reconcileAliases(doc model.ObjectDoc, requested []string) (map[string]interface{}, error) {
	existing := make(map[string]struct{}, len(doc.Aliases))
	for _, a := range doc.Aliases {
		existing[a] = struct{}{}
	}

	var newAliases []string
	for _, a := range requested {
		if _, ok := existing[a]; !ok {
			newAliases = append(newAliases, a)
		}
	}
	if len(newAliases) == 0 {
		return nil, nil
	}

	fields := make(map[string]interface{}, len(newAliases)+1)
	for _, a := range newAliases {
		parts := strings.SplitN(a, ":", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("%w: alias %q is not namespaced (expected namespace:value)", model.ErrBadRequest, a)
		}
		namespace, value := parts[0], parts[1]
		if _, ok := overridableNamespaces[namespace]; !ok && doc.HasScalarField(namespace) {
			return nil, fmt.Errorf("%w: alias namespace %q collides with an existing document field", model.ErrBadRequest, namespace)
		}
		fields[namespace] = value
	}

	merged := make([]string, 0, len(doc.Aliases)+len(newAliases))
	merged = append(merged, doc.Aliases...)
	merged = append(merged, newAliases...)
	fields["aliases"] = merged
	return fields, nil
}

// decodeObjectDoc 把原始命中解码为 ObjectDoc。
// 后端给出的文档无法解析属于后端侧问题，按 ErrBackend 处理。
func decodeObjectDoc(hit repository.RawHit) (model.ObjectDoc, error) {
	var doc model.ObjectDoc
	if err := json.Unmarshal(hit.Source, &doc); err != nil {
		log.Errorw("[ObjectService] 无法解析数据对象文档",
			"docID", hit.ID,
			"source", string(hit.Source),
			"error", err,
		)
		return model.ObjectDoc{}, fmt.Errorf("%w: failed to decode object document: %v", model.ErrBackend, err)
	}
	return doc, nil
}
