package service

import (
	"context"
	"encoding/json"
	"fmt"

	"dos-azul-go/internal/config"
	"dos-azul-go/internal/model"
	"dos-azul-go/internal/repository"
	"dos-azul-go/pkg/log"
)

// BundleService 接口定义了数据包的只读操作。
type BundleService interface {
	Get(ctx context.Context, id string) (model.DataBundle, error)
	List(ctx context.Context, alias string, pageSize, pageToken int) ([]model.DataBundle, string, error)
}

type bundleService struct {
	repo  repository.AzulRepository
	index string
}

// NewBundleService 创建一个新的 BundleService 实例。
func NewBundleService(repo repository.AzulRepository, esCfg config.ElasticsearchConfig) BundleService {
	return &bundleService{repo: repo, index: esCfg.BundleIndex}
}

// Get 按 id 点查并映射为 DOS 数据包，映射后同样复核 id。
func (s *bundleService) Get(ctx context.Context, id string) (model.DataBundle, error) {
	hit, err := s.repo.MatchField(ctx, s.index, "id", id)
	if err != nil {
		return model.DataBundle{}, err
	}
	doc, err := decodeBundleDoc(hit)
	if err != nil {
		return model.DataBundle{}, err
	}
	bundle := AzulToBundle(doc)
	if bundle.ID != id {
		return model.DataBundle{}, fmt.Errorf("%w: id mismatch in results", model.ErrNotFound)
	}
	return bundle, nil
}

// List 分页列出数据包，alias 非空时按精确别名过滤。
func (s *bundleService) List(ctx context.Context, alias string, pageSize, pageToken int) ([]model.DataBundle, string, error) {
	body := BuildBundleListQuery(alias)
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
	bundles := make([]model.DataBundle, 0, len(hits))
	for _, hit := range hits {
		doc, err := decodeBundleDoc(hit)
		if err != nil {
			return nil, "", err
		}
		bundles = append(bundles, AzulToBundle(doc))
	}
	return bundles, nextToken, nil
}

func decodeBundleDoc(hit repository.RawHit) (model.BundleDoc, error) {
	var doc model.BundleDoc
	if err := json.Unmarshal(hit.Source, &doc); err != nil {
		log.Errorw("[BundleService] 无法解析数据包文档",
			"docID", hit.ID,
			"source", string(hit.Source),
			"error", err,
		)
		return model.BundleDoc{}, fmt.Errorf("%w: failed to decode bundle document: %v", model.ErrBackend, err)
	}
	return doc, nil
}
