// Package es 提供了与 Elasticsearch 交互的客户端构造。
// 索引的创建与字段布局由外部索引管道负责，本服务只读文档并做局部更新，
// 因此这里不做任何索引的建立或校验。
package es

import (
	"crypto/tls"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"

	"dos-azul-go/internal/config"
)

// NewClient 按配置构造 Elasticsearch 客户端。
func NewClient(esCfg config.ElasticsearchConfig) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esCfg.Host},
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	return elasticsearch.NewClient(cfg)
}
