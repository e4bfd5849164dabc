// Package config 负责从环境变量加载应用程序的配置。
// 配置在进程启动时读取一次，之后作为不可变结构体传递，不存在全局可变状态。
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"dos-azul-go/internal/model"
)

// 与历史部署保持一致的默认值。
const (
	DefaultRegion      = "us-west-2"
	DefaultAccessToken = "f4ce9d3d23f4ac9dfdc3c825608dc660"
)

// Config 是整个应用程序的配置结构体，各字段来自同名环境变量。
type Config struct {
	Server        ServerConfig
	Elasticsearch ElasticsearchConfig
	Auth          AuthConfig
}

// ServerConfig 存储 HTTP 服务相关的配置。
type ServerConfig struct {
	Port  string
	Debug bool
}

// ElasticsearchConfig 存储后端搜索集群与索引布局的配置。
// 索引与文档类型由外部索引管道固定，本服务不拥有它们。
type ElasticsearchConfig struct {
	Host          string
	Region        string
	Username      string
	Password      string
	ObjectIndex   string
	BundleIndex   string
	ObjectDoctype string
	BundleDoctype string
}

// AuthConfig 存储共享密钥认证的配置。只有静态密钥比对，没有用户体系。
type AuthConfig struct {
	AccessToken string
}

// Init 从环境变量读取配置并返回不可变的 Config。
// ES_HOST 为必填项，缺失时返回 ErrConfiguration，进程应当拒绝启动。
func Init() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ES_REGION", DefaultRegion)
	v.SetDefault("DATA_OBJ_INDEX", "fb_index")
	v.SetDefault("DATA_BDL_INDEX", "db_index")
	v.SetDefault("DATA_OBJ_DOCTYPE", "meta")
	v.SetDefault("DATA_BDL_DOCTYPE", "databundle")
	v.SetDefault("ACCESS_KEY", DefaultAccessToken)
	v.SetDefault("DEBUG", true)
	v.SetDefault("PORT", "8080")

	host := v.GetString("ES_HOST")
	if host == "" {
		return nil, fmt.Errorf("%w: 必须通过 ES_HOST 环境变量指定 Elasticsearch 实例地址", model.ErrConfiguration)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:  v.GetString("PORT"),
			Debug: v.GetBool("DEBUG"),
		},
		Elasticsearch: ElasticsearchConfig{
			Host:          host,
			Region:        v.GetString("ES_REGION"),
			Username:      v.GetString("ES_USERNAME"),
			Password:      v.GetString("ES_PASSWORD"),
			ObjectIndex:   v.GetString("DATA_OBJ_INDEX"),
			BundleIndex:   v.GetString("DATA_BDL_INDEX"),
			ObjectDoctype: v.GetString("DATA_OBJ_DOCTYPE"),
			BundleDoctype: v.GetString("DATA_BDL_DOCTYPE"),
		},
		Auth: AuthConfig{
			AccessToken: v.GetString("ACCESS_KEY"),
		},
	}
	return cfg, nil
}
