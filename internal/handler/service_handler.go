package handler

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"

	"dos-azul-go/internal/repository"
)

//go:embed swagger.json
var swaggerJSON []byte

// ServiceHandler 处理与具体数据无关的服务级路由：
// 根路由连通性探测、令牌探测、服务描述与 API 文档。
type ServiceHandler struct {
	repo        repository.AzulRepository
	accessToken string
}

// NewServiceHandler 创建一个新的 ServiceHandler 实例。
func NewServiceHandler(repo repository.AzulRepository, accessToken string) *ServiceHandler {
	return &ServiceHandler{repo: repo, accessToken: accessToken}
}

// Index 处理 GET /，透传后端集群信息作为连通性探测。
func (h *ServiceHandler) Index(c *gin.Context) {
	info, err := h.repo.Info(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// TestToken 处理 GET|POST /test_token，返回共享密钥是否有效。
// 密钥无效时正文相同但状态码为 401。
func (h *ServiceHandler) TestToken(c *gin.Context) {
	authorized := c.GetHeader("access_token") == h.accessToken
	status := http.StatusOK
	if !authorized {
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"authorized": authorized})
}

// ServiceInfo 处理 GET /service-info，返回静态的服务描述。
func (h *ServiceHandler) ServiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "dos-azul-go",
		"version":     "0.4.0",
		"description": "A microservice exposing the Data Object Service schema over an Azul-style document index.",
	})
}

// Swagger 处理 GET /swagger.json，返回内嵌的 API 描述。
func (h *ServiceHandler) Swagger(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", swaggerJSON)
}
