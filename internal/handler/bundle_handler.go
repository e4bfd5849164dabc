package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dos-azul-go/internal/service"
)

// BundleHandler 结构体定义了数据包相关的处理器。
type BundleHandler struct {
	bundleService service.BundleService
}

// NewBundleHandler 创建一个新的 BundleHandler 实例。
func NewBundleHandler(bundleService service.BundleService) *BundleHandler {
	return &BundleHandler{bundleService: bundleService}
}

// Get 处理 GET /databundles/:data_bundle_id。
func (h *BundleHandler) Get(c *gin.Context) {
	id := c.Param("data_bundle_id")
	bundle, err := h.bundleService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data_bundle": bundle})
}

// List 处理 GET /databundles，支持 alias 过滤与分页。
func (h *BundleHandler) List(c *gin.Context) {
	alias := c.Query("alias")
	pageSize, pageToken := parsePaging(c)

	bundles, nextToken, err := h.bundleService.List(c.Request.Context(), alias, pageSize, pageToken)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{"data_bundles": bundles}
	if nextToken != "" {
		resp["next_page_token"] = nextToken
	}
	c.JSON(http.StatusOK, resp)
}
