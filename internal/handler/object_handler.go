package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"dos-azul-go/internal/model"
	"dos-azul-go/internal/service"
	"dos-azul-go/pkg/log"
)

// ObjectHandler 结构体定义了数据对象相关的处理器。
type ObjectHandler struct {
	objectService service.ObjectService
}

// NewObjectHandler 创建一个新的 ObjectHandler 实例。
func NewObjectHandler(objectService service.ObjectService) *ObjectHandler {
	return &ObjectHandler{objectService: objectService}
}

// Get 处理 GET /dataobjects/:data_object_id。
func (h *ObjectHandler) Get(c *gin.Context) {
	id := c.Param("data_object_id")
	obj, err := h.objectService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data_object": obj})
}

// List 处理 GET /dataobjects，支持 alias/checksum/url/checksum_type 过滤与分页。
func (h *ObjectHandler) List(c *gin.Context) {
	filter := service.ListObjectFilter{
		Alias:        c.Query("alias"),
		Checksum:     c.Query("checksum"),
		URL:          c.Query("url"),
		ChecksumType: c.Query("checksum_type"),
	}
	pageSize, pageToken := parsePaging(c)

	objects, nextToken, err := h.objectService.List(c.Request.Context(), filter, pageSize, pageToken)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{"data_objects": objects}
	if nextToken != "" {
		resp["next_page_token"] = nextToken
	}
	c.JSON(http.StatusOK, resp)
}

// updateObjectRequest 是 PUT 请求体的信封结构。
type updateObjectRequest struct {
	DataObject *model.DataObject `json:"data_object"`
}

// Update 处理 PUT /dataobjects/:data_object_id（别名合并）。
func (h *ObjectHandler) Update(c *gin.Context) {
	id := c.Param("data_object_id")

	var req updateObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DataObject == nil {
		log.Warnf("[ObjectHandler] 更新请求体缺少 data_object, id: %s", id)
		writeError(c, fmt.Errorf("%w: please add a data_object to the body of your request", model.ErrBadRequest))
		return
	}

	updatedID, err := h.objectService.Update(c.Request.Context(), id, *req.DataObject)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data_object_id": updatedID})
}
