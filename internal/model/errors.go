// Package model 定义了 DOS 对外数据结构与内部索引文档结构。
package model

import "errors"

// 封闭的错误类别集合。路由层通过 errors.Is 判断类别并映射为 HTTP 状态码，
// 除此之外不允许出现新的对外错误类别。
var (
	// ErrNotFound 表示查询没有命中文档，或命中后身份复核失败。属于正常的用户行为，不按错误记录日志。
	ErrNotFound = errors.New("not found")
	// ErrBadRequest 表示客户端请求体或参数不合法。
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized 表示共享密钥缺失或不匹配。
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBackend 表示后端返回了无法理解的响应，在发现处记录完整上下文。
	ErrBackend = errors.New("backend error")
	// ErrConfiguration 表示启动所需的配置缺失，进程拒绝启动。
	ErrConfiguration = errors.New("configuration error")
)
