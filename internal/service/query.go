package service

import "strings"

// ListObjectFilter 是数据对象列表接口支持的过滤条件，空字符串表示未提供。
type ListObjectFilter struct {
	Alias        string
	Checksum     string
	URL          string
	ChecksumType string
}

// HasTermFilter 报告是否存在需要构造 term 条件的过滤字段。
func (f ListObjectFilter) HasTermFilter() bool {
	return f.Alias != "" || f.Checksum != "" || f.URL != ""
}

// BuildObjectListQuery 按过滤条件构造数据对象列表的查询体。
// 多个条件之间是逻辑与；匹配一律走 .keyword 精确字段而不是全文分析。
// 索引只存 MD5，checksum_type 给出且不是 md5（不区分大小写）时直接
// 走空结果捷径（empty=true），不向后端发请求，其他过滤条件无关紧要。
func BuildObjectListQuery(f ListObjectFilter) (body map[string]interface{}, empty bool) {
	if f.ChecksumType != "" && !strings.EqualFold(f.ChecksumType, "md5") {
		return nil, true
	}
	if !f.HasTermFilter() {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		}, false
	}

	filters := []map[string]interface{}{}
	if f.Alias != "" {
		filters = append(filters, termFilter("aliases.keyword", f.Alias))
	}
	if f.Checksum != "" {
		filters = append(filters, termFilter("fileMd5sum.keyword", f.Checksum))
	}
	if f.URL != "" {
		filters = append(filters, termFilter("urls.keyword", f.URL))
	}
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": filters},
		},
	}, false
}

// BuildBundleListQuery 构造数据包列表的查询体，只支持 alias 过滤。
func BuildBundleListQuery(alias string) map[string]interface{} {
	if alias == "" {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}
	return map[string]interface{}{
		"query": termFilter("aliases.keyword", alias),
	}
}

// PageWindow 把分页令牌换算成检索窗口。
// 令牌是以 pageSize 为单位的文档偏移量而不是游标位置，因此两次请求之间
// 改变 page_size 会静默移动有效窗口——这是沿袭下来的已记录行为，不是缺陷。
// 额外多取一条用来判断是否存在下一页。
func PageWindow(pageSize, pageToken int) (size, from int) {
	return pageSize + 1, pageToken * pageSize
}

func termFilter(field, value string) map[string]interface{} {
	return map[string]interface{}{
		"term": map[string]interface{}{
			field: map[string]interface{}{"value": value},
		},
	}
}
