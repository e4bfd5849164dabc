package model

import (
	"bytes"
	"encoding/json"
)

// 数据对象文档中由索引管道固定下来的标量字段名。
// 别名更新的命名空间不允许覆盖这些键（除非在允许覆盖名单中）。
var objectDocScalarFields = map[string]struct{}{
	"file_id":      {},
	"title":        {},
	"fileSize":     {},
	"lastModified": {},
	"file_version": {},
	"fileMd5sum":   {},
}

// ObjectDoc 是数据对象在搜索索引中的扁平文档结构。
// 已建模字段之外的顶层字段会被原样收集到 Extra 中，
// 供别名合并时做受保护键检查。
type ObjectDoc struct {
	FileID       string
	Title        string
	FileSize     string
	LastModified string
	FileVersion  string
	FileMD5Sum   string
	URLs         []string
	Aliases      []string
	Extra        map[string]interface{}
}

// UnmarshalJSON 将索引返回的原始文档解析为 ObjectDoc。
// 数值使用 json.Number 解析，fileSize 统一收敛为字符串（缺失时为空串）。
func (d *ObjectDoc) UnmarshalJSON(data []byte) error {
	raw, err := decodeRawDoc(data)
	if err != nil {
		return err
	}
	d.FileID = takeString(raw, "file_id")
	d.Title = takeString(raw, "title")
	d.FileSize = takeString(raw, "fileSize")
	d.LastModified = takeString(raw, "lastModified")
	d.FileVersion = takeString(raw, "file_version")
	d.FileMD5Sum = takeString(raw, "fileMd5sum")
	d.URLs = takeStringSlice(raw, "urls")
	d.Aliases = takeStringSlice(raw, "aliases")
	d.Extra = raw
	return nil
}

// MarshalJSON 按索引管道约定的字段名输出文档。
func (d ObjectDoc) MarshalJSON() ([]byte, error) {
	raw := make(map[string]interface{}, len(d.Extra)+8)
	for k, v := range d.Extra {
		raw[k] = v
	}
	raw["file_id"] = d.FileID
	raw["title"] = d.Title
	raw["fileSize"] = d.FileSize
	raw["lastModified"] = d.LastModified
	raw["file_version"] = d.FileVersion
	raw["fileMd5sum"] = d.FileMD5Sum
	raw["urls"] = d.URLs
	raw["aliases"] = d.Aliases
	return json.Marshal(raw)
}

// HasScalarField 报告 name 是否已作为标量字段存在于文档上。
// 多值字段（urls、aliases 以及 Extra 中的数组/对象）不算标量。
func (d ObjectDoc) HasScalarField(name string) bool {
	if _, ok := objectDocScalarFields[name]; ok {
		return true
	}
	v, ok := d.Extra[name]
	return ok && isScalar(v)
}

// BundleDoc 是数据包在搜索索引中的扁平文档结构。
// checksums 为 "哈希:算法" 形式的复合字符串；
// 未建模的标量字段之后会被投影为合成别名。
type BundleDoc struct {
	ID            string
	Version       string
	Checksums     []string
	Updated       string
	Created       string
	Description   string
	DataObjectIDs []string
	Extra         map[string]interface{}
}

func (d *BundleDoc) UnmarshalJSON(data []byte) error {
	raw, err := decodeRawDoc(data)
	if err != nil {
		return err
	}
	d.ID = takeString(raw, "id")
	d.Version = takeString(raw, "version")
	d.Checksums = takeStringSlice(raw, "checksums")
	d.Updated = takeString(raw, "updated")
	d.Created = takeString(raw, "created")
	d.Description = takeString(raw, "description")
	d.DataObjectIDs = takeStringSlice(raw, "data_object_ids")
	d.Extra = raw
	return nil
}

func (d BundleDoc) MarshalJSON() ([]byte, error) {
	raw := make(map[string]interface{}, len(d.Extra)+7)
	for k, v := range d.Extra {
		raw[k] = v
	}
	raw["id"] = d.ID
	raw["version"] = d.Version
	raw["checksums"] = d.Checksums
	raw["updated"] = d.Updated
	raw["created"] = d.Created
	raw["description"] = d.Description
	raw["data_object_ids"] = d.DataObjectIDs
	return json.Marshal(raw)
}

// decodeRawDoc 将文档解析为 map，数值保留为 json.Number 以避免精度和格式漂移。
func decodeRawDoc(data []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	raw := map[string]interface{}{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// takeString 从 raw 中取出 key 并收敛为字符串，随后从 raw 中删除该键。
func takeString(raw map[string]interface{}, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	delete(raw, key)
	return ScalarString(v)
}

// takeStringSlice 从 raw 中取出 key 对应的字符串数组，随后从 raw 中删除该键。
func takeStringSlice(raw map[string]interface{}, key string) []string {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, ScalarString(item))
	}
	return out
}

// ScalarString 将 JSON 标量统一表示为字符串。非标量返回空串。
func ScalarString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// IsScalarValue 报告 v 是否为 JSON 标量（字符串、数值或布尔）。
func IsScalarValue(v interface{}) bool {
	return isScalar(v)
}

func isScalar(v interface{}) bool {
	switch v.(type) {
	case string, json.Number, float64, bool:
		return true
	default:
		return false
	}
}
