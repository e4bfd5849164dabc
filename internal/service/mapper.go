// Package service 实现了 DOS 外部表示与内部索引文档之间的业务逻辑：
// 模式映射、列表查询构造、点查身份复核与别名合并更新。
package service

import (
	"fmt"
	"sort"
	"strings"

	"dos-azul-go/internal/model"
)

// AzulToObject 将索引文档转换为 DOS 数据对象。
// 索引中的时间戳始终是 UTC 但不带后缀，这里补上字面量 Z。
func AzulToObject(doc model.ObjectDoc) model.DataObject {
	urls := make([]model.URL, 0, len(doc.URLs))
	for _, u := range doc.URLs {
		urls = append(urls, model.URL{URL: u})
	}
	updated := doc.LastModified + "Z"
	return model.DataObject{
		ID:      doc.FileID,
		Name:    doc.Title,
		Size:    doc.FileSize,
		Created: updated,
		Updated: updated,
		Version: doc.FileVersion,
		Checksums: []model.Checksum{
			{Checksum: doc.FileMD5Sum, Type: "md5"},
		},
		URLs:    urls,
		Aliases: doc.Aliases,
	}
}

// ObjectToAzul 将 DOS 数据对象转换回索引文档。
// checksums 为空视为映射错误；索引只存 MD5，首个校验和类型不是 md5 时
// fileMd5sum 写入空串，数据丢失是被接受的行为而不是错误。
func ObjectToAzul(obj model.DataObject) (model.ObjectDoc, error) {
	if len(obj.Checksums) == 0 {
		return model.ObjectDoc{}, fmt.Errorf("%w: data object has no checksums", model.ErrBadRequest)
	}
	md5sum := ""
	if strings.EqualFold(obj.Checksums[0].Type, "md5") {
		md5sum = obj.Checksums[0].Checksum
	}
	// updated 可选，缺失时退回 created
	date := obj.Updated
	if date == "" {
		date = obj.Created
	}
	urls := make([]string, 0, len(obj.URLs))
	for _, u := range obj.URLs {
		urls = append(urls, u.URL)
	}
	return model.ObjectDoc{
		FileID:       obj.ID,
		Title:        obj.Name,
		FileSize:     obj.Size,
		LastModified: strings.TrimSuffix(date, "Z"),
		FileVersion:  obj.Version,
		FileMD5Sum:   md5sum,
		URLs:         urls,
		Aliases:      obj.Aliases,
	}, nil
}

// AzulToBundle 将索引文档转换为 DOS 数据包。
// 复合校验和串按第一个冒号拆成 {checksum, type}；
// 未建模的标量字段被投影为 "键:值" 形式的合成别名。
// 这个投影是有损的且上游顺序不稳定，这里按键排序以保证输出确定。
func AzulToBundle(doc model.BundleDoc) model.DataBundle {
	checksums := make([]model.Checksum, 0, len(doc.Checksums))
	for _, compound := range doc.Checksums {
		parts := strings.SplitN(compound, ":", 2)
		cs := model.Checksum{Checksum: parts[0]}
		if len(parts) == 2 {
			cs.Type = parts[1]
		}
		checksums = append(checksums, cs)
	}

	keys := make([]string, 0, len(doc.Extra))
	for k, v := range doc.Extra {
		if model.IsScalarValue(v) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	aliases := make([]string, 0, len(keys))
	for _, k := range keys {
		aliases = append(aliases, k+":"+model.ScalarString(doc.Extra[k]))
	}

	return model.DataBundle{
		ID:            doc.ID,
		DataObjectIDs: doc.DataObjectIDs,
		Created:       doc.Created + "Z",
		Updated:       doc.Updated + "Z",
		Version:       doc.Version,
		Checksums:     checksums,
		Description:   doc.Description,
		Aliases:       aliases,
	}
}
