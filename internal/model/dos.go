package model

// Checksum 是 DOS 规范中的校验和条目。
type Checksum struct {
	Checksum string `json:"checksum"`
	Type     string `json:"type"`
}

// URL 是 DOS 规范中的下载地址条目。
type URL struct {
	URL string `json:"url"`
}

// DataObject 是 DOS 对外的数据对象表示。
// 时间戳为 ISO-8601 UTC 字符串，始终带 Z 后缀；此处按不透明字符串处理。
type DataObject struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Size      string     `json:"size"`
	Created   string     `json:"created"`
	Updated   string     `json:"updated"`
	Version   string     `json:"version"`
	Checksums []Checksum `json:"checksums"`
	URLs      []URL      `json:"urls"`
	Aliases   []string   `json:"aliases"`
}

// DataBundle 是 DOS 对外的数据包表示。
type DataBundle struct {
	ID            string     `json:"id"`
	DataObjectIDs []string   `json:"data_object_ids"`
	Created       string     `json:"created"`
	Updated       string     `json:"updated"`
	Version       string     `json:"version"`
	Checksums     []Checksum `json:"checksums"`
	Description   string     `json:"description,omitempty"`
	Aliases       []string   `json:"aliases"`
}
