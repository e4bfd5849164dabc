package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectDocUnmarshal(t *testing.T) {
	raw := `{
		"file_id": "abc",
		"title": "样例文件",
		"fileSize": 2839,
		"lastModified": "2017-06-11T143528.074",
		"file_version": "v1",
		"fileMd5sum": "d41d8cd98f00b204e9800998ecf8427e",
		"urls": ["https://example.com/a", "s3://bucket/a"],
		"aliases": ["specimenUUID:1234"],
		"center_name": "BROAD",
		"program": "CCLE"
	}`

	var doc ObjectDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "abc", doc.FileID)
	assert.Equal(t, "样例文件", doc.Title)
	// 数值型 fileSize 收敛为十进制字符串
	assert.Equal(t, "2839", doc.FileSize)
	assert.Equal(t, "2017-06-11T143528.074", doc.LastModified)
	assert.Equal(t, "v1", doc.FileVersion)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", doc.FileMD5Sum)
	assert.Equal(t, []string{"https://example.com/a", "s3://bucket/a"}, doc.URLs)
	assert.Equal(t, []string{"specimenUUID:1234"}, doc.Aliases)

	// 未建模字段进入 Extra，已建模字段不残留
	assert.Len(t, doc.Extra, 2)
	assert.Contains(t, doc.Extra, "center_name")
	assert.Contains(t, doc.Extra, "program")
	assert.NotContains(t, doc.Extra, "file_id")
}

func TestObjectDocUnmarshalMissingFields(t *testing.T) {
	var doc ObjectDoc
	require.NoError(t, json.Unmarshal([]byte(`{"file_id": "x"}`), &doc))
	assert.Equal(t, "x", doc.FileID)
	assert.Equal(t, "", doc.FileSize)
	assert.Nil(t, doc.URLs)
	assert.Nil(t, doc.Aliases)
}

func TestObjectDocMarshalRoundTrip(t *testing.T) {
	doc := ObjectDoc{
		FileID:       "abc",
		Title:        "t",
		FileSize:     "10",
		LastModified: "2017-06-11T143528.074",
		FileVersion:  "v2",
		FileMD5Sum:   "sum",
		URLs:         []string{"u1"},
		Aliases:      []string{"a:1"},
		Extra:        map[string]interface{}{"center_name": "BROAD"},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var back ObjectDoc
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, doc.FileID, back.FileID)
	assert.Equal(t, doc.FileVersion, back.FileVersion)
	assert.Equal(t, doc.FileMD5Sum, back.FileMD5Sum)
	assert.Equal(t, "BROAD", back.Extra["center_name"])
}

func TestObjectDocHasScalarField(t *testing.T) {
	var doc ObjectDoc
	require.NoError(t, json.Unmarshal([]byte(`{
		"file_id": "x",
		"center_name": "BROAD",
		"donor_count": 3,
		"tags": ["a", "b"]
	}`), &doc))

	// 固定标量字段
	assert.True(t, doc.HasScalarField("file_id"))
	assert.True(t, doc.HasScalarField("fileMd5sum"))
	// Extra 中的标量
	assert.True(t, doc.HasScalarField("center_name"))
	assert.True(t, doc.HasScalarField("donor_count"))
	// 多值字段与未知字段不算
	assert.False(t, doc.HasScalarField("tags"))
	assert.False(t, doc.HasScalarField("doi"))
}

func TestBundleDocUnmarshal(t *testing.T) {
	raw := `{
		"id": "bdl-1",
		"version": "1",
		"checksums": ["abc123:md5", "def456:sha256"],
		"updated": "2018-01-01T000000.000",
		"created": "2017-01-01T000000.000",
		"description": "desc",
		"data_object_ids": ["o1", "o2"],
		"project": "CCLE",
		"donor_count": 12,
		"members": ["x", "y"]
	}`

	var doc BundleDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "bdl-1", doc.ID)
	assert.Equal(t, []string{"abc123:md5", "def456:sha256"}, doc.Checksums)
	assert.Equal(t, []string{"o1", "o2"}, doc.DataObjectIDs)
	assert.Contains(t, doc.Extra, "project")
	assert.Contains(t, doc.Extra, "donor_count")
	assert.Contains(t, doc.Extra, "members")
	assert.NotContains(t, doc.Extra, "checksums")
}

func TestScalarString(t *testing.T) {
	assert.Equal(t, "s", ScalarString("s"))
	assert.Equal(t, "12", ScalarString(json.Number("12")))
	assert.Equal(t, "true", ScalarString(true))
	assert.Equal(t, "", ScalarString([]interface{}{"a"}))
}
