package routing

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-kbucket/pkg/types"
)

// ============================================================================
// JSON 快照测试
// ============================================================================

// TestTable_MarshalJSON 测试 JSON 形状
func TestTable_MarshalJSON(t *testing.T) {
	rt := NewTable().
		MustAdd(0, "0010", "RE").
		MustAdd(1, "0001", "/ip4/127.0.0.1/tcp/4001")

	data, err := json.Marshal(rt)
	require.NoError(t, err)

	want := `{"buckets":[[{"id":"0010","addr":"RE"}],[{"id":"0001","addr":"/ip4/127.0.0.1/tcp/4001"}]]}`
	assert.JSONEq(t, want, string(data))

	t.Log("✅ JSON 快照形状正确")
}

// TestTable_UnmarshalJSON 测试从 JSON 恢复
func TestTable_UnmarshalJSON(t *testing.T) {
	rt := referenceTable5()
	data, err := json.Marshal(rt)
	require.NoError(t, err)

	var restored Table
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.True(t, rt.Equal(&restored))

	t.Log("✅ JSON 快照可恢复")
}

// TestTable_UnmarshalJSON_Invalid 测试无效 JSON 快照
func TestTable_UnmarshalJSON_Invalid(t *testing.T) {
	var rt Table
	require.Error(t, json.Unmarshal([]byte(`{"buckets": [`), &rt))

	for name, input := range map[string]string{
		"空桶":   `{"buckets": [[]]}`,
		"类型错误": `{"buckets": "0010"}`,
	} {
		var rt Table
		err := json.Unmarshal([]byte(input), &rt)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrInvalidSnapshot), name)
	}

	t.Log("✅ 无效 JSON 快照被拒绝")
}

// ============================================================================
// 三元组测试
// ============================================================================

// TestReadTriples 测试三元组解析
func TestReadTriples(t *testing.T) {
	input := `
# 本地节点 0011
0 0010 RE
1 0001 RE
1 0000 RE

2 0111 RE
`
	rt, err := ReadTriples(strings.NewReader(input))
	require.NoError(t, err)
	assert.True(t, referenceTable1().Equal(rt))

	t.Log("✅ 三元组解析正确")
}

// TestReadTriples_Invalid 测试无效三元组
func TestReadTriples_Invalid(t *testing.T) {
	_, err := ReadTriples(strings.NewReader("0 0010\n"))
	assert.True(t, errors.Is(err, ErrInvalidSnapshot))

	_, err = ReadTriples(strings.NewReader("x 0010 RE\n"))
	assert.True(t, errors.Is(err, ErrInvalidSnapshot))

	_, err = ReadTriples(strings.NewReader("0 0010 RE\n2 0111 RE\n"))
	assert.True(t, errors.Is(err, types.ErrOutOfBounds))
	assert.Contains(t, err.Error(), "line 2")

	t.Log("✅ 无效三元组被拒绝")
}

// TestWriteTriples 测试三元组输出可再次解析
func TestWriteTriples(t *testing.T) {
	rt := referenceTable5()

	var buf bytes.Buffer
	require.NoError(t, WriteTriples(&buf, rt))
	assert.True(t, strings.HasPrefix(buf.String(), "0 0010 RE\n1 0000 RE\n"))

	restored, err := ReadTriples(&buf)
	require.NoError(t, err)
	assert.True(t, rt.Equal(restored))

	t.Log("✅ 三元组输出可还原")
}

// TestReadTable_Detect 测试自动识别输入格式
func TestReadTable_Detect(t *testing.T) {
	rt := referenceTable1()

	data, err := json.Marshal(rt)
	require.NoError(t, err)
	fromJSON, err := ReadTable(bytes.NewReader(append([]byte("\n  "), data...)))
	require.NoError(t, err)
	assert.True(t, rt.Equal(fromJSON))

	var buf bytes.Buffer
	require.NoError(t, WriteTriples(&buf, rt))
	fromText, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.True(t, rt.Equal(fromText))

	empty, err := ReadTable(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	t.Log("✅ 自动识别 JSON 与三元组")
}
