package routing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-kbucket/pkg/types"
)

// ============================================================================
// Bucket 测试
// ============================================================================

// TestBucket_AddDoesNotMutate 测试 Add 返回新桶且不影响原桶
func TestBucket_AddDoesNotMutate(t *testing.T) {
	b0 := NewBucket()
	b1 := b0.Add("0010", "RE")
	b2 := b1.Add("0001", "RE")
	b3 := b1.Add("0000", "RE")

	assert.Equal(t, 0, b0.Len())
	assert.Equal(t, []string{"0010"}, b1.IDs())
	assert.Equal(t, []string{"0010", "0001"}, b2.IDs())
	assert.Equal(t, []string{"0010", "0000"}, b3.IDs())

	t.Log("✅ Bucket.Add 不修改原桶")
}

// TestBucket_RecordsIsCopy 测试 Records 返回副本
func TestBucket_RecordsIsCopy(t *testing.T) {
	b := NewBucket().Add("0010", "RE")

	records := b.Records()
	records[0].ID = "1111"

	assert.Equal(t, "0010", b.Record(0).ID)

	t.Log("✅ Records 返回副本")
}

// ============================================================================
// Table 构建测试
// ============================================================================

// TestTable_New 测试空路由表
func TestTable_New(t *testing.T) {
	rt := NewTable()

	assert.Equal(t, 0, rt.Len())
	assert.Equal(t, 0, rt.TotalRecords())
	assert.Empty(t, rt.String())

	t.Log("✅ 空路由表正确")
}

// TestTable_NewWithRecord 测试单记录路由表
func TestTable_NewWithRecord(t *testing.T) {
	rt := NewTableWithRecord("0010", "RE")

	require.Equal(t, 1, rt.Len())
	assert.Equal(t, []types.Record{{ID: "0010", Addr: "RE"}}, rt.Records(0))

	t.Log("✅ NewTableWithRecord 正确")
}

// TestTable_AddRecord 测试按顺序追加记录
func TestTable_AddRecord(t *testing.T) {
	rt := NewTable()

	require.NoError(t, rt.AddRecord(0, "0010", "RE"))
	require.NoError(t, rt.AddRecord(1, "0001", "RE"))
	require.NoError(t, rt.AddRecord(1, "0000", "RE"))
	require.NoError(t, rt.AddRecord(0, "0010", "RE2"))

	assert.Equal(t, 2, rt.Len())
	assert.Equal(t, 4, rt.TotalRecords())
	assert.Equal(t, []string{"0010", "0010"}, rt.Bucket(0).IDs())
	assert.Equal(t, []string{"0001", "0000"}, rt.Bucket(1).IDs())

	t.Log("✅ AddRecord 追加与新建桶正确，且不去重")
}

// TestTable_AddRecord_OutOfBounds 测试跳过桶索引
func TestTable_AddRecord_OutOfBounds(t *testing.T) {
	rt := NewTable().MustAdd(0, "0010", "RE")

	err := rt.AddRecord(2, "0111", "RE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrOutOfBounds))

	var rerr *RoutingError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "add_record", rerr.Op)

	err = rt.AddRecord(-1, "0111", "RE")
	assert.True(t, errors.Is(err, types.ErrOutOfBounds))

	// 失败的追加不改变路由表
	assert.Equal(t, 1, rt.Len())
	assert.Equal(t, 1, rt.TotalRecords())

	t.Log("✅ 越界桶索引被拒绝")
}

// TestTable_MustAdd_Panics 测试 MustAdd 越界时 panic
func TestTable_MustAdd_Panics(t *testing.T) {
	assert.Panics(t, func() {
		NewTable().MustAdd(1, "0010", "RE")
	})

	t.Log("✅ MustAdd 越界 panic")
}

// TestTable_CloneAndEqual 测试深拷贝与相等比较
func TestTable_CloneAndEqual(t *testing.T) {
	rt := referenceTable1()
	clone := rt.Clone()

	assert.True(t, rt.Equal(clone))

	require.NoError(t, clone.AddRecord(0, "0011", "RE"))
	assert.False(t, rt.Equal(clone))
	assert.Equal(t, 1, rt.Bucket(0).Len())

	assert.False(t, rt.Equal(nil))
	assert.False(t, rt.Equal(NewTable()))

	t.Log("✅ Clone 与 Equal 正确")
}

// TestTable_String 测试可读表示
func TestTable_String(t *testing.T) {
	rt := referenceTable1()

	want := "bucket 0: [0010]\nbucket 1: [0001, 0000]\nbucket 2: [0111]\n"
	assert.Equal(t, want, rt.String())

	t.Log("✅ String 输出正确")
}

// TestTable_RecordsBefore 测试前序候选池
func TestTable_RecordsBefore(t *testing.T) {
	rt := referenceTable1()

	assert.Empty(t, rt.recordsBefore(0))
	assert.Equal(t, []string{"0010"}, types.RecordIDs(rt.recordsBefore(1)))
	assert.Equal(t, []string{"0010", "0001", "0000"}, types.RecordIDs(rt.recordsBefore(2)))

	t.Log("✅ 前序候选池按桶顺序拼接")
}

// ============================================================================
// 测试辅助
// ============================================================================

// referenceTable1 本地标识符 0011 下的小型路由表
func referenceTable1() *Table {
	return NewTable().
		MustAdd(0, "0010", "RE").
		MustAdd(1, "0001", "RE").
		MustAdd(1, "0000", "RE").
		MustAdd(2, "0111", "RE")
}
