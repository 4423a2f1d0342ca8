package routing

import (
	"fmt"
	"strings"

	"github.com/dep2p/go-kbucket/pkg/interfaces"
	"github.com/dep2p/go-kbucket/pkg/types"
)

// ============================================================================
//                              K 桶
// ============================================================================

// Bucket K 桶
//
// 按插入顺序保存同一距离区间的记录。Bucket 是值类型，
// Add 返回新桶，不影响原桶。
type Bucket struct {
	records []types.Record
}

// NewBucket 创建空桶
func NewBucket() Bucket {
	return Bucket{}
}

// Add 追加一条记录，返回新桶
func (b Bucket) Add(id, addr string) Bucket {
	// 限制容量，避免与原桶共享底层数组
	records := append(b.records[:len(b.records):len(b.records)], types.NewRecord(id, addr))
	return Bucket{records: records}
}

// Len 返回桶中记录数量
func (b Bucket) Len() int {
	return len(b.records)
}

// Records 返回记录副本
func (b Bucket) Records() []types.Record {
	return cloneRecords(b.records)
}

// Record 返回第 i 条记录
func (b Bucket) Record(i int) types.Record {
	return b.records[i]
}

// IDs 返回所有记录的标识符
func (b Bucket) IDs() []string {
	return types.RecordIDs(b.records)
}

func (b Bucket) clone() Bucket {
	return Bucket{records: cloneRecords(b.records)}
}

func cloneRecords(records []types.Record) []types.Record {
	out := make([]types.Record, len(records))
	copy(out, records)
	return out
}

// ============================================================================
//                              路由表
// ============================================================================

// 确保实现接口
var _ interfaces.TableSnapshot = (*Table)(nil)

// Table 路由表快照
//
// 桶 i 保存与本地节点 XOR 距离落在 [2^i, 2^(i+1)) 的记录。
// 构建阶段只允许追加；规范化总是返回新表，不修改输入。
type Table struct {
	buckets []Bucket
}

// NewTable 创建空路由表（没有桶）
func NewTable() *Table {
	return &Table{}
}

// NewTableWithRecord 创建只含桶 0 及一条记录的路由表
func NewTableWithRecord(id, addr string) *Table {
	return &Table{buckets: []Bucket{NewBucket().Add(id, addr)}}
}

// NewTableFromBuckets 由现有桶创建路由表（复制记录）
func NewTableFromBuckets(buckets ...Bucket) *Table {
	t := &Table{buckets: make([]Bucket, len(buckets))}
	for i, b := range buckets {
		t.buckets[i] = b.clone()
	}
	return t
}

// AddRecord 向桶 bucketID 追加记录
//
//   - bucketID < Len()：追加到已有桶
//   - bucketID == Len()：创建新桶
//   - 其他：返回 ErrOutOfBounds（桶必须按顺序创建）
//
// 不做去重，调用方负责避免重复插入同一标识符。
func (t *Table) AddRecord(bucketID int, id, addr string) error {
	switch {
	case bucketID >= 0 && bucketID < len(t.buckets):
		t.buckets[bucketID].records = append(t.buckets[bucketID].records, types.NewRecord(id, addr))
	case bucketID == len(t.buckets):
		t.buckets = append(t.buckets, NewBucket().Add(id, addr))
	default:
		return NewRoutingError("add_record", types.ErrOutOfBounds,
			fmt.Sprintf("bucket %d with %d buckets present", bucketID, len(t.buckets)))
	}
	return nil
}

// MustAdd 追加记录并返回路由表本身，越界时 panic
//
// 用于链式构建已知合法的路由表。
func (t *Table) MustAdd(bucketID int, id, addr string) *Table {
	if err := t.AddRecord(bucketID, id, addr); err != nil {
		panic(err)
	}
	return t
}

// Len 返回桶数量
func (t *Table) Len() int {
	return len(t.buckets)
}

// Bucket 返回桶 i 的副本
func (t *Table) Bucket(i int) Bucket {
	return t.buckets[i].clone()
}

// Buckets 返回所有桶的副本
func (t *Table) Buckets() []Bucket {
	out := make([]Bucket, len(t.buckets))
	for i, b := range t.buckets {
		out[i] = b.clone()
	}
	return out
}

// Records 返回桶 i 的记录副本
func (t *Table) Records(i int) []types.Record {
	return t.buckets[i].Records()
}

// TotalRecords 返回所有桶的记录总数
func (t *Table) TotalRecords() int {
	total := 0
	for _, b := range t.buckets {
		total += len(b.records)
	}
	return total
}

// Clone 深拷贝路由表
func (t *Table) Clone() *Table {
	return NewTableFromBuckets(t.buckets...)
}

// Equal 逐桶、逐条比较标识符与地址
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.buckets) != len(other.buckets) {
		return false
	}
	for i := range t.buckets {
		a, b := t.buckets[i].records, other.buckets[i].records
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

// Normalize 使用 n 规范化路由表，返回新表
func (t *Table) Normalize(n *Normalizer, src interfaces.RandomSource) (*Table, error) {
	return n.Normalize(t, src)
}

// String 返回多行可读表示
func (t *Table) String() string {
	var sb strings.Builder
	for i, b := range t.buckets {
		fmt.Fprintf(&sb, "bucket %d: [%s]\n", i, strings.Join(b.IDs(), ", "))
	}
	return sb.String()
}

// recordsBefore 拼接桶 0..i-1 的记录（新切片）
func (t *Table) recordsBefore(i int) []types.Record {
	n := 0
	for _, b := range t.buckets[:i] {
		n += len(b.records)
	}
	out := make([]types.Record, 0, n)
	for _, b := range t.buckets[:i] {
		out = append(out, b.records...)
	}
	return out
}
