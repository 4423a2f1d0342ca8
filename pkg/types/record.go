package types

import "fmt"

// ============================================================================
//                              Record - 路由记录
// ============================================================================

// Record 远端节点的一条路由记录
//
// 按值传递，创建后不可变；身份由 ID 决定。
type Record struct {
	// ID 定宽比特串标识符（'0'/'1'）
	ID string `json:"id"`

	// Addr 可达地址（不透明字符串，如 multiaddr）
	Addr string `json:"addr"`
}

// NewRecord 创建路由记录
func NewRecord(id, addr string) Record {
	return Record{ID: id, Addr: addr}
}

// Key 解析记录的标识符
func (r Record) Key() (Key, error) {
	k, err := ParseKey(r.ID)
	if err != nil {
		return Key{}, fmt.Errorf("record %q: %w", r.ID, err)
	}
	return k, nil
}

// Equal 按标识符比较两条记录
func (r Record) Equal(other Record) bool {
	return r.ID == other.ID
}

// String 返回记录的可读表示
func (r Record) String() string {
	return r.ID + "@" + r.Addr
}

// RecordIDs 返回记录列表的标识符
func RecordIDs(records []Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
