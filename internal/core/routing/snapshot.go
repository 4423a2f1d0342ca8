package routing

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dep2p/go-kbucket/pkg/types"
)

// ============================================================================
//                              JSON 快照
// ============================================================================

// tableJSON 路由表的 JSON 表示
//
//	{"buckets": [[{"id": "0010", "addr": "RE"}], [...]]}
type tableJSON struct {
	Buckets [][]types.Record `json:"buckets"`
}

// MarshalJSON 实现 json.Marshaler
func (t *Table) MarshalJSON() ([]byte, error) {
	out := tableJSON{Buckets: make([][]types.Record, len(t.buckets))}
	for i, b := range t.buckets {
		out.Buckets[i] = cloneRecords(b.records)
	}
	return json.Marshal(out)
}

// UnmarshalJSON 实现 json.Unmarshaler
//
// 空桶不能通过 AddRecord 表达，因此快照中出现空桶视为无效。
func (t *Table) UnmarshalJSON(data []byte) error {
	var in tableJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	rt := NewTable()
	for i, records := range in.Buckets {
		if len(records) == 0 {
			return fmt.Errorf("%w: bucket %d is empty", ErrInvalidSnapshot, i)
		}
		for _, r := range records {
			if err := rt.AddRecord(i, r.ID, r.Addr); err != nil {
				return err
			}
		}
	}
	t.buckets = rt.buckets
	return nil
}

// ============================================================================
//                              三元组输入
// ============================================================================

// ReadTriples 读取 "桶索引 标识符 地址" 三元组，按顺序构建路由表
//
// 每行一条记录，字段以空白分隔；空行与 '#' 开头的行被忽略。
// 桶索引必须按顺序出现（规则同 AddRecord）。
func ReadTriples(r io.Reader) (*Table, error) {
	rt := NewTable()
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: expected 3 fields, got %d", ErrInvalidSnapshot, line, len(fields))
		}
		bucketID, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bucket index: %w", ErrInvalidSnapshot, line, err)
		}
		if err := rt.AddRecord(bucketID, fields[1], fields[2]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rt, nil
}

// ReadTable 读取路由表，自动识别 JSON 快照或三元组文本
func ReadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		rt := NewTable()
		if err := json.Unmarshal(trimmed, rt); err != nil {
			return nil, err
		}
		return rt, nil
	}
	return ReadTriples(bytes.NewReader(data))
}

// WriteTriples 以三元组文本写出路由表
func WriteTriples(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	for i, b := range t.buckets {
		for _, r := range b.records {
			if _, err := fmt.Fprintf(bw, "%d %s %s\n", i, r.ID, r.Addr); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
