package types

import (
	"bytes"
	"fmt"
	"strings"
)

// ============================================================================
//                              Key - 定宽比特串
// ============================================================================

// Key 定宽比特串标识符
//
// 外部表示为 '0'/'1' 字符串（最高位在前），
// 内部以大端序字节存储，高位补零。
type Key struct {
	bits  int
	bytes []byte
}

// ParseKey 解析 '0'/'1' 比特串
//
// 空字符串或包含其他字符时返回 ErrMalformedIdentifier。
func ParseKey(s string) (Key, error) {
	if s == "" {
		return Key{}, fmt.Errorf("%w: empty bit string", ErrMalformedIdentifier)
	}

	n := len(s)
	buf := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		// 第 i 个字符对应整数值中的第 (n-1-i) 位
		pos := n - 1 - i
		switch s[i] {
		case '0':
		case '1':
			buf[len(buf)-1-pos/8] |= 1 << (pos % 8)
		default:
			return Key{}, fmt.Errorf("%w: %q has non-binary character at %d", ErrMalformedIdentifier, s, i)
		}
	}

	return Key{bits: n, bytes: buf}, nil
}

// MustParseKey 解析比特串，失败时 panic
//
// 仅用于常量与测试。
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// BitLen 返回比特宽度
func (k Key) BitLen() int {
	return k.bits
}

// Bytes 返回大端序字节副本
func (k Key) Bytes() []byte {
	out := make([]byte, len(k.bytes))
	copy(out, k.bytes)
	return out
}

// IsZero 检查是否为零值（未解析）
func (k Key) IsZero() bool {
	return k.bits == 0
}

// Bit 返回从最高位数起第 i 位
func (k Key) Bit(i int) uint {
	pos := k.bits - 1 - i
	return uint(k.bytes[len(k.bytes)-1-pos/8]>>(pos%8)) & 1
}

// Xor 计算两个同宽 Key 的异或
func (k Key) Xor(other Key) (Key, error) {
	if k.bits != other.bits {
		return Key{}, fmt.Errorf("%w: width mismatch %d != %d", ErrMalformedIdentifier, k.bits, other.bits)
	}
	out := make([]byte, len(k.bytes))
	for i := range out {
		out[i] = k.bytes[i] ^ other.bytes[i]
	}
	return Key{bits: k.bits, bytes: out}, nil
}

// Compare 按无符号整数值比较
// 返回：
//
//	-1 如果 k < other
//	 0 如果 k == other
//	 1 如果 k > other
//
// 宽度不同时按宽度比较（只用于排序稳定性，不代表距离）。
func (k Key) Compare(other Key) int {
	if k.bits != other.bits {
		if k.bits < other.bits {
			return -1
		}
		return 1
	}
	return bytes.Compare(k.bytes, other.bytes)
}

// Equal 比较两个 Key 是否相等
func (k Key) Equal(other Key) bool {
	return k.Compare(other) == 0
}

// String 返回比特串表示
func (k Key) String() string {
	var sb strings.Builder
	sb.Grow(k.bits)
	for i := 0; i < k.bits; i++ {
		if k.Bit(i) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ============================================================================
//                              距离度量
// ============================================================================

// XORDistance 计算两个 Key 的 XOR 距离
func XORDistance(a, b Key) (Key, error) {
	return a.Xor(b)
}

// CompareDistance 比较 a 和 b 到 target 的距离
// 返回：
//
//	-1 如果 dist(a, target) < dist(b, target)
//	 0 如果 dist(a, target) == dist(b, target)
//	 1 如果 dist(a, target) > dist(b, target)
func CompareDistance(a, b, target Key) (int, error) {
	distA, err := XORDistance(a, target)
	if err != nil {
		return 0, err
	}
	distB, err := XORDistance(b, target)
	if err != nil {
		return 0, err
	}
	return distA.Compare(distB), nil
}

// LogDistance 返回 XOR 距离最高置位的位置
//
// 即 Kademlia 桶索引：距离落在 [2^i, 2^(i+1)) 的节点属于桶 i。
// 两个 Key 相同时返回 -1。
func LogDistance(a, b Key) (int, error) {
	dist, err := XORDistance(a, b)
	if err != nil {
		return 0, err
	}
	for i := 0; i < dist.bits; i++ {
		if dist.Bit(i) == 1 {
			return dist.bits - 1 - i, nil
		}
	}
	return -1, nil
}
