package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// ParseKey 测试
// ============================================================================

// TestParseKey_RoundTrip 测试比特串解析后可还原
func TestParseKey_RoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "0011", "1010", "000000001", "1111111111111111", "10000000000000000"} {
		k, err := ParseKey(s)
		require.NoError(t, err, s)
		assert.Equal(t, len(s), k.BitLen())
		assert.Equal(t, s, k.String())
	}

	t.Log("✅ 比特串解析可还原")
}

// TestParseKey_Bytes 测试大端序字节布局
func TestParseKey_Bytes(t *testing.T) {
	k := MustParseKey("0011")
	assert.Equal(t, []byte{0x03}, k.Bytes())

	k = MustParseKey("100000001")
	assert.Equal(t, []byte{0x01, 0x01}, k.Bytes())

	t.Log("✅ 字节布局正确")
}

// TestParseKey_Malformed 测试非法比特串
func TestParseKey_Malformed(t *testing.T) {
	for _, s := range []string{"", "0021", "abc", "01 1"} {
		_, err := ParseKey(s)
		assert.True(t, errors.Is(err, ErrMalformedIdentifier), "输入 %q 应返回 ErrMalformedIdentifier", s)
	}

	assert.Panics(t, func() { MustParseKey("x") })

	t.Log("✅ 非法比特串被拒绝")
}

// ============================================================================
// XORDistance 测试
// ============================================================================

// TestXORDistance_SameKeys 测试相同 Key 的距离为 0
func TestXORDistance_SameKeys(t *testing.T) {
	k := MustParseKey("0110")

	dist, err := XORDistance(k, k)
	require.NoError(t, err)
	assert.Equal(t, "0000", dist.String())

	t.Log("✅ 相同 Key 的 XOR 距离为 0")
}

// TestXORDistance_Values 测试 XOR 距离的数值
func TestXORDistance_Values(t *testing.T) {
	local := MustParseKey("0011")

	cases := map[string]string{
		"0010": "0001",
		"0001": "0010",
		"0000": "0011",
		"0111": "0100",
		"1011": "1000",
	}
	for id, want := range cases {
		dist, err := XORDistance(MustParseKey(id), local)
		require.NoError(t, err)
		assert.Equal(t, want, dist.String(), id)
	}

	t.Log("✅ XOR 距离数值正确")
}

// TestXORDistance_Commutative 测试交换律
func TestXORDistance_Commutative(t *testing.T) {
	a := MustParseKey("1100101")
	b := MustParseKey("0101110")

	d1, err := XORDistance(a, b)
	require.NoError(t, err)
	d2, err := XORDistance(b, a)
	require.NoError(t, err)

	assert.True(t, d1.Equal(d2))

	t.Log("✅ XOR 距离满足交换律")
}

// TestXORDistance_WidthMismatch 测试不同宽度
func TestXORDistance_WidthMismatch(t *testing.T) {
	_, err := XORDistance(MustParseKey("001"), MustParseKey("0011"))
	assert.ErrorIs(t, err, ErrMalformedIdentifier)

	t.Log("✅ 不同宽度返回错误")
}

// ============================================================================
// CompareDistance / LogDistance 测试
// ============================================================================

// TestCompareDistance 测试距离比较
func TestCompareDistance(t *testing.T) {
	local := MustParseKey("0011")

	cmp, err := CompareDistance(MustParseKey("0010"), MustParseKey("0000"), local)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = CompareDistance(MustParseKey("0100"), MustParseKey("0111"), local)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	cmp, err = CompareDistance(MustParseKey("0100"), MustParseKey("0100"), local)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	t.Log("✅ 距离比较正确")
}

// TestLogDistance 测试桶索引计算
func TestLogDistance(t *testing.T) {
	local := MustParseKey("0011")

	cases := map[string]int{
		"0011": -1,
		"0010": 0,
		"0001": 1,
		"0000": 1,
		"0111": 2,
		"0110": 2,
		"1011": 3,
		"1001": 3,
	}
	for id, want := range cases {
		got, err := LogDistance(MustParseKey(id), local)
		require.NoError(t, err)
		assert.Equal(t, want, got, id)
	}

	t.Log("✅ 桶索引与距离区间 [2^i, 2^(i+1)) 一致")
}
