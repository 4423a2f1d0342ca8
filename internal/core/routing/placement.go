package routing

import (
	"fmt"

	"github.com/dep2p/go-kbucket/pkg/interfaces"
	"github.com/dep2p/go-kbucket/pkg/types"
)

// Misplacement 记录所在桶与其距离区间不符
type Misplacement struct {
	Bucket   int          // 所在桶
	Expected int          // 按距离应在的桶，-1 表示与本地节点相同
	Record   types.Record // 记录
}

// String 返回可读表示
func (m Misplacement) String() string {
	return fmt.Sprintf("%s in bucket %d, expected %d", m.Record, m.Bucket, m.Expected)
}

// CheckPlacement 检查路由表快照中每条记录是否位于正确的距离区间
//
// 只用于诊断原始路由表；规范化后的表含有借入记录，不适用。
// 规范化本身不依赖这一性质。
func (n *Normalizer) CheckPlacement(t interfaces.TableSnapshot) ([]Misplacement, error) {
	var out []Misplacement
	for i := 0; i < t.Len(); i++ {
		for _, r := range t.Records(i) {
			k, err := n.keys.parse(r.ID)
			if err != nil {
				return nil, NewRoutingError("check_placement", err, fmt.Sprintf("record %s", r))
			}
			expected, err := types.LogDistance(k, n.local)
			if err != nil {
				return nil, NewRoutingError("check_placement", err, fmt.Sprintf("record %s", r))
			}
			if expected != i {
				out = append(out, Misplacement{Bucket: i, Expected: expected, Record: r})
			}
		}
	}
	return out, nil
}
