package routing

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dep2p/go-kbucket/pkg/types"
)

// keyCache 标识符解析缓存
//
// Key 创建后不可变，可以在并发的规范化调用之间共享。
type keyCache struct {
	cache *lru.Cache[string, types.Key]
}

// newKeyCache 创建解析缓存，size 为 0 时不缓存
func newKeyCache(size int) (*keyCache, error) {
	if size == 0 {
		return &keyCache{}, nil
	}
	cache, err := lru.New[string, types.Key](size)
	if err != nil {
		return nil, err
	}
	return &keyCache{cache: cache}, nil
}

// parse 解析标识符，命中缓存时直接返回
func (c *keyCache) parse(id string) (types.Key, error) {
	if c.cache != nil {
		if k, ok := c.cache.Get(id); ok {
			return k, nil
		}
	}
	k, err := types.ParseKey(id)
	if err != nil {
		return types.Key{}, err
	}
	if c.cache != nil {
		c.cache.Add(id, k)
	}
	return k, nil
}

// len 返回缓存条目数
func (c *keyCache) len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// distanceTo 计算记录到本地节点的 XOR 距离
func (n *Normalizer) distanceTo(r types.Record) (types.Key, error) {
	k, err := n.keys.parse(r.ID)
	if err != nil {
		return types.Key{}, NewRoutingError("distance", err, fmt.Sprintf("record %s", r))
	}
	d, err := types.XORDistance(k, n.local)
	if err != nil {
		return types.Key{}, NewRoutingError("distance", err, fmt.Sprintf("record %s", r))
	}
	return d, nil
}

// sortByDistance 按到本地节点的 XOR 距离升序返回记录副本
//
// 任一标识符无法解析时整体失败，不跳过记录。
func (n *Normalizer) sortByDistance(records []types.Record) ([]types.Record, error) {
	type entry struct {
		rec  types.Record
		dist types.Key
	}

	entries := make([]entry, len(records))
	for i, r := range records {
		d, err := n.distanceTo(r)
		if err != nil {
			return nil, err
		}
		entries[i] = entry{rec: r, dist: d}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].dist.Compare(entries[j].dist) < 0
	})

	out := make([]types.Record, len(entries))
	for i, e := range entries {
		out[i] = e.rec
	}
	return out, nil
}
