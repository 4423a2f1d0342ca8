// Package interfaces 定义 go-kbucket 公共接口
//
// 本文件定义规范化指标上报接口。
package interfaces

// NormalizeStats 单次规范化的统计信息
type NormalizeStats struct {
	// Buckets 参与规范化的桶数量
	Buckets int

	// Filled 被补充过记录的桶数量
	Filled int

	// PassedThrough 已满、原样保留的桶数量
	PassedThrough int

	// BorrowedPrevious 从前序桶借入的记录数
	BorrowedPrevious int

	// BorrowedNext 从后续桶借入的记录数
	BorrowedNext int

	// RandomDraws 随机采样调用次数
	RandomDraws int

	// Shortfall 规范化后仍未达到 K 的缺口总数
	Shortfall int
}

// NormalizeReporter 规范化指标上报器
type NormalizeReporter interface {
	// ReportNormalize 上报一次成功的规范化
	ReportNormalize(stats NormalizeStats)

	// ReportFailure 上报一次失败的规范化
	ReportFailure(reason string)
}
