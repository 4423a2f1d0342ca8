// Package metrics 提供路由表规范化的 Prometheus 指标
//
// Reporter 实现 interfaces.NormalizeReporter，把每次规范化的统计
// 累加到 Prometheus 指标：
//   - kbucket_normalize_runs_total：成功次数
//   - kbucket_normalize_failures_total{reason}：失败次数
//   - kbucket_normalize_buckets_total{outcome}：补充/原样保留的桶数
//   - kbucket_normalize_borrowed_records_total{source}：借入记录数
//   - kbucket_normalize_random_draws_total：随机抽取次数
//   - kbucket_normalize_shortfall：最近一次的缺口
//
// # 快速开始
//
//	reg := prometheus.NewRegistry()
//	reporter := metrics.NewReporter("kbucket", reg)
//
//	n, _ := routing.NewNormalizer(routing.DefaultConfig(), reporter)
//
// # Fx 模块
//
// Module 提供 *prometheus.Registry 与 interfaces.NormalizeReporter；
// 统一配置中 Metrics.Enabled 为 false 时提供 NopReporter。
package metrics
