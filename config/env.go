package config

// 环境变量名称
//
// 环境变量优先级高于配置文件，但低于命令行参数。
const (
	// EnvPrefix 环境变量前缀
	EnvPrefix = "KBUCKET_"

	// EnvPreset 预设名称
	EnvPreset = "PRESET"

	// EnvBucketSize 目标桶容量 K
	EnvBucketSize = "BUCKET_SIZE"

	// EnvLocalID 本地节点标识符
	EnvLocalID = "LOCAL_ID"

	// EnvPolicy 前序候选池选择策略
	EnvPolicy = "POLICY"

	// EnvSeed 随机种子
	EnvSeed = "SEED"
)
