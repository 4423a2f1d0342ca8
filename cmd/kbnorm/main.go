// Package main 提供 kbnorm 命令行入口
//
// kbnorm 读取路由表（JSON 快照或 "桶 标识符 地址" 三元组文本），
// 按配置规范化后输出结果。
//
//	kbnorm -input table.txt -seed 0
//	kbnorm -input table.json -k 20 -local 0011 -policy closest-first -json
//	kbnorm -input table.txt -seed-key 9f86d081884c7d65 -log-level debug
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	kbucket "github.com/dep2p/go-kbucket"
	"github.com/dep2p/go-kbucket/config"
	"github.com/dep2p/go-kbucket/internal/util/logger"
	"github.com/dep2p/go-kbucket/pkg/lib/log"
)

var cliLogger = log.Logger("kbnorm/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════

// cliFlags 命令行参数
type cliFlags struct {
	fs *flag.FlagSet

	// 输入输出
	input      string
	configFile string
	asJSON     bool

	// 运行时覆盖
	preset  string
	seed    uint64
	seedKey string
	k       int
	local   string
	policy  string

	// 诊断
	check       bool
	showStats   bool
	showMetrics bool
	logLevel    string

	// 信息显示
	showVersion bool
}

func newCLIFlags(stderr io.Writer) *cliFlags {
	f := &cliFlags{fs: flag.NewFlagSet("kbnorm", flag.ContinueOnError)}
	f.fs.SetOutput(stderr)

	f.fs.StringVar(&f.input, "input", "-", "路由表文件（- 表示标准输入）")
	f.fs.StringVar(&f.configFile, "config", "", "配置文件路径（JSON）")
	f.fs.BoolVar(&f.asJSON, "json", false, "以 JSON 快照输出")

	f.fs.StringVar(&f.preset, "preset", "", "预设配置 (reference/kademlia/deterministic)")
	f.fs.Uint64Var(&f.seed, "seed", 0, "随机种子")
	f.fs.StringVar(&f.seedKey, "seed-key", "", "十六进制种子材料，给出时替代 -seed")
	f.fs.IntVar(&f.k, "k", 0, "目标桶容量 K")
	f.fs.StringVar(&f.local, "local", "", "本地节点标识符（比特串）")
	f.fs.StringVar(&f.policy, "policy", "", "前序候选池选择策略 (uniform-random/closest-first)")

	f.fs.BoolVar(&f.check, "check", false, "规范化前检查记录是否位于正确的距离区间")
	f.fs.BoolVar(&f.showStats, "stats", false, "输出本次规范化统计")
	f.fs.BoolVar(&f.showMetrics, "metrics", false, "输出 Prometheus 指标")
	f.fs.StringVar(&f.logLevel, "log-level", "", "日志级别 (debug/info/warn/error)，覆盖 KBUCKET_LOG_LEVEL")

	f.fs.BoolVar(&f.showVersion, "version", false, "显示版本信息")
	return f
}

// isSet 检查命令行参数是否被显式设置
func (f *cliFlags) isSet(name string) bool {
	found := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

func main() {
	logger.Install("kbnorm")

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := newCLIFlags(stderr)
	if err := flags.fs.Parse(args); err != nil {
		return err
	}

	if flags.showVersion {
		fmt.Fprintln(stdout, kbucket.VersionInfo())
		return nil
	}

	if flags.isSet("log-level") {
		level, ok := logLevels[flags.logLevel]
		if !ok {
			return fmt.Errorf("未知日志级别: %q", flags.logLevel)
		}
		prev := slog.Default()
		defer log.SetDefault(prev)
		log.SetOutputWithLevel(stderr, level)
	}

	cfg, err := buildConfig(flags)
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	src := kbucket.NewSeededSource(cfg.Routing.Seed)
	if flags.isSet("seed-key") {
		key, err := parseSeedKey(flags.seedKey)
		if err != nil {
			return fmt.Errorf("种子材料无效: %w", err)
		}
		src = kbucket.NewSeededSourceFromKey(key)
	}

	rt, err := readInput(flags.input, stdin)
	if err != nil {
		return fmt.Errorf("读取路由表失败: %w", err)
	}

	n, reg, err := kbucket.NewWithRegistry(kbucket.WithConfig(cfg))
	if err != nil {
		return err
	}

	if flags.check {
		miss, err := n.CheckPlacement(rt)
		if err != nil {
			return err
		}
		for _, m := range miss {
			fmt.Fprintf(stderr, "警告: %s\n", m)
		}
	}

	cliLogger.Debug("开始规范化",
		"buckets", rt.Len(),
		"records", rt.TotalRecords(),
		"seed", cfg.Routing.Seed,
		"seedKey", flags.isSet("seed-key"))

	out, stats, err := n.NormalizeWithStats(rt, src)
	if err != nil {
		return fmt.Errorf("规范化失败: %w", err)
	}

	if err := writeTable(stdout, out, flags.asJSON); err != nil {
		return err
	}

	if flags.showStats {
		printStats(stderr, stats)
	}
	if flags.showMetrics {
		if err := printMetrics(stderr, reg); err != nil {
			return err
		}
	}
	return nil
}

// buildConfig 构建统一配置
//
// 配置优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（KBUCKET_* 前缀）
//  3. 配置文件
//  4. 预设默认值
func buildConfig(flags *cliFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	// ═══════════════════════════════════════════════════════════════════
	// 1. 加载配置文件，无文件时使用预设
	// ═══════════════════════════════════════════════════════════════════
	env := readEnv()

	if flags.configFile != "" {
		cfg, err = config.LoadFile(flags.configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
		if flags.isSet("preset") {
			cliLogger.Warn("已指定配置文件，忽略 -preset", "config", flags.configFile, "preset", flags.preset)
		}
	} else {
		presetName := env.preset
		if flags.isSet("preset") {
			presetName = flags.preset
		}
		cfg = config.NewConfig()
		if err := config.ApplyPreset(cfg, presetName); err != nil {
			return nil, err
		}
	}

	// ═══════════════════════════════════════════════════════════════════
	// 2. 环境变量覆盖
	// ═══════════════════════════════════════════════════════════════════
	applyEnvOverrides(cfg, env)

	// ═══════════════════════════════════════════════════════════════════
	// 3. 命令行参数覆盖（最高优先级）
	// ═══════════════════════════════════════════════════════════════════
	if flags.isSet("k") {
		cfg.Routing.BucketSize = flags.k
	}
	if flags.isSet("local") {
		cfg.Routing.LocalID = flags.local
	}
	if flags.isSet("policy") {
		cfg.Routing.Policy = flags.policy
	}
	if flags.isSet("seed") {
		cfg.Routing.Seed = flags.seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readInput 读取路由表
func readInput(path string, stdin io.Reader) (*kbucket.Table, error) {
	if path == "" || path == "-" {
		return kbucket.ReadTable(stdin)
	}

	f, err := os.Open(path) //nolint:gosec // G304: 用户指定的输入文件是预期行为
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return kbucket.ReadTable(f)
}

// writeTable 输出路由表
func writeTable(w io.Writer, t *kbucket.Table, asJSON bool) error {
	if !asJSON {
		_, err := io.WriteString(w, t.String())
		return err
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// printStats 输出规范化统计
func printStats(w io.Writer, s kbucket.NormalizeStats) {
	fmt.Fprintf(w, "buckets=%d filled=%d passed=%d borrowed_previous=%d borrowed_next=%d random_draws=%d shortfall=%d\n",
		s.Buckets, s.Filled, s.PassedThrough, s.BorrowedPrevious, s.BorrowedNext, s.RandomDraws, s.Shortfall)
}

// printMetrics 以 Prometheus 文本格式输出指标
func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
