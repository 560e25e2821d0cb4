package config

import "time"

// Config 是 steamwatch 的主配置载体。
type Config struct {
	App     AppConfig     `toml:"app"`
	Steam   SteamConfig   `toml:"steam"`
	Push    PushConfig    `toml:"push"`
	Monitor MonitorConfig `toml:"monitor"`
}

type AppConfig struct {
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
}

// SteamConfig 描述被监控的库存来源。
type SteamConfig struct {
	SteamID        string `toml:"steam_id"`  // 好友的 64 位 SteamID
	AppID          int    `toml:"app_id"`    // 730=CS2, 440=TF2, 570=Dota2
	ContextID      int    `toml:"context_id"`
	UseSession     bool   `toml:"use_session"` // 私密库存走已登录浏览器会话
	DevtoolsURL    string `toml:"devtools_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// PushConfig 选择推送服务商，进程启动时确定，运行期不再切换。
type PushConfig struct {
	Provider string `toml:"provider"` // "pushplus" | "serverchan" | "bark"，留空则仅控制台输出
	Token    string `toml:"token"`
	Title    string `toml:"title"`
}

type MonitorConfig struct {
	IntervalSeconds int    `toml:"interval_seconds"`
	RunImmediately  *bool  `toml:"run_immediately"`
	SnapshotPath    string `toml:"snapshot_path"`
}

// Interval 返回轮询间隔。
func (m MonitorConfig) Interval() time.Duration {
	return time.Duration(m.IntervalSeconds) * time.Second
}

// RunFirstTickImmediately 默认启动后立即执行一次检查。
func (m MonitorConfig) RunFirstTickImmediately() bool {
	if m.RunImmediately == nil {
		return true
	}
	return *m.RunImmediately
}

// RequestTimeout 返回单次库存请求的超时。
func (s SteamConfig) RequestTimeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}
