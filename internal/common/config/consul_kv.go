package config

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/consul/api"
)

// OverrideFromConsulKV 从 Consul KV 读取 JSON 片段并覆盖到已加载的配置上。
//
// 约定：
// - key 对应的 value 必须是 JSON（结构与 Config 一致，允许只给出部分字段）
// - 覆盖采用 json.Unmarshal 的合并语义：KV 里出现的字段生效，未出现的保留文件值
// - 该函数只负责“读取 + 覆盖”，是否做动态 watch 由上层决定
func OverrideFromConsulKV(cfg *Config, consulHost string, consulPort int, key string) error {
	if cfg == nil {
		return fmt.Errorf("cfg is nil")
	}
	if key == "" {
		return fmt.Errorf("consul kv key is empty")
	}

	c, err := api.NewClient(&api.Config{
		Address: fmt.Sprintf("%s:%d", consulHost, consulPort),
	})
	if err != nil {
		return fmt.Errorf("failed to create consul client: %w", err)
	}

	pair, _, err := c.KV().Get(key, nil)
	if err != nil {
		return fmt.Errorf("failed to get consul kv key=%s: %w", key, err)
	}
	if pair == nil || len(pair.Value) == 0 {
		return fmt.Errorf("consul kv key=%s is empty or not found", key)
	}

	if err := json.Unmarshal(pair.Value, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal consul kv json key=%s: %w", key, err)
	}
	return nil
}
