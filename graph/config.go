package graph

import (
	"crypto/sha256"
	"encoding/hex"

	jsoniter "github.com/json-iterator/go"

	"github.com/tatolab/streamrt/cmn/cerr"
)

var cfgJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// validateConfigRoundTrip implements spec.md §9 "Configuration lossy
// round-trip": a config document must marshal, unmarshal, and re-marshal
// to byte-identical JSON, or add_processor refuses it outright (a
// mutation-time failure per spec.md §7's propagation policy, not a
// commit-time one).
func validateConfigRoundTrip(typeName string, cfg map[string]any) error {
	first, err := cfgJSON.Marshal(cfg)
	if err != nil {
		return cerr.InvalidConfig(typeName, err)
	}
	var roundTripped map[string]any
	if err := cfgJSON.Unmarshal(first, &roundTripped); err != nil {
		return cerr.InvalidConfig(typeName, err)
	}
	second, err := cfgJSON.Marshal(roundTripped)
	if err != nil {
		return cerr.InvalidConfig(typeName, err)
	}
	if string(first) != string(second) {
		return cerr.LossyConfigRoundTrip(typeName)
	}
	return nil
}

// configHash is used by the compiler's diff step to detect config_updates
// (spec.md §4.4 step 1: "processor node whose config checksum differs
// from last-applied").
func configHash(cfg map[string]any) string {
	b, err := cfgJSON.Marshal(cfg)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
