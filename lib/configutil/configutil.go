package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// ReadConfig reads a json5 configuration file. If a sibling file with a
// `.local` suffix before the extension exists (ex. faqwatch.local.json5
// next to faqwatch.json5) it is merged on top of the base file, the local
// file winning on conflicts.
func ReadConfig[T any](name string) (T, error) {
	var out T

	base, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(base) > 0 {
		if err := json5.Unmarshal(base, &out); err != nil {
			return out, fmt.Errorf("parse %s: %w", name, err)
		}
	}

	localPath := localVariant(name)
	local, err := os.ReadFile(localPath)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(local) > 0 {
		var override T
		if err := json5.Unmarshal(local, &override); err != nil {
			return out, fmt.Errorf("parse %s: %w", localPath, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localPath)
	}

	return out, nil
}

func localVariant(name string) string {
	dir := filepath.Dir(name)
	base := filepath.Base(name)

	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext)
	if ext == "" {
		return filepath.Join(dir, prefix+".local")
	}
	return filepath.Join(dir, fmt.Sprintf("%s.local%s", prefix, ext))
}
