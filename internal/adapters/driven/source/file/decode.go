package file

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// Extensions lists the shard file extensions this package reads.
var Extensions = []string{".json", ".yaml", ".yml", ".toml"}

// IsShardFile reports whether path has a shard file extension and is not
// hidden.
func IsShardFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FamilyFromPath returns the default family ID for a shard file.
func FamilyFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Decode parses a shard file body. The format is chosen by the extension
// of name.
func Decode(name string, data []byte) (domain.Shard, error) {
	var (
		doc any
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".toml":
		var table map[string]any
		err = toml.Unmarshal(data, &table)
		doc = table
	default:
		return domain.Shard{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, name)
	}
	if err != nil {
		return domain.Shard{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	shard := domain.Shard{
		FamilyID: FamilyFromPath(name),
		Origin:   name,
	}

	var items []any
	switch v := normalize(doc).(type) {
	case nil:
		items = nil
	case []any:
		items = v
	case map[string]any:
		if family, ok := v["family"].(string); ok && strings.TrimSpace(family) != "" {
			shard.FamilyID = strings.TrimSpace(family)
		}
		switch records := v["records"].(type) {
		case nil:
		case []any:
			items = records
		default:
			return domain.Shard{}, fmt.Errorf("%w: %s: records must be a list", domain.ErrInvalidInput, name)
		}
	default:
		return domain.Shard{}, fmt.Errorf("%w: %s: expected a list or an object", domain.ErrInvalidInput, name)
	}

	shard.Records = make([]domain.RawRecord, 0, len(items))
	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			return domain.Shard{}, fmt.Errorf("%w: %s: record %d is not an object", domain.ErrInvalidInput, name, i)
		}
		shard.Records = append(shard.Records, domain.RawRecord(record))
	}

	return shard, nil
}

// normalize converts decoder-specific values into the plain shapes the
// field normalisers accept.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalize(val)
		}
		return out
	case time.Time:
		return x.Format(time.RFC3339)
	case toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return fmt.Sprint(x)
	default:
		return v
	}
}
