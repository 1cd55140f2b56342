package sources

import "strings"

// ConfigString returns the trimmed string value for key from source.Config or a fallback.
func ConfigString(cfg Source, key, fallback string) string {
	if cfg.Config != nil {
		if raw, ok := cfg.Config[key]; ok {
			if val, ok := raw.(string); ok {
				if trimmed := strings.TrimSpace(val); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return fallback
}

// ConfigBool returns the boolean value for key from source.Config or a fallback.
func ConfigBool(cfg Source, key string, fallback bool) bool {
	if cfg.Config != nil {
		if raw, ok := cfg.Config[key]; ok {
			if val, ok := raw.(bool); ok {
				return val
			}
		}
	}
	return fallback
}

// ConfigStringSlice returns the string list for key from source.Config. YAML
// decodes sequences as []any, so both shapes are accepted.
func ConfigStringSlice(cfg Source, key string) []string {
	if cfg.Config == nil {
		return nil
	}
	raw, ok := cfg.Config[key]
	if !ok {
		return nil
	}

	var out []string
	switch vals := raw.(type) {
	case []string:
		for _, v := range vals {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	case []any:
		for _, v := range vals {
			if s, ok := v.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					out = append(out, trimmed)
				}
			}
		}
	}
	return out
}

// ConfigStringMap returns the string map for key from source.Config.
func ConfigStringMap(cfg Source, key string) map[string]string {
	if cfg.Config == nil {
		return nil
	}
	raw, ok := cfg.Config[key]
	if !ok {
		return nil
	}

	out := make(map[string]string)
	switch vals := raw.(type) {
	case map[string]string:
		for k, v := range vals {
			if k = strings.TrimSpace(k); k != "" && strings.TrimSpace(v) != "" {
				out[k] = strings.TrimSpace(v)
			}
		}
	case map[string]any:
		for k, v := range vals {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if k = strings.TrimSpace(k); k != "" && strings.TrimSpace(s) != "" {
				out[k] = strings.TrimSpace(s)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

const (
	ConfigUserAgentKey      = "user_agent"
	ConfigAcceptKey         = "accept"
	ConfigAcceptLanguageKey = "accept_language"
)

const defaultUserAgent = "learnstack-course-harvester/1.0 (educational, non-commercial)"

// Headers builds the common request headers from a source config.
func Headers(cfg Source) map[string]string {
	headers := make(map[string]string, 3)

	headers["User-Agent"] = ConfigString(cfg, ConfigUserAgentKey, defaultUserAgent)
	if v := ConfigString(cfg, ConfigAcceptKey, ""); v != "" {
		headers["Accept"] = v
	}
	if v := ConfigString(cfg, ConfigAcceptLanguageKey, ""); v != "" {
		headers["Accept-Language"] = v
	}

	return headers
}
