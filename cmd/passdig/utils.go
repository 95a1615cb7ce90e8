package passdig

import (
	"strings"

	"github.com/passdig/passdig/internal/config"
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

// pickSetInt is pickInt for flags whose zero value is meaningful: the CLI
// wins only when the flag was given explicitly, and fallback applies when no
// layer set anything.
func pickSetInt(changed bool, cli int, local, global *int, fallback int) int {
	if changed {
		return cli
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return fallback
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// pickList resolves a list setting. CLI entries (inline first, then the
// list file) replace the config layers entirely; otherwise the local config
// wins over the global one when it defines any entry.
func pickList(inline, file string, local, global func() ([]string, error)) ([]string, error) {
	out := splitList(inline)
	if file != "" {
		items, err := config.ReadList(file)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	if len(out) > 0 {
		return out, nil
	}
	items, err := local()
	if err != nil || len(items) > 0 {
		return items, err
	}
	return global()
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
