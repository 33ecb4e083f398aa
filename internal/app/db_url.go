package app

import (
	"net/url"
	"strings"
)

// Parameters pgx understands but lib/pq would send to the server as unknown settings.
var pgxOnlyParams = []string{"disable_prepared_binary_result", "default_query_exec_mode", "statement_cache_capacity"}

// dbTarget is what openDB needs from DB_URL: the connection string to dial and the
// identifiers safe to put on spans and log lines.
type dbTarget struct {
	DSN  string
	Name string
	Host string
}

// resolveDBTarget accepts both URL and keyword/value DSNs. URLs are tagged with the
// service as application_name so pg_stat_activity shows which process holds a connection.
func resolveDBTarget(raw, applicationName string) dbTarget {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return dbTarget{
			DSN:  raw,
			Name: dsnValue(trimmed, "dbname"),
			Host: dsnValue(trimmed, "host"),
		}
	}

	query := parsed.Query()
	for _, key := range pgxOnlyParams {
		query.Del(key)
	}
	if name := strings.TrimSpace(applicationName); name != "" && query.Get("application_name") == "" {
		query.Set("application_name", name)
	}
	parsed.RawQuery = query.Encode()

	return dbTarget{
		DSN:  parsed.String(),
		Name: strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")),
		Host: parsed.Hostname(),
	}
}

func dsnValue(dsn, key string) string {
	prefix := key + "="
	for _, token := range strings.Fields(dsn) {
		if value, ok := strings.CutPrefix(token, prefix); ok {
			return strings.Trim(strings.TrimSpace(value), `"'`)
		}
	}
	return ""
}
