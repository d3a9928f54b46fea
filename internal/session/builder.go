package session

import (
	"strings"

	"github.com/artpar/reqscope/internal/core"
	"github.com/artpar/reqscope/internal/logging"
	"go.uber.org/zap"
)

// Snapshot is a value copy of the form taken when Send is activated.
type Snapshot struct {
	Method    string
	URL       string
	Params    string
	Headers   string
	Body      string
	AuthType  core.AuthType
	AuthInput string
}

// Pair is one key:value entry from a params or headers field.
type Pair struct {
	Key   string
	Value string
}

// ParsePairs splits comma-separated key:value entries. Each entry is split
// on its first ':' and both halves are trimmed. Entries without ':' are
// dropped; their count is returned as skipped.
func ParsePairs(text string) (pairs []Pair, skipped int) {
	for _, entry := range strings.Split(text, ",") {
		key, value, ok := strings.Cut(entry, ":")
		if !ok {
			skipped++
			continue
		}
		pairs = append(pairs, Pair{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	return pairs, skipped
}

var bodyMethods = map[string]bool{
	"POST":  true,
	"PUT":   true,
	"PATCH": true,
}

// normalizeMethod maps the selected method onto a transport verb.
func normalizeMethod(method string) string {
	switch method {
	case "GET", "POST", "PUT", "DELETE", "PATCH":
		return method
	}
	return "GET"
}

// Build turns a snapshot into a request. It never fails: malformed pairs
// and malformed Basic credentials are skipped.
func Build(s Snapshot) *core.Request {
	method := normalizeMethod(s.Method)
	req := core.NewRequest(method, withQuery(s.URL, s.Params))

	if auth, ok := parseAuth(s.AuthType, s.AuthInput); ok {
		logging.Debug("attaching credential",
			zap.String("request_id", req.ID()),
			zap.String("auth", auth.Summary()),
		)
		auth.Apply(req.Headers())
	}

	headers, skipped := ParsePairs(s.Headers)
	if skipped > 0 && strings.TrimSpace(s.Headers) != "" {
		logging.Debug("skipped malformed headers",
			zap.String("request_id", req.ID()),
			zap.Int("skipped", skipped),
		)
	}
	for _, h := range headers {
		req.AddHeader(h.Key, h.Value)
	}

	if bodyMethods[method] && s.Body != "" {
		req.SetBody(core.NewRawBody([]byte(s.Body), ""))
	}

	return req
}

// withQuery appends the params field to rawURL as a query string.
func withQuery(rawURL, params string) string {
	if strings.TrimSpace(params) == "" {
		return rawURL
	}

	pairs, skipped := ParsePairs(params)
	if skipped > 0 {
		logging.Debug("skipped malformed params", zap.Int("skipped", skipped))
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.Key+"="+p.Value)
	}

	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + strings.Join(parts, "&")
}

// parseAuth reads the credential text for the selected auth type.
func parseAuth(authType core.AuthType, text string) (core.AuthConfig, bool) {
	text = strings.TrimSpace(text)

	switch authType {
	case core.AuthTypeBearer:
		return core.NewBearerAuth(text), true
	case core.AuthTypeBasic:
		user, pass, ok := strings.Cut(text, ":")
		if !ok {
			return core.AuthConfig{}, false
		}
		return core.NewBasicAuth(strings.TrimSpace(user), strings.TrimSpace(pass)), true
	}
	return core.AuthConfig{}, false
}
