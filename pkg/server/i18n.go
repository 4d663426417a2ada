package server

import (
	"net/http"
	"strings"
)

// messages is the static i18n lookup table for user-facing strings.
// Unknown languages fall back to English.
var messages = map[string]map[string]string{
	"en": {
		"backend_unavailable": "The directory is temporarily unavailable, please try again later.",
		"internal_error":      "Internal server error.",
		"not_found":           "Not found.",
		"forbidden":           "Forbidden.",
	},
	"zh": {
		"backend_unavailable": "目录暂时不可用，请稍后再试。",
		"internal_error":      "服务器内部错误。",
		"not_found":           "未找到。",
		"forbidden":           "没有权限。",
	},
}

func message(lang, key string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return messages["en"][key]
}

// lang resolves the response language from the lang query parameter or
// the Accept-Language header.
func lang(r *http.Request) string {
	if l := r.URL.Query().Get("lang"); l != "" {
		return normalizeLang(l)
	}
	return normalizeLang(r.Header.Get("Accept-Language"))
}

func normalizeLang(l string) string {
	if strings.HasPrefix(strings.ToLower(l), "zh") {
		return "zh"
	}
	return "en"
}
