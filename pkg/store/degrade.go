package store

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Unavailable classifies a backend failure as a degraded-mode condition
// (missing configuration, auth rejection, connectivity, encoding
// safety, resource exhaustion) as opposed to a genuine server error.
// The HTTP layer responds to unavailable failures with an empty/soft
// payload and an explanatory message instead of a hard 500.
//
// Structured checks run first: pgx surfaces SQLSTATE codes for the
// relational path, and the net package types cover transport failures.
// The REST path only yields free-text bodies, so a lower-cased
// substring match is the fallback there. The substring list is coarse
// and grows empirically; backend error taxonomies differ too much for
// anything tighter.
func Unavailable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) == 5 {
		switch pgErr.Code[:2] {
		case "08": // connection exceptions
			return true
		case "28": // invalid authorization
			return true
		case "53": // insufficient resources (pool, memory, disk)
			return true
		case "57": // operator intervention: shutdown, cancel
			return true
		}
		switch pgErr.Code {
		case "22021": // character not in repertoire: null byte, bad encoding
			return true
		case "3D000": // invalid catalog name: misconfigured database
			return true
		}
		return false
	}

	return matchesUnavailable(err.Error())
}

// unavailablePatterns is matched against the lower-cased error text.
// Intentionally loose: it has to cover PostgREST free-text bodies,
// driver messages, and dial errors alike.
var unavailablePatterns = []string{
	"missing configuration",
	"no database configured",
	"connection refused",
	"connection reset",
	"broken pipe",
	"no such host",
	"network is unreachable",
	"timeout",
	"timed out",
	"unauthorized",
	"permission denied",
	"authentication",
	"invalid api key",
	"apikey",
	"jwt",
	"password",
	"invalid byte sequence",
	"unsupported unicode",
	"null character",
	"too many clients",
	"too many connections",
	"statement cache",
	"pool exhausted",
	"acquire timeout",
}

func matchesUnavailable(msg string) bool {
	msg = strings.ToLower(msg)
	for _, pattern := range unavailablePatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
