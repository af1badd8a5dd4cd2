package patch

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Rewrites the pool-creation request in the frontend blockchain service so it
// carries the stored bearer token. One-off source transformation; the patched
// file is the deliverable, there is no runtime component.

// ErrNoMatch means the source file does not contain the expected fetch call,
// either because the frontend changed shape or the path is wrong.
var ErrNoMatch = errors.New("pool-creation fetch call not found")

// marker identifies an already-patched file.
const marker = "localStorage.getItem('token')"

var fetchRe = regexp.MustCompile(
	`(?s)(const response = await fetch\(` + "`" + `\$\{import\.meta\.env\.VITE_API_URL\}/api/amm/pools` + "`" + `, \{\s*method: 'POST',\s*)headers: \{ 'Content-Type': 'application/json' \},(\s*body: JSON\.stringify\(payload\)\s*\}\);)`,
)

const tokenBlock = `// Get JWT token from localStorage
        const token = localStorage.getItem('token');
        const headers: HeadersInit = {
          'Content-Type': 'application/json'
        };

        if (token) {
          headers['Authorization'] = ` + "`Bearer ${token}`" + `;
        }

        `

// Apply returns the patched source. changed is false when the file already
// carries the token block.
func Apply(src string) (out string, changed bool, err error) {
	if strings.Contains(src, marker) {
		return src, false, nil
	}
	sub := fetchRe.FindStringSubmatch(src)
	if sub == nil {
		return "", false, ErrNoMatch
	}
	patched := tokenBlock + sub[1] + "headers," + sub[2]
	return strings.Replace(src, sub[0], patched, 1), true, nil
}

// File applies the rewrite in place.
func File(path string) (changed bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	out, changed, err := Apply(string(b))
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if !changed {
		return false, nil
	}
	return true, os.WriteFile(path, []byte(out), 0o644)
}
