package users

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"golang.org/x/text/cases"
)

const gravatarBaseURL = "https://gravatar.com/avatar/"

// DefaultAvatar returns the identicon gravatar URL for email.
// The same email always yields the same URL.
func DefaultAvatar(email string) string {
	normalized := cases.Fold().String(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return gravatarBaseURL + hex.EncodeToString(sum[:]) + "?d=identicon"
}
