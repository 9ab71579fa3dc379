package launcher

import (
	"crypto/md5"
	"strings"

	"github.com/google/uuid"
)

// Identity is the signed-in player as handed over by the auth collaborator.
type Identity struct {
	Name        string
	UUID        string
	AccessToken string
	// UserType is "msa", "mojang" or "legacy"
	UserType string
}

// OfflineIdentity derives the identity used for offline play. The UUID is
// the name based (version 3) UUID of "OfflinePlayer:<name>".
func OfflineIdentity(name string) Identity {
	sum := md5.Sum([]byte("OfflinePlayer:" + name))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	id := uuid.UUID(sum)
	return Identity{
		Name:        name,
		UUID:        strings.ReplaceAll(id.String(), "-", ""),
		AccessToken: "0",
		UserType:    "legacy",
	}
}
