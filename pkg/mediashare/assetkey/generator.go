package assetkey

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Generator defines the interface for asset key generation strategies
type Generator interface {
	// GenerateKey creates a storage key for an item's asset
	GenerateKey(itemID uuid.UUID, fileName string) string
}

// FlatGenerator produces a flat item-scoped key layout:
// assets/{itemID}/{fileName}
type FlatGenerator struct{}

func NewFlatGenerator() *FlatGenerator {
	return &FlatGenerator{}
}

func (g *FlatGenerator) GenerateKey(itemID uuid.UUID, fileName string) string {
	if fileName != "" {
		return fmt.Sprintf("assets/%s/%s", itemID, sanitizeFilename(fileName))
	}
	return fmt.Sprintf("assets/%s", itemID)
}

// ShardedGenerator produces Git-style sharded keys to keep any single
// storage directory small:
// assets/ab/cd1234..._filename
type ShardedGenerator struct {
	// ShardLength controls how many characters to use for sharding (default: 2)
	ShardLength int
}

func NewShardedGenerator() *ShardedGenerator {
	return &ShardedGenerator{
		ShardLength: 2,
	}
}

func (g *ShardedGenerator) GenerateKey(itemID uuid.UUID, fileName string) string {
	idStr := strings.ReplaceAll(itemID.String(), "-", "")

	shardLen := g.ShardLength
	if shardLen <= 0 || shardLen > len(idStr) {
		shardLen = 2
	}

	shardDir := idStr[:shardLen]
	remaining := idStr[shardLen:]

	filename := remaining
	if fileName != "" {
		filename = fmt.Sprintf("%s_%s", remaining, sanitizeFilename(fileName))
	}

	return fmt.Sprintf("assets/%s/%s", shardDir, filename)
}

// sanitizeFilename strips path separators and characters that are unsafe in
// object keys. Non-ASCII runes are dropped so keys stay portable across
// storage backends.
func sanitizeFilename(fileName string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"..", "_",
		" ", "_",
		"#", "_",
		"?", "_",
		"&", "_",
	)
	sanitized := replacer.Replace(fileName)
	return strings.Map(func(r rune) rune {
		if r < 128 && r >= 32 {
			return r
		}
		return -1
	}, sanitized)
}
