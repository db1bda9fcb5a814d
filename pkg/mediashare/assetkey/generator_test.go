package assetkey

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestFlatGenerator(t *testing.T) {
	gen := NewFlatGenerator()
	itemID := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")

	tests := []struct {
		name     string
		fileName string
		expected string
	}{
		{
			name:     "without filename",
			fileName: "",
			expected: "assets/123e4567-e89b-12d3-a456-426614174000",
		},
		{
			name:     "with filename",
			fileName: "poster.jpg",
			expected: "assets/123e4567-e89b-12d3-a456-426614174000/poster.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := gen.GenerateKey(itemID, tt.fileName)
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestShardedGenerator(t *testing.T) {
	gen := NewShardedGenerator()
	itemID := uuid.MustParse("987fcdeb-51a2-43d1-9f12-345678901234")

	t.Run("shards by item id", func(t *testing.T) {
		key := gen.GenerateKey(itemID, "")
		if !strings.HasPrefix(key, "assets/98/") {
			t.Errorf("expected shard prefix assets/98/, got %s", key)
		}
	})

	t.Run("appends sanitized filename", func(t *testing.T) {
		key := gen.GenerateKey(itemID, "my movie.mp4")
		if !strings.HasSuffix(key, "_my_movie.mp4") {
			t.Errorf("expected sanitized filename suffix, got %s", key)
		}
		if strings.Contains(key, " ") {
			t.Errorf("expected no spaces in key, got %s", key)
		}
	})

	t.Run("drops non-ascii runes", func(t *testing.T) {
		key := gen.GenerateKey(itemID, "ciné.mp4")
		if strings.Contains(key, "é") {
			t.Errorf("expected ascii-only key, got %s", key)
		}
		if !strings.HasSuffix(key, "_cin.mp4") {
			t.Errorf("expected remaining ascii runes preserved, got %s", key)
		}
	})

	t.Run("strips path separators", func(t *testing.T) {
		key := gen.GenerateKey(itemID, "../../etc/passwd")
		if strings.Contains(key, "..") {
			t.Errorf("expected no parent traversal in key, got %s", key)
		}
	})

	t.Run("distinct items produce distinct keys", func(t *testing.T) {
		other := gen.GenerateKey(uuid.New(), "file.bin")
		same := gen.GenerateKey(itemID, "file.bin")
		if other == same {
			t.Error("expected different keys for different items")
		}
	})
}
