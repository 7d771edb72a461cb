package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"skillswap/internal/search"
)

const (
	directoryCachePrefix  = "directory:list:"
	directoryCachePattern = "directory:*"
)

type directoryCacheKeyInput struct {
	Query string `json:"q"`
	Skill string `json:"skill"`
	Page  int    `json:"page"`
	Size  int    `json:"size"`
}

// DirectoryCacheKey is stable under case and whitespace differences in the
// text and skill filters.
func DirectoryCacheKey(params DirectoryParams, size int) string {
	in := directoryCacheKeyInput{
		Query: search.CacheKeyPart(params.Query),
		Skill: search.CacheKeyPart(params.Skill),
		Page:  params.Page,
		Size:  size,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return directoryCachePrefix + hex.EncodeToString(sum[:])
}

func skillLookupKey(name string) string {
	return "skill:id:" + search.CacheKeyPart(name)
}
