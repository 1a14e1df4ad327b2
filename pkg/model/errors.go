package model

import (
	"fmt"
)

// ManifestErr describes an invalid entry in a manifest
type ManifestErr struct {
	Path    string
	Section string
	Index   int
	msg     string
}

// NewManifestErr builds a ManifestErr for the entry at index (0-based) of a manifest section
func NewManifestErr(pth, section string, index int, msg string) ManifestErr {
	return ManifestErr{Path: pth, Section: section, Index: index, msg: msg}
}

func (e ManifestErr) Error() string {
	return fmt.Sprintf("%s: %s entry #%d: %s", e.Path, e.Section, e.Index+1, e.msg)
}
