package model

// Stats counts what a dump has written
type Stats struct {
	Files int
	Bytes int64
}

// Add accumulates other stats into s
func (s *Stats) Add(other Stats) {
	s.Files += other.Files
	s.Bytes += other.Bytes
}

// AddFile accounts for one written file
func (s *Stats) AddFile(size int64) {
	s.Files++
	s.Bytes += size
}
