package elmdesk

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Platform is an operating system electron-builder can package for.
type Platform uint

const (
	Linux Platform = iota
	Windows
	Mac

	platformNum
)

var platformNames = [platformNum]string{"linux", "windows", "mac"}

func (p Platform) String() string {
	if p >= platformNum {
		return fmt.Sprintf("Platform(%d)", uint(p))
	}
	return platformNames[p]
}

func ParsePlatform(s string) (Platform, error) {
	s = strings.ToLower(s)
	switch s {
	case "darwin", "macos":
		return Mac, nil
	case "win":
		return Windows, nil
	}
	for i, n := range platformNames {
		if n == s {
			return Platform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown platform '%s'", s)
}

// Platforms is a set of [Platform]. The zero value is the empty set.
type Platforms struct{ bs bitset.BitSet }

func NewPlatforms(ps ...Platform) (res Platforms) {
	for _, p := range ps {
		res.bs.Set(uint(p))
	}
	return res
}

func AllPlatforms() Platforms { return NewPlatforms(Linux, Windows, Mac) }

// ParsePlatforms parses platform names. No names yield [AllPlatforms].
func ParsePlatforms(names []string) (Platforms, error) {
	if len(names) == 0 {
		return AllPlatforms(), nil
	}
	var res Platforms
	for _, n := range names {
		p, err := ParsePlatform(n)
		if err != nil {
			return res, err
		}
		res.bs.Set(uint(p))
	}
	return res, nil
}

func (ps Platforms) Has(p Platform) bool { return ps.bs.Test(uint(p)) }

func (ps Platforms) Len() int { return int(ps.bs.Count()) }

// List returns the platforms in the set in ascending order.
func (ps Platforms) List() (ls []Platform) {
	for i, ok := ps.bs.NextSet(0); ok; i, ok = ps.bs.NextSet(i + 1) {
		ls = append(ls, Platform(i))
	}
	return ls
}

// Flags returns the electron-builder command line flags that select the
// platforms in ps.
func (ps Platforms) Flags() []string {
	var fs []string
	for _, p := range ps.List() {
		fs = append(fs, "--"+p.String())
	}
	return fs
}

func (ps Platforms) String() string {
	var sb strings.Builder
	for i, p := range ps.List() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.String())
	}
	return sb.String()
}
