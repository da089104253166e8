package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// Matches 21.10.3.9, 21.10.3 and 21.10, ignoring build suffixes.
var versionPattern = regexp.MustCompile(`^\s*(\d+)\.(\d+)(?:\.(\d+))?`)

// VersionInfo represents parsed ClickHouse version information
type VersionInfo struct {
	Major int    // Major version number (e.g., 21)
	Minor int    // Minor version number (e.g., 10)
	Patch int    // Patch version number (e.g., 3)
	Raw   string // Raw version string from ClickHouse
}

// String returns the version as a string in format "major.minor.patch"
func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsAtLeast checks if this version is at least the specified version
func (v VersionInfo) IsAtLeast(major, minor int) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

// ServerVersion queries the version of the server behind db.
func ServerVersion(ctx context.Context, db *sql.DB) (*VersionInfo, error) {
	var raw string
	if err := db.QueryRowContext(ctx, "SELECT version()").Scan(&raw); err != nil {
		return nil, errors.Wrap(err, "failed to query ClickHouse version")
	}

	return ParseVersion(raw)
}

// ParseVersion parses strings such as "21.10.3.9", "22.8.2.11-testing" and
// "21.10.3.9 (official build)".
func ParseVersion(raw string) (*VersionInfo, error) {
	m := versionPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, errors.Errorf("invalid version format: %s", raw)
	}

	v := &VersionInfo{Raw: raw}
	v.Major, _ = strconv.Atoi(m[1])
	v.Minor, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		v.Patch, _ = strconv.Atoi(m[3])
	}

	return v, nil
}
