package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// OS describes the family of the operating system the shell runs on.
type OS struct {
	Windows bool
	Mac     bool
	Nix     bool
}

// CurrentOS returns the family of the running operating system.
func CurrentOS() OS {
	return osFamily(runtime.GOOS)
}

func osFamily(goos string) OS {
	switch goos {
	case "windows":
		return OS{Windows: true}
	case "darwin", "ios":
		return OS{Mac: true}
	case "linux", "android", "freebsd", "netbsd", "openbsd", "dragonfly", "solaris", "illumos", "aix":
		return OS{Nix: true}
	default:
		return OS{Nix: strings.HasSuffix(goos, "bsd")}
	}
}

// DirSeparator returns the path separator of the running operating system.
func DirSeparator() string {
	return string(filepath.Separator)
}

// SettingsPath returns the per-user settings directory of the shell:
// %APPDATA%\cmdreg on Windows and $HOME/.cmdreg elsewhere.
func SettingsPath() string {
	if CurrentOS().Windows {
		return filepath.Join(os.Getenv("APPDATA"), "cmdreg")
	}

	return filepath.Join(os.Getenv("HOME"), ".cmdreg")
}
