package platform

import "devsetup/internal/execx"

// PackageManager describes one system package manager: how to install a named
// package through it and how to purge its caches.
type PackageManager struct {
	Name        string
	installArgs []string
	cleanArgs   []string
}

// InstallCommand returns the command line that installs the given package.
func (m PackageManager) InstallCommand(pkg string) (string, []string) {
	args := append(append([]string{}, m.installArgs...), pkg)
	return m.Name, args
}

// CleanCommand returns the command line that purges the manager's cache.
func (m PackageManager) CleanCommand() (string, []string) {
	return m.Name, append([]string{}, m.cleanArgs...)
}

// linuxManagers is the probe order on Linux. The first manager found on PATH
// is used exclusively; a failed install does not fall through to the next one.
var linuxManagers = []PackageManager{
	{Name: "apk", installArgs: []string{"add", "--no-cache"}, cleanArgs: []string{"cache", "clean"}},
	{Name: "apt-get", installArgs: []string{"install", "-y"}, cleanArgs: []string{"clean"}},
	{Name: "yum", installArgs: []string{"install", "-y"}, cleanArgs: []string{"clean", "all"}},
	{Name: "pacman", installArgs: []string{"-S", "--noconfirm"}, cleanArgs: []string{"-Sc", "--noconfirm"}},
}

var brew = PackageManager{
	Name:        "brew",
	installArgs: []string{"install"},
	cleanArgs:   []string{"cleanup"},
}

// ProbeManager locates the system package manager for the platform. The probe
// runs once per invocation; callers hold on to the result.
func ProbeManager(r execx.Runner, p Platform) (PackageManager, bool) {
	switch p.Tag {
	case TagLinux:
		for _, m := range linuxManagers {
			if _, err := r.LookPath(m.Name); err == nil {
				return m, true
			}
		}
		return PackageManager{}, false
	case TagMac:
		if _, err := r.LookPath(brew.Name); err == nil {
			return brew, true
		}
		return PackageManager{}, false
	default:
		return PackageManager{}, false
	}
}
