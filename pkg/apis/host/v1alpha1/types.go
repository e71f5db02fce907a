package v1alpha1

// InvocationContext identifies the human user the host is provisioned for.
// When the tool runs under sudo or doas this is the invoking user, not root.
type InvocationContext struct {
	// ActualUser is the login name of the target user.
	ActualUser string
	// HomeDir is the target user's home directory.
	HomeDir string
	// UID and GID own every file written under HomeDir.
	UID int
	GID int
	// IsRoot is true when the target user is root itself.
	IsRoot bool
	// Escalated is true when the process runs as root on behalf of another user.
	Escalated bool
}

// DistroProfile is the classified result of reading os-release.
type DistroProfile struct {
	ID              string
	IDLike          []string
	Name            string
	VersionID       string
	VersionCodename string
	UbuntuCodename  string
	Family          Family
	PackageManager  PackageManager
}

// Codename returns the release codename used by Docker's apt repository.
// UBUNTU_CODENAME wins so derivatives like Mint resolve to their Ubuntu base.
func (p DistroProfile) Codename() string {
	if p.UbuntuCodename != "" {
		return p.UbuntuCodename
	}

	return p.VersionCodename
}

// DisplayName returns NAME, falling back to ID.
func (p DistroProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}

	return p.ID
}
