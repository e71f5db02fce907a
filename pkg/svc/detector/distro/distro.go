// Package distro reads os-release and classifies the host into a supported
// distribution family.
package distro

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/acobaugh/osrelease"
	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
)

// Detection errors.
var (
	// ErrOSReleaseNotFound is returned when none of the os-release paths can be read.
	ErrOSReleaseNotFound = errors.New("os-release data not found")

	// ErrOSReleaseInvalid is returned when os-release carries no ID.
	ErrOSReleaseInvalid = errors.New("os-release data has no ID")

	// ErrUnsupportedDistribution is returned when neither ID nor ID_LIKE maps to a family.
	ErrUnsupportedDistribution = errors.New("unsupported distribution")
)

// DefaultPaths are the os-release locations in lookup order.
var DefaultPaths = []string{osrelease.EtcOsRelease, osrelease.UsrLibOsRelease}

// familyByID maps exact os-release IDs to their family.
var familyByID = map[string]v1alpha1.Family{
	"debian":     v1alpha1.FamilyDebian,
	"ubuntu":     v1alpha1.FamilyDebian,
	"linuxmint":  v1alpha1.FamilyDebian,
	"pop":        v1alpha1.FamilyDebian,
	"raspbian":   v1alpha1.FamilyDebian,
	"elementary": v1alpha1.FamilyDebian,
	"zorin":      v1alpha1.FamilyDebian,
	"kali":       v1alpha1.FamilyDebian,
	"rhel":       v1alpha1.FamilyRHEL,
	"centos":     v1alpha1.FamilyRHEL,
	"rocky":      v1alpha1.FamilyRHEL,
	"almalinux":  v1alpha1.FamilyRHEL,
	"ol":         v1alpha1.FamilyRHEL,
	"amzn":       v1alpha1.FamilyRHEL,
	"fedora":     v1alpha1.FamilyFedora,
	"alpine":     v1alpha1.FamilyAlpine,
}

// likeRules are checked in order against ID_LIKE when ID is not in familyByID.
var likeRules = []struct {
	markers []string
	family  v1alpha1.Family
}{
	{markers: []string{"debian", "ubuntu"}, family: v1alpha1.FamilyDebian},
	{markers: []string{"rhel", "centos"}, family: v1alpha1.FamilyRHEL},
	{markers: []string{"fedora"}, family: v1alpha1.FamilyFedora},
	{markers: []string{"alpine"}, family: v1alpha1.FamilyAlpine},
}

// Detector reads os-release from Paths and looks up dnf on PATH.
type Detector struct {
	Paths []string
	// ReadFile parses one os-release file into its key/value pairs.
	ReadFile func(name string) (map[string]string, error)
	LookPath func(file string) (string, error)
}

// NewDetector returns a Detector for paths, or DefaultPaths when none are given.
func NewDetector(paths ...string) *Detector {
	if len(paths) == 0 {
		paths = DefaultPaths
	}

	return &Detector{
		Paths:    paths,
		ReadFile: osrelease.ReadFile,
		LookPath: exec.LookPath,
	}
}

// Detect reads the first available os-release file and classifies it.
func (d *Detector) Detect() (v1alpha1.DistroProfile, error) {
	release, err := d.readOSRelease()
	if err != nil {
		return v1alpha1.DistroProfile{}, err
	}

	_, lookErr := d.LookPath("dnf")

	return Classify(release, lookErr == nil)
}

func (d *Detector) readOSRelease() (map[string]string, error) {
	var errs []error

	for _, path := range d.Paths {
		release, err := d.ReadFile(path)
		if err == nil {
			return release, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrOSReleaseNotFound, errors.Join(errs...))
	}

	return nil, fmt.Errorf("%w (looked in %s)", ErrOSReleaseNotFound, strings.Join(d.Paths, ", "))
}

// Classify maps parsed os-release fields to a DistroProfile. hasDnf selects
// dnf over yum for the rhel family.
func Classify(release map[string]string, hasDnf bool) (v1alpha1.DistroProfile, error) {
	id := strings.ToLower(strings.TrimSpace(release["ID"]))
	if id == "" {
		return v1alpha1.DistroProfile{}, ErrOSReleaseInvalid
	}

	profile := v1alpha1.DistroProfile{
		ID:              id,
		IDLike:          strings.Fields(strings.ToLower(release["ID_LIKE"])),
		Name:            release["NAME"],
		VersionID:       release["VERSION_ID"],
		VersionCodename: release["VERSION_CODENAME"],
		UbuntuCodename:  release["UBUNTU_CODENAME"],
	}

	family, ok := familyByID[id]
	if !ok {
		family, ok = familyFromLike(profile.IDLike)
	}

	if !ok {
		return v1alpha1.DistroProfile{}, fmt.Errorf(
			"%w %q (supported: %s families)",
			ErrUnsupportedDistribution,
			id,
			strings.Join(v1alpha1.FamilyNames(), ", "),
		)
	}

	profile.Family = family
	profile.PackageManager = packageManagerFor(family, hasDnf)

	return profile, nil
}

func familyFromLike(idLike []string) (v1alpha1.Family, bool) {
	for _, rule := range likeRules {
		for _, like := range idLike {
			for _, marker := range rule.markers {
				if strings.Contains(like, marker) {
					return rule.family, true
				}
			}
		}
	}

	return "", false
}

func packageManagerFor(family v1alpha1.Family, hasDnf bool) v1alpha1.PackageManager {
	switch family {
	case v1alpha1.FamilyDebian:
		return v1alpha1.PackageManagerApt
	case v1alpha1.FamilyRHEL:
		if hasDnf {
			return v1alpha1.PackageManagerDnf
		}

		return v1alpha1.PackageManagerYum
	case v1alpha1.FamilyFedora:
		return v1alpha1.PackageManagerDnf
	case v1alpha1.FamilyAlpine:
		return v1alpha1.PackageManagerApk
	default:
		return ""
	}
}
