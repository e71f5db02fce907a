// Package identity resolves the user a provisioning run works on behalf of.
package identity

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"

	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
)

const (
	rootUser     = "root"
	fallbackHome = "/root"
)

// ErrUserLookup is returned when the escalating user is missing from the account database.
var ErrUserLookup = errors.New("failed to look up invoking user")

// escalationVars are checked in order for the name of the user who ran sudo or doas.
var escalationVars = []string{"SUDO_USER", "DOAS_USER"}

// Resolver determines the InvocationContext. Its fields default to the
// process environment and the system account database.
type Resolver struct {
	LookupEnv   func(key string) (string, bool)
	LookupUser  func(name string) (*user.User, error)
	CurrentUser func() (*user.User, error)
	Euid        func() int
}

// NewResolver returns a Resolver backed by the running process.
func NewResolver() *Resolver {
	return &Resolver{
		LookupEnv:   os.LookupEnv,
		LookupUser:  user.Lookup,
		CurrentUser: user.Current,
		Euid:        os.Geteuid,
	}
}

// Resolve returns the invoking user and home directory. Without an escalation
// variable the current account is used unless the process is root, in which
// case the context is root-owned.
func (r *Resolver) Resolve() (v1alpha1.InvocationContext, error) {
	euid := r.Euid()

	account, err := r.invokingAccount(euid)
	if err != nil {
		return v1alpha1.InvocationContext{}, err
	}

	if account == nil || account.Username == rootUser || account.Uid == "0" {
		return r.rootContext(), nil
	}

	uid, err := strconv.Atoi(account.Uid)
	if err != nil {
		return v1alpha1.InvocationContext{}, fmt.Errorf("%w %q: invalid uid %q", ErrUserLookup, account.Username, account.Uid)
	}

	gid, err := strconv.Atoi(account.Gid)
	if err != nil {
		return v1alpha1.InvocationContext{}, fmt.Errorf("%w %q: invalid gid %q", ErrUserLookup, account.Username, account.Gid)
	}

	home := account.HomeDir
	if home == "" {
		home = "/home/" + account.Username
	}

	return v1alpha1.InvocationContext{
		ActualUser: account.Username,
		HomeDir:    home,
		UID:        uid,
		GID:        gid,
		Escalated:  euid == 0,
	}, nil
}

func (r *Resolver) invokingAccount(euid int) (*user.User, error) {
	for _, key := range escalationVars {
		name, ok := r.LookupEnv(key)
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			continue
		}

		if name == rootUser {
			return nil, nil
		}

		account, err := r.LookupUser(name)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrUserLookup, name, err)
		}

		return account, nil
	}

	if euid == 0 {
		return nil, nil
	}

	account, err := r.CurrentUser()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserLookup, err)
	}

	return account, nil
}

func (r *Resolver) rootContext() v1alpha1.InvocationContext {
	home, _ := r.LookupEnv("HOME")
	if strings.TrimSpace(home) == "" {
		if account, err := r.LookupUser(rootUser); err == nil && account.HomeDir != "" {
			home = account.HomeDir
		} else {
			home = fallbackHome
		}
	}

	return v1alpha1.InvocationContext{
		ActualUser: rootUser,
		HomeDir:    home,
		IsRoot:     true,
	}
}
