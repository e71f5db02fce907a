package identity_test

import (
	"errors"
	"os/user"
	"testing"

	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/vmprep/pkg/svc/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoSuchUser = errors.New("no such user")

type accounts map[string]*user.User

func (a accounts) lookup(name string) (*user.User, error) {
	if account, ok := a[name]; ok {
		return account, nil
	}

	return nil, errNoSuchUser
}

func newResolver(env map[string]string, euid int, known accounts, current *user.User) *identity.Resolver {
	return &identity.Resolver{
		LookupEnv: func(key string) (string, bool) {
			value, ok := env[key]

			return value, ok
		},
		LookupUser: known.lookup,
		CurrentUser: func() (*user.User, error) {
			if current == nil {
				return nil, errNoSuchUser
			}

			return current, nil
		},
		Euid: func() int { return euid },
	}
}

var (
	alice = &user.User{Username: "alice", Uid: "1000", Gid: "1000", HomeDir: "/home/alice"}
	bob   = &user.User{Username: "bob", Uid: "1001", Gid: "100", HomeDir: "/home/bob"}
	root  = &user.User{Username: "root", Uid: "0", Gid: "0", HomeDir: "/var/root"}
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     map[string]string
		euid    int
		current *user.User
		want    v1alpha1.InvocationContext
	}{
		{
			name: "sudo user is preferred",
			env:  map[string]string{"SUDO_USER": "alice", "DOAS_USER": "bob", "HOME": "/root"},
			euid: 0,
			want: v1alpha1.InvocationContext{
				ActualUser: "alice", HomeDir: "/home/alice", UID: 1000, GID: 1000, Escalated: true,
			},
		},
		{
			name: "doas user when sudo is unset",
			env:  map[string]string{"SUDO_USER": " ", "DOAS_USER": "bob"},
			euid: 0,
			want: v1alpha1.InvocationContext{
				ActualUser: "bob", HomeDir: "/home/bob", UID: 1001, GID: 100, Escalated: true,
			},
		},
		{
			name:    "current account when not root",
			env:     map[string]string{},
			euid:    1000,
			current: alice,
			want: v1alpha1.InvocationContext{
				ActualUser: "alice", HomeDir: "/home/alice", UID: 1000, GID: 1000,
			},
		},
		{
			name: "plain root uses HOME",
			env:  map[string]string{"HOME": "/srv/admin"},
			euid: 0,
			want: v1alpha1.InvocationContext{ActualUser: "root", HomeDir: "/srv/admin", IsRoot: true},
		},
		{
			name: "root without HOME uses the account database",
			env:  map[string]string{},
			euid: 0,
			want: v1alpha1.InvocationContext{ActualUser: "root", HomeDir: "/var/root", IsRoot: true},
		},
		{
			name: "sudo from root is root-owned",
			env:  map[string]string{"SUDO_USER": "root", "HOME": "/root"},
			euid: 0,
			want: v1alpha1.InvocationContext{ActualUser: "root", HomeDir: "/root", IsRoot: true},
		},
	}

	known := accounts{"alice": alice, "bob": bob, "root": root}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			resolver := newResolver(testCase.env, testCase.euid, known, testCase.current)

			got, err := resolver.Resolve()

			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestResolve_RootFallsBackToSlashRoot(t *testing.T) {
	t.Parallel()

	resolver := newResolver(map[string]string{}, 0, accounts{}, nil)

	got, err := resolver.Resolve()

	require.NoError(t, err)
	assert.Equal(t, "/root", got.HomeDir)
	assert.True(t, got.IsRoot)
}

func TestResolve_UnknownEscalationUserIsFatal(t *testing.T) {
	t.Parallel()

	resolver := newResolver(map[string]string{"SUDO_USER": "ghost"}, 0, accounts{}, nil)

	_, err := resolver.Resolve()

	require.ErrorIs(t, err, identity.ErrUserLookup)
	require.ErrorIs(t, err, errNoSuchUser)
	assert.Contains(t, err.Error(), `"ghost"`)
}

func TestResolve_CurrentUserFailureIsFatal(t *testing.T) {
	t.Parallel()

	resolver := newResolver(map[string]string{}, 1000, accounts{}, nil)

	_, err := resolver.Resolve()

	require.ErrorIs(t, err, identity.ErrUserLookup)
}

func TestNewResolver_UsesProcessDefaults(t *testing.T) {
	t.Parallel()

	resolver := identity.NewResolver()

	assert.NotNil(t, resolver.LookupEnv)
	assert.NotNil(t, resolver.LookupUser)
	assert.NotNil(t, resolver.CurrentUser)
	assert.NotNil(t, resolver.Euid)
}
