// Package provisioner runs the host provisioning pipeline.
//
// A run resolves the invoking user, detects the distribution, installs and
// activates Docker, creates the network, writes the nginx scaffold, installs
// neofetch and patches the login profile. Steps run in order. A fatal step
// aborts the run and leaves earlier changes in place; best-effort failures are
// recorded as outcomes and shown in the summary.
package provisioner
