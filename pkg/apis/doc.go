// Package apis holds the versioned types shared across vmprep.
//
//   - host: the machine being provisioned and the user it is provisioned for
package apis
