// Package di wires vmprep's services together with samber/do.
package di
