// Package domain contains the core domain entities and types used by the
// application: stamps, vote kinds and the toggle arithmetic shared between
// the server-side vote engine and the client-side reconciler. These types
// are intentionally free of infrastructure concerns so they can be shared
// across packages.
package domain
